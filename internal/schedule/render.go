package schedule

import (
	"bytes"
	"image/color"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/timeutil"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Canvas geometry.
const (
	renderWidth       = 520
	headerHeight      = 40
	leftLabelsWidth   = 56
	blockPaddingX     = 6
	minBlockHeight    = 10.0
	blockBorderRadius = 4.0
	pixelsPerMinute   = 1.0
)

// Colors follow the convention of the booking timeline: neutral canvas,
// kind-tinted blocks, red accents for conflicts.
var (
	canvasColor     = color.RGBA{245, 246, 248, 255}
	headerTextColor = color.RGBA{80, 85, 90, 255}
	hourLabelColor  = color.RGBA{110, 115, 120, 255}
	hourLineColor   = color.NRGBA{150, 150, 150, 120}

	individualBlockColor = color.RGBA{133, 193, 85, 220}
	groupBlockColor      = color.RGBA{120, 170, 220, 220}
	canceledBlockColor   = color.RGBA{158, 158, 158, 180}
	paidBlockColor       = color.RGBA{255, 205, 110, 230}
	blockTextColor       = color.RGBA{20, 24, 28, 255}
	conflictBorderColor  = color.NRGBA{220, 60, 60, 255}
)

// RenderDayImage renders a laid-out day to a PNG timeline: hour grid on
// the left, one block per placed occurrence. Blocks flagged as outside
// the teacher's availability get a red border.
func RenderDayImage(layout DayLayout) ([]byte, error) {
	totalHours := layout.Window.EndHour - layout.Window.StartHour
	if totalHours <= 0 {
		totalHours = 1
	}

	height := headerHeight + int(float64(totalHours*60)*pixelsPerMinute)
	dc := gg.NewContext(renderWidth, height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(canvasColor)
	dc.Clear()

	drawDayHeader(dc, layout)
	drawHourGrid(dc, layout.Window)
	for _, block := range layout.Blocks {
		drawBlock(dc, block)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawDayHeader(dc *gg.Context, layout DayLayout) {
	dc.SetColor(headerTextColor)
	title := layout.Day.Format("Monday 02.01.2006")
	dc.DrawStringAnchored(title, float64(renderWidth)/2, float64(headerHeight)/2, 0.5, 0.5)
}

func drawHourGrid(dc *gg.Context, window HourWindow) {
	for hour := window.StartHour; hour <= window.EndHour; hour++ {
		y := float64(headerHeight) + float64((hour-window.StartHour)*60)*pixelsPerMinute

		dc.SetColor(hourLineColor)
		dc.SetLineWidth(1)
		dc.DrawLine(leftLabelsWidth, y, renderWidth, y)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(timeutil.FormatMinutes(hour*60), leftLabelsWidth-8, y, 1, 0.5)
	}
}

func drawBlock(dc *gg.Context, block PlacedBlock) {
	x := float64(leftLabelsWidth + blockPaddingX)
	y := float64(headerHeight) + float64(block.OffsetMinutes)*pixelsPerMinute
	w := float64(renderWidth - leftLabelsWidth - 2*blockPaddingX)
	h := float64(block.HeightMinutes) * pixelsPerMinute
	if h < minBlockHeight {
		h = minBlockHeight
	}
	if y < float64(headerHeight) {
		// Partially clipped block: keep it inside the grid.
		h += y - float64(headerHeight)
		y = float64(headerHeight)
		if h <= 0 {
			return
		}
	}

	dc.SetColor(blockColor(block))
	dc.DrawRoundedRectangle(x, y, w, h, blockBorderRadius)
	dc.Fill()

	if block.OutsideAvailability {
		dc.SetColor(conflictBorderColor)
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(x, y, w, h, blockBorderRadius)
		dc.Stroke()
	}

	label := block.Time + " " + block.Label
	dc.SetColor(blockTextColor)
	dc.DrawStringAnchored(label, x+8, y+h/2, 0, 0.5)
}

func blockColor(block PlacedBlock) color.Color {
	if block.Canceled {
		return canceledBlockColor
	}
	if block.Kind == EntryKindGroup {
		return groupBlockColor
	}
	if block.PaymentStatus == model.PaymentStatusPaid {
		return paidBlockColor
	}
	return individualBlockColor
}
