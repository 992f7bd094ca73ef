package billing

import (
	"sort"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
)

// PackageWithBalance pairs a package with its derived balance.
type PackageWithBalance struct {
	Package        *model.ClassPackage
	UsedHours      float64
	RemainingHours float64
}

// UsedHours sums the hours of every occurrence billed against the package.
// The sum is always recomputed from the occurrence snapshot, never cached,
// so the balance self-heals if occurrences are edited out of band.
func UsedHours(packageID string, occurrences []*model.ClassOccurrence) float64 {
	var used float64
	for _, occ := range occurrences {
		if occ.PackageID == packageID {
			used += occ.Hours()
		}
	}
	return used
}

// RemainingHours returns the package's unconsumed hour balance.
func RemainingHours(pkg *model.ClassPackage, occurrences []*model.ClassOccurrence) float64 {
	return pkg.TotalHours - UsedHours(pkg.ID, occurrences)
}

// Balances computes the derived balance for every given package, in
// purchase-date order.
func Balances(packages []*model.ClassPackage, occurrences []*model.ClassOccurrence) []PackageWithBalance {
	balances := make([]PackageWithBalance, 0, len(packages))
	for _, pkg := range packages {
		used := UsedHours(pkg.ID, occurrences)
		balances = append(balances, PackageWithBalance{
			Package:        pkg,
			UsedHours:      used,
			RemainingHours: pkg.TotalHours - used,
		})
	}

	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Package.PurchaseDate.Before(balances[j].Package.PurchaseDate)
	})
	return balances
}

// EligiblePackages returns the student's packages that can absorb a new
// class: active status and a positive remaining balance, ordered by
// purchase date ascending. Oldest credit is consumed first so billing
// stays predictable.
func EligiblePackages(studentID string, packages []*model.ClassPackage, occurrences []*model.ClassOccurrence) []PackageWithBalance {
	var candidates []*model.ClassPackage
	for _, pkg := range packages {
		if pkg.StudentID == studentID && pkg.IsActive() {
			candidates = append(candidates, pkg)
		}
	}

	var eligible []PackageWithBalance
	for _, pwb := range Balances(candidates, occurrences) {
		if pwb.RemainingHours > 0 {
			eligible = append(eligible, pwb)
		}
	}
	return eligible
}
