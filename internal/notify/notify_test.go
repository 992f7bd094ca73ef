package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierDeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier()

	first, cancelFirst := n.Subscribe()
	second, cancelSecond := n.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	n.Publish(Event{Kind: KindOccurrence, ID: "occ-1"})

	assert.Equal(t, Event{Kind: KindOccurrence, ID: "occ-1"}, <-first)
	assert.Equal(t, Event{Kind: KindOccurrence, ID: "occ-1"}, <-second)
}

func TestNotifierCancelClosesChannel(t *testing.T) {
	n := NewNotifier()

	ch, cancel := n.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Cancel is idempotent and publishing after cancel is a no-op.
	cancel()
	n.Publish(Event{Kind: KindLedger, ID: "tx-1"})
}

func TestNotifierPublishNeverBlocks(t *testing.T) {
	n := NewNotifier()

	ch, cancel := n.Subscribe()
	defer cancel()

	// Overfill the subscriber's buffer; the extra events are dropped.
	for i := 0; i < 100; i++ {
		n.Publish(Event{Kind: KindPackage, ID: "pkg-1"})
	}

	require.Len(t, ch, cap(ch))
}
