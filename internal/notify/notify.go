package notify

import "sync"

type Kind string

const (
	KindOccurrence Kind = "occurrence"
	KindLedger     Kind = "ledger"
	KindPackage    Kind = "package"
)

// Event announces a committed mutation. Events carry ids only; subscribers
// re-query current state, keeping the engine's reads pull-based.
type Event struct {
	Kind Kind
	ID   string
}

// Notifier is a small observer hub the UI layer can subscribe to for
// calendar refreshes. Publishing never blocks: a subscriber that stopped
// draining its channel misses events instead of stalling a write path.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel func must be called
// to release the subscription.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan Event, 16)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber with room in its buffer.
func (n *Notifier) Publish(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
