package ledger

import (
	"sync"

	"viagens/internal/core"
)

const (
	EventAdded   EventType = "entry_added"
	EventRemoved EventType = "entry_removed"
)

type (
	EventType string

	// Event describes one ledger change. Snapshot is the ledger right after it.
	// Seq increases by one per committed change.
	Event struct {
		Type     EventType
		Seq      uint64
		Entry    core.BudgetEntry
		Snapshot Snapshot
	}

	Listener func(Event)
)

type listeners struct {
	mu    sync.Mutex
	next  int
	slots []slot
}

type slot struct {
	id int
	fn Listener
}

func (l *listeners) add(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.next
	l.next++
	l.slots = append(l.slots, slot{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, s := range l.slots {
				if s.id == id {
					l.slots = append(l.slots[:i:i], l.slots[i+1:]...)
					return
				}
			}
		})
	}
}

func (l *listeners) notify(ev Event) {
	l.mu.Lock()
	fns := make([]Listener, len(l.slots))
	for i, s := range l.slots {
		fns[i] = s.fn
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
