package grocery

import "github.com/idilsaglam/grocery/internal/model"

type EventKind int

const (
	ItemAdded EventKind = iota + 1
	ItemUpdated
	ItemDeleted
	PurchasedToggled
	FavoriteToggled
	ListCleared
	PurchasedCleared
	ListReset
	SortChanged
)

func (k EventKind) String() string {
	switch k {
	case ItemAdded:
		return "added"
	case ItemUpdated:
		return "updated"
	case ItemDeleted:
		return "deleted"
	case PurchasedToggled:
		return "purchased-toggled"
	case FavoriteToggled:
		return "favorite-toggled"
	case ListCleared:
		return "cleared"
	case PurchasedCleared:
		return "purchased-cleared"
	case ListReset:
		return "reset"
	case SortChanged:
		return "sort-changed"
	default:
		return "unknown"
	}
}

// Event describes one applied change. Item is the affected item after
// the change, zero for whole-list events.
type Event struct {
	Kind EventKind
	Item model.Item
}

type observer struct {
	fn func(Event)
}

// Subscribe registers fn to run after every applied change, in
// subscription order. The returned func removes it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	o := &observer{fn: fn}
	s.observers = append(s.observers, o)
	return func() {
		for i, cur := range s.observers {
			if cur == o {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ev Event) {
	// copy so observers may unsubscribe while being called
	obs := append([]*observer(nil), s.observers...)
	for _, o := range obs {
		o.fn(ev)
	}
}
