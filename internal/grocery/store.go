// Package grocery holds the list state: the item collection, the
// selected sort mode, and every view derived from them.
//
// A Store is not safe for concurrent use. It is meant to be driven from
// one goroutine (the CLI, or Bubble Tea's update loop), and every
// mutation is written through to the kv.Store before it returns.
package grocery

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idilsaglam/grocery/internal/kv"
	"github.com/idilsaglam/grocery/internal/model"
)

// ItemsKey is the kv key holding the serialized collection.
const ItemsKey = "groceryItems"

type Store struct {
	kv       kv.Store
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
	items    []model.Item
	sortMode model.SortMode
	saveErr  error

	observers []*observer
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the time source used for seeded sample items.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDs sets the ID generator used for seeded sample items.
func WithIDs(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.newID = next
		}
	}
}

func WithSortMode(m model.SortMode) Option {
	return func(s *Store) {
		if m.Valid() {
			s.sortMode = m
		}
	}
}

// New loads the collection from store. When nothing usable is stored
// (first run, read failure, malformed data, or an empty list) the
// sample items are seeded and persisted.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:    store,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	items, ok := s.load()
	if ok {
		s.items = items
		s.log.Debug("loaded items", zap.String("key", ItemsKey), zap.Int("items", len(items)))
	} else {
		s.seed()
	}
	return s
}

// load is the only read path. The bool is false whenever the caller
// should fall back to sample data.
func (s *Store) load() ([]model.Item, bool) {
	b, err := s.kv.Get(ItemsKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			s.log.Info("no stored items", zap.String("key", ItemsKey))
		} else {
			s.log.Warn("read stored items", zap.String("key", ItemsKey), zap.Error(err))
		}
		return nil, false
	}
	items, err := decodeItems(b)
	if err != nil {
		s.log.Warn("decode stored items", zap.String("key", ItemsKey), zap.Error(err))
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func decodeItems(b []byte) ([]model.Item, error) {
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	for i, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d: missing id", i)
		}
	}
	return items, nil
}

// save writes the full collection. Failures are recorded and logged,
// never returned to the mutating caller.
func (s *Store) save() {
	b, err := json.Marshal(s.items)
	if err == nil {
		err = s.kv.Set(ItemsKey, b)
	}
	if err != nil {
		s.saveErr = fmt.Errorf("save %s: %w", ItemsKey, err)
		s.log.Warn("persist items", zap.String("key", ItemsKey), zap.Int("items", len(s.items)), zap.Error(err))
		return
	}
	s.saveErr = nil
}

// SaveErr reports the outcome of the most recent write.
func (s *Store) SaveErr() error { return s.saveErr }

func (s *Store) SortMode() model.SortMode { return s.sortMode }

// SetSortMode changes the derived ordering only; nothing is persisted.
func (s *Store) SetSortMode(m model.SortMode) {
	if !m.Valid() || m == s.sortMode {
		return
	}
	s.sortMode = m
	s.notify(Event{Kind: SortChanged})
}

// Len is the number of items in the collection.
func (s *Store) Len() int { return len(s.items) }

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
