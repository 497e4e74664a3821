package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownSortMode = errors.New("unknown sort mode")
)

// Item is the domain model for a grocery entry.
// ID and DateAdded are fixed at construction; everything else changes
// through replace-by-id in the store.
type Item struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Category  Category  `json:"category" yaml:"category"`
	Purchased bool      `json:"isPurchased" yaml:"purchased"`
	Favorite  bool      `json:"isFavorite" yaml:"favorite"`
	Notes     string    `json:"notes" yaml:"notes,omitempty"`
	DateAdded time.Time `json:"dateAdded" yaml:"date_added"`
}

// ItemOption tweaks an Item built by NewItem.
type ItemOption func(*Item)

func Purchased() ItemOption { return func(it *Item) { it.Purchased = true } }
func Favorite() ItemOption  { return func(it *Item) { it.Favorite = true } }

func WithNotes(notes string) ItemOption {
	return func(it *Item) { it.Notes = strings.TrimSpace(notes) }
}

func AddedAt(t time.Time) ItemOption {
	return func(it *Item) { it.DateAdded = t }
}

func WithID(id string) ItemOption {
	return func(it *Item) { it.ID = id }
}

// NewItem creates an unpurchased, non-favorite item with a fresh ID.
func NewItem(name string, category Category, opts ...ItemOption) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrEmptyName
	}
	if !category.Valid() {
		return Item{}, ErrUnknownCategory
	}
	it := Item{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		DateAdded: time.Now(),
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it, nil
}

// MustItem is NewItem for fixed data such as the sample set.
func MustItem(name string, category Category, opts ...ItemOption) Item {
	it, err := NewItem(name, category, opts...)
	if err != nil {
		panic(err)
	}
	return it
}

// Matches reports whether text occurs in the name, category label or
// notes, ignoring case.
func (it Item) Matches(text string) bool {
	q := strings.ToLower(text)
	return strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.Category.String()), q) ||
		strings.Contains(strings.ToLower(it.Notes), q)
}
