package grocery

import (
	"go.uber.org/zap"

	"github.com/idilsaglam/grocery/internal/model"
)

// Add appends item. Names are not deduplicated.
func (s *Store) Add(item model.Item) {
	s.items = append(s.items, item)
	s.save()
	s.notify(Event{Kind: ItemAdded, Item: item})
}

// Update replaces the item with the same ID, keeping its position.
// An unknown ID is ignored.
func (s *Store) Update(item model.Item) {
	i := s.indexOf(item.ID)
	if i < 0 {
		s.log.Debug("update: unknown id", zap.String("id", item.ID))
		return
	}
	s.items[i] = item
	s.save()
	s.notify(Event{Kind: ItemUpdated, Item: item})
}

// Delete removes every item carrying item's ID.
func (s *Store) Delete(item model.Item) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	clear(s.items[len(kept):])
	s.items = kept
	s.save()
	s.notify(Event{Kind: ItemDeleted, Item: item})
}

func (s *Store) TogglePurchased(item model.Item) {
	i := s.indexOf(item.ID)
	if i < 0 {
		return
	}
	s.items[i].Purchased = !s.items[i].Purchased
	s.save()
	s.notify(Event{Kind: PurchasedToggled, Item: s.items[i]})
}

func (s *Store) ToggleFavorite(item model.Item) {
	i := s.indexOf(item.ID)
	if i < 0 {
		return
	}
	s.items[i].Favorite = !s.items[i].Favorite
	s.save()
	s.notify(Event{Kind: FavoriteToggled, Item: s.items[i]})
}

func (s *Store) ClearAll() {
	s.items = []model.Item{}
	s.save()
	s.notify(Event{Kind: ListCleared})
}

func (s *Store) ClearPurchased() {
	kept := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if !it.Purchased {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.save()
	s.notify(Event{Kind: PurchasedCleared})
}

// ResetToSampleData drops everything and seeds the sample items.
func (s *Store) ResetToSampleData() {
	s.seed()
	s.notify(Event{Kind: ListReset})
}

func (s *Store) seed() {
	s.items = sampleItems(s.now(), s.newID)
	s.save()
	s.log.Info("seeded sample items", zap.String("key", ItemsKey), zap.Int("items", len(s.items)))
}
