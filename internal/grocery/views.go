package grocery

import (
	"cmp"
	"slices"
	"strings"

	"github.com/idilsaglam/grocery/internal/model"
)

const recentLimit = 5

// SortedItems orders a copy of the collection by the current sort mode.
// The sort is stable, so items the mode considers equal keep their
// insertion order.
func (s *Store) SortedItems() []model.Item {
	return SortItems(s.items, s.sortMode)
}

// SortItems returns items ordered by mode without touching the input.
func SortItems(items []model.Item, mode model.SortMode) []model.Item {
	out := slices.Clone(items)
	if out == nil {
		out = []model.Item{}
	}
	slices.SortStableFunc(out, compareFunc(mode))
	return out
}

func compareFunc(mode model.SortMode) func(a, b model.Item) int {
	switch mode {
	case model.SortByCategory:
		return func(a, b model.Item) int { return cmp.Compare(a.Category.String(), b.Category.String()) }
	case model.SortByPurchased:
		return func(a, b model.Item) int { return compareFlag(a.Purchased, b.Purchased) }
	case model.SortByDateAdded:
		return func(a, b model.Item) int { return b.DateAdded.Compare(a.DateAdded) }
	case model.SortByFavorites:
		return func(a, b model.Item) int { return compareFlag(b.Favorite, a.Favorite) }
	default:
		return func(a, b model.Item) int { return cmp.Compare(a.Name, b.Name) }
	}
}

// false sorts before true
func compareFlag(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func (s *Store) filter(keep func(model.Item) bool) []model.Item {
	out := []model.Item{}
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) FavoriteItems() []model.Item {
	return s.filter(func(it model.Item) bool { return it.Favorite })
}

func (s *Store) PurchasedItems() []model.Item {
	return s.filter(func(it model.Item) bool { return it.Purchased })
}

func (s *Store) UnpurchasedItems() []model.Item {
	return s.filter(func(it model.Item) bool { return !it.Purchased })
}

// ItemsByCategory groups items in insertion order. Categories without
// items have no entry.
func (s *Store) ItemsByCategory() map[model.Category][]model.Item {
	out := make(map[model.Category][]model.Item)
	for _, it := range s.items {
		out[it.Category] = append(out[it.Category], it)
	}
	return out
}

// CategoryStats has an entry for every category, empty ones included.
func (s *Store) CategoryStats() map[model.Category]model.CategoryStats {
	var total, purchased [model.NumCategories]int
	for _, it := range s.items {
		if !it.Category.Valid() {
			continue
		}
		total[it.Category]++
		if it.Purchased {
			purchased[it.Category]++
		}
	}
	out := make(map[model.Category]model.CategoryStats, model.NumCategories)
	for _, c := range model.Categories() {
		out[c] = model.NewCategoryStats(total[c], purchased[c])
	}
	return out
}

// Summary rolls the whole list up into one set of counts.
func (s *Store) Summary() model.Summary {
	var sum model.Summary
	used := map[model.Category]bool{}
	for _, it := range s.items {
		sum.Total++
		if it.Purchased {
			sum.Purchased++
		}
		if it.Favorite {
			sum.Favorites++
		}
		used[it.Category] = true
	}
	sum.Remaining = sum.Total - sum.Purchased
	sum.CategoriesInUse = len(used)
	if sum.Total > 0 {
		sum.Progress = float64(sum.Purchased) / float64(sum.Total)
	}
	return sum
}

// RecentlyAdded returns up to five items, newest first.
func (s *Store) RecentlyAdded() []model.Item {
	out := SortItems(s.items, model.SortByDateAdded)
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}

// Search filters SortedItems by a case-insensitive substring of the
// name, category label or notes.
func (s *Store) Search(text string) []model.Item {
	sorted := s.SortedItems()
	text = strings.TrimSpace(text)
	if text == "" {
		return sorted
	}
	out := sorted[:0]
	for _, it := range sorted {
		if it.Matches(text) {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the item with id.
func (s *Store) Find(id string) (model.Item, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// FindPrefix resolves an abbreviated ID. It fails when the prefix is
// unknown or matches more than one item.
func (s *Store) FindPrefix(prefix string) (model.Item, bool) {
	var found model.Item
	n := 0
	for _, it := range s.items {
		if strings.HasPrefix(it.ID, prefix) {
			found = it
			n++
		}
	}
	return found, n == 1
}
