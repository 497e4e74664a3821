package grocery

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/idilsaglam/grocery/internal/model"
)

const (
	glyphPurchased   = "✅"
	glyphUnpurchased = "⬜️"
	glyphFavorite    = "⭐️"
)

// ShareList renders the list as plain text for handing to another app:
// non-empty categories by label, items by name, then the totals.
func (s *Store) ShareList() string {
	var b strings.Builder
	b.WriteString("🛒 My Shopping List\n\n")

	groups := s.ItemsByCategory()
	cats := make([]model.Category, 0, len(groups))
	for c := range groups {
		cats = append(cats, c)
	}
	slices.SortFunc(cats, func(a, b model.Category) int { return cmp.Compare(a.String(), b.String()) })

	for _, c := range cats {
		fmt.Fprintf(&b, "📂 %s:\n", c)
		for _, it := range SortItems(groups[c], model.SortByName) {
			mark := glyphUnpurchased
			if it.Purchased {
				mark = glyphPurchased
			}
			star := ""
			if it.Favorite {
				star = glyphFavorite
			}
			fmt.Fprintf(&b, "%s %s%s\n", mark, it.Name, star)
		}
		b.WriteString("\n")
	}

	sum := s.Summary()
	b.WriteString("📊 Summary:\n")
	fmt.Fprintf(&b, "Total: %d items\n", sum.Total)
	fmt.Fprintf(&b, "Purchased: %d items\n", sum.Purchased)
	fmt.Fprintf(&b, "Remaining: %d items\n", sum.Remaining)
	return b.String()
}
