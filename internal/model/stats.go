package model

// CategoryStats counts one category. Percentage is Purchased/Total in
// [0,1], and 0 for an empty category.
type CategoryStats struct {
	Total      int     `json:"total" yaml:"total"`
	Purchased  int     `json:"purchased" yaml:"purchased"`
	Remaining  int     `json:"remaining" yaml:"remaining"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

func NewCategoryStats(total, purchased int) CategoryStats {
	s := CategoryStats{Total: total, Purchased: purchased, Remaining: total - purchased}
	if total > 0 {
		s.Percentage = float64(purchased) / float64(total)
	}
	return s
}

// Summary is the whole-list rollup shown by `grocery stats`.
type Summary struct {
	Total           int     `json:"total" yaml:"total"`
	Purchased       int     `json:"purchased" yaml:"purchased"`
	Remaining       int     `json:"remaining" yaml:"remaining"`
	Favorites       int     `json:"favorites" yaml:"favorites"`
	Progress        float64 `json:"progress" yaml:"progress"`
	CategoriesInUse int     `json:"categoriesInUse" yaml:"categories_in_use"`
}
