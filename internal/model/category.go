package model

import (
	"fmt"
	"strings"
)

// Category is one of a fixed, closed set of grocery aisles.
type Category int

const (
	Fruit Category = iota
	Dairy
	Meat
	Vegetables
	Bakery
	Other

	// NumCategories is the size of the enumeration, not a category.
	NumCategories
)

// Indexed by Category; the array length keeps it in step with the enum.
var categoryLabels = [NumCategories]string{
	Fruit:      "Fruit",
	Dairy:      "Dairy",
	Meat:       "Meat",
	Vegetables: "Vegetables",
	Bakery:     "Bakery",
	Other:      "Other",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, NumCategories)
	for c := Category(0); c < NumCategories; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) Valid() bool { return c >= 0 && c < NumCategories }

// String returns the canonical label ("Fruit", "Dairy", ...).
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryLabels[c]
}

// ParseCategory matches a canonical label, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for c := Category(0); c < NumCategories; c++ {
		if strings.EqualFold(categoryLabels[c], s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(categoryLabels[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
