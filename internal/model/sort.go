package model

import (
	"fmt"
	"strings"
)

// SortMode selects a derived ordering; it never reorders stored items.
type SortMode int

const (
	SortByName SortMode = iota
	SortByCategory
	SortByPurchased
	SortByDateAdded
	SortByFavorites

	numSortModes
)

var sortModeLabels = [numSortModes]string{
	SortByName:      "Name",
	SortByCategory:  "Category",
	SortByPurchased: "Purchased Status",
	SortByDateAdded: "Date Added",
	SortByFavorites: "Favorites First",
}

// short names used on the command line
var sortModeKeys = [numSortModes]string{
	SortByName:      "name",
	SortByCategory:  "category",
	SortByPurchased: "purchased",
	SortByDateAdded: "date",
	SortByFavorites: "favorites",
}

func SortModes() []SortMode {
	out := make([]SortMode, 0, numSortModes)
	for m := SortMode(0); m < numSortModes; m++ {
		out = append(out, m)
	}
	return out
}

func (m SortMode) Valid() bool { return m >= 0 && m < numSortModes }

func (m SortMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
	return sortModeLabels[m]
}

// Key is the short command-line name of the mode.
func (m SortMode) Key() string {
	if !m.Valid() {
		return ""
	}
	return sortModeKeys[m]
}

// ParseSortMode accepts either the short key or the display label.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.TrimSpace(s)
	for m := SortMode(0); m < numSortModes; m++ {
		if strings.EqualFold(sortModeKeys[m], s) || strings.EqualFold(sortModeLabels[m], s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
}
