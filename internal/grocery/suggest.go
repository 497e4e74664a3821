package grocery

import (
	"strings"

	"github.com/idilsaglam/grocery/internal/model"
)

var commonItems = []string{
	"Milk", "Bread", "Eggs", "Bananas", "Apples", "Chicken", "Rice", "Pasta",
	"Tomatoes", "Onions", "Cheese", "Yogurt", "Butter", "Olive Oil", "Salt",
	"Sugar", "Flour", "Potatoes", "Carrots", "Broccoli", "Spinach", "Lettuce",
}

var categorySuggestions = [model.NumCategories][]string{
	model.Fruit:      {"Apples", "Bananas", "Oranges", "Strawberries", "Grapes", "Pineapple", "Mango", "Kiwi"},
	model.Dairy:      {"Milk", "Cheese", "Yogurt", "Butter", "Cream", "Cottage Cheese", "Sour Cream"},
	model.Meat:       {"Chicken", "Beef", "Pork", "Fish", "Turkey", "Lamb", "Bacon", "Sausage"},
	model.Vegetables: {"Carrots", "Broccoli", "Spinach", "Lettuce", "Tomatoes", "Onions", "Potatoes", "Bell Peppers"},
	model.Bakery:     {"Bread", "Croissants", "Muffins", "Bagels", "Cake", "Cookies", "Donuts"},
	model.Other:      {"Rice", "Pasta", "Olive Oil", "Salt", "Sugar", "Flour", "Spices", "Canned Goods"},
}

// GetSmartSuggestions lists common groceries not yet on the list,
// compared case-insensitively, in reference order.
func (s *Store) GetSmartSuggestions() []string {
	return s.missing(commonItems)
}

// GetCategorySuggestions is GetSmartSuggestions over the reference list
// for one category.
func (s *Store) GetCategorySuggestions(c model.Category) []string {
	if !c.Valid() {
		return []string{}
	}
	return s.missing(categorySuggestions[c])
}

func (s *Store) missing(reference []string) []string {
	have := make(map[string]struct{}, len(s.items))
	for _, it := range s.items {
		have[strings.ToLower(it.Name)] = struct{}{}
	}
	out := []string{}
	for _, name := range reference {
		if _, ok := have[strings.ToLower(name)]; !ok {
			out = append(out, name)
		}
	}
	return out
}
