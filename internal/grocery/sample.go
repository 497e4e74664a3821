package grocery

import (
	"time"

	"github.com/idilsaglam/grocery/internal/model"
)

type sample struct {
	name     string
	category model.Category
	favorite bool
}

var samples = []sample{
	{"Apples", model.Fruit, true},
	{"Bananas", model.Fruit, false},
	{"Milk", model.Dairy, true},
	{"Cheese", model.Dairy, false},
	{"Chicken", model.Meat, false},
	{"Beef", model.Meat, false},
	{"Carrots", model.Vegetables, false},
	{"Broccoli", model.Vegetables, false},
	{"Bread", model.Bakery, false},
	{"Cereal", model.Other, false},
}

// sampleItems builds the first-run list. All items share one timestamp.
func sampleItems(now time.Time, newID func() string) []model.Item {
	out := make([]model.Item, 0, len(samples))
	for _, smp := range samples {
		opts := []model.ItemOption{model.WithID(newID()), model.AddedAt(now)}
		if smp.favorite {
			opts = append(opts, model.Favorite())
		}
		out = append(out, model.MustItem(smp.name, smp.category, opts...))
	}
	return out
}
