package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/grocery/internal/model"
)

// CategoryIcon is the glyph shown next to a category label.
func CategoryIcon(c model.Category) string {
	switch c {
	case model.Fruit:
		return "🍎"
	case model.Dairy:
		return "🥛"
	case model.Meat:
		return "🍖"
	case model.Vegetables:
		return "🥬"
	case model.Bakery:
		return "🍞"
	case model.Other:
		return "🛒"
	}
	return "?"
}

// CategoryColor is the category's accent color.
func CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.Fruit:
		return lipgloss.Color("#FF6B6B")
	case model.Dairy:
		return lipgloss.Color("#4ECDC4")
	case model.Meat:
		return lipgloss.Color("#FF8B94")
	case model.Vegetables:
		return lipgloss.Color("#95E1D3")
	case model.Bakery:
		return lipgloss.Color("#FFD93D")
	case model.Other:
		return lipgloss.Color("#B8B5FF")
	}
	return lipgloss.Color("8")
}

// CategoryTag renders "🥛 Dairy" in the category color.
func CategoryTag(c model.Category) string {
	label := CategoryIcon(c) + " " + c.String()
	if disableColor {
		return label
	}
	return lipgloss.NewStyle().Foreground(CategoryColor(c)).Render(label)
}

// Ago formats the time since t the way a list row shows it: "just now",
// "5m ago", "3h ago", "2d ago", or a date beyond a month.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
