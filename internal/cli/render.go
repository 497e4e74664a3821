package cli

import (
	"fmt"

	"github.com/idilsaglam/grocery/internal/model"
	"github.com/idilsaglam/grocery/internal/ui"
)

func (r *runner) doList(a []string) int {
	fs := newFlagSet("ls")
	group := fs.String("group", "", "category or status")
	where := fs.String("where", "", "filter expression")
	if err := fs.Parse(a); err != nil {
		ui.Fail("ls: " + err.Error())
		return 2
	}
	filter, err := r.parseWhere(*where)
	if err != nil {
		ui.Fail("ls: " + err.Error())
		return 2
	}

	items := r.Store.SortedItems()
	if filter != nil {
		if items, err = filter.Apply(items); err != nil {
			ui.Fail("ls: " + err.Error())
			return 1
		}
	}

	lines := r.header()
	switch *group {
	case "":
		lines = append(lines, r.flatLines(items)...)
	case "category":
		lines = append(lines, r.categoryLines(items)...)
	case "status":
		lines = append(lines, r.statusLines(items)...)
	default:
		ui.Fail("ls: --group must be category or status")
		return 2
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `grocery add -c dairy \"Oat milk\"`"))
	ui.Panel(lines)
	return 0
}

func (r *runner) doStats() int {
	t := ui.Current()
	sum := r.Store.Summary()
	stats := r.Store.CategoryStats()

	lines := r.header()
	lines = append(lines,
		fmt.Sprintf("%s %d   %s %d", ui.C(t.Pending, t.SymFavorite), sum.Favorites,
			ui.C(t.Accent, "categories"), sum.CategoriesInUse),
		"",
		ui.C(t.Title, "By category"),
	)
	for _, c := range model.Categories() {
		st := stats[c]
		lines = append(lines, fmt.Sprintf("%-16s %s  %d/%d",
			c.String(), ui.C(t.Muted, ui.ProgressBar(st.Purchased, st.Total, 16)), st.Purchased, st.Total))
	}
	ui.Panel(lines)
	return 0
}

func (r *runner) doRecent() int {
	t := ui.Current()
	lines := []string{ui.C(t.Title, "Recently added"), ""}
	recent := r.Store.RecentlyAdded()
	if len(recent) == 0 {
		lines = append(lines, ui.C(t.Muted, "no items"))
	}
	now := r.Now()
	for _, it := range recent {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			it.Name, ui.CategoryTag(it.Category), ui.C(t.Muted, "added "+ui.Ago(it.DateAdded, now))))
	}
	ui.Panel(lines)
	return 0
}

// -------------- rendering helpers --------------

// header is the counts line plus progress bar shared by ls and stats.
func (r *runner) header() []string {
	t := ui.Current()
	sum := r.Store.Summary()
	h := fmt.Sprintf("%s  %s %d  %s %d  %s %d   %s",
		ui.C(t.Title, "Groceries"),
		ui.C(t.Success, t.SymDone), sum.Purchased,
		ui.C(t.Pending, t.SymUnchecked), sum.Remaining,
		ui.C(t.Accent, "Total"), sum.Total,
		ui.C(t.Muted, "sorted by "+r.Store.SortMode().String()),
	)
	return []string{
		h,
		ui.C(t.Muted, ui.ProgressBar(sum.Purchased, sum.Total, 28)),
		"",
	}
}

// positions maps item IDs to their 1-based index in the current sort
// order, the numbering every <ref> argument uses.
func (r *runner) positions() map[string]int {
	pos := map[string]int{}
	for i, it := range r.Store.SortedItems() {
		pos[it.ID] = i + 1
	}
	return pos
}

func (r *runner) flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	pos := r.positions()
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%2d.", pos[it.ID])
		box := t.BoxUnchecked
		color := t.Muted
		if it.Purchased {
			box, color = t.BoxChecked, t.Success
		}
		line := fmt.Sprintf("%s %s %s", ui.Dim(idx), ui.C(color, box), ui.Truncate(it.Name, 60))
		if it.Favorite {
			line += " " + ui.C(t.Pending, t.SymFavorite)
		}
		line += "  " + ui.CategoryTag(it.Category)
		if it.Notes != "" {
			line += "  " + ui.C(t.Muted, ui.Truncate(it.Notes, 40))
		}
		out = append(out, line)
	}
	return out
}

func (r *runner) categoryLines(items []model.Item) []string {
	t := ui.Current()
	groups := map[model.Category][]model.Item{}
	for _, it := range items {
		groups[it.Category] = append(groups[it.Category], it)
	}
	var lines []string
	for _, c := range model.Categories() {
		g, ok := groups[c]
		if !ok {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ui.C(t.Accent, fmt.Sprintf("%s %s (%d)", ui.CategoryIcon(c), c, len(g))))
		lines = append(lines, r.flatLines(g)...)
	}
	if len(lines) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	return lines
}

func (r *runner) statusLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []model.Item
	for _, it := range items {
		if it.Purchased {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(t.Accent, "To buy"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, r.flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Purchased"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, r.flatLines(done)...)
	}
	return lines
}
