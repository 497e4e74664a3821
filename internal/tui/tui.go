package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/grocery/internal/grocery"
	"github.com/idilsaglam/grocery/internal/model"
	"github.com/idilsaglam/grocery/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return i.Notes }
func (i listItem) FilterValue() string {
	return i.Name + " " + i.Category.String() + " " + i.Notes
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := ui.MutedStyle.Render(t.BoxUnchecked)
	text := it.Name
	if it.Purchased {
		box = ui.SuccessStyle.Render(t.BoxChecked)
		text = ui.DoneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s", box, text)
	if it.Favorite {
		line += " " + ui.FavoriteStyle.Render(t.SymFavorite)
	}
	line += "  " + ui.CategoryTag(it.Category)
	if it.Notes != "" {
		line += "  " + ui.MutedStyle.Render(ui.Truncate(it.Notes, 30))
	}

	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
)

// changes is shared by every copy of the model; the store's observer
// writes into it.
type changes struct {
	dirty       bool
	last        grocery.Event
	unsubscribe func()
}

type Model struct {
	store   *grocery.Store
	changes *changes
	list    list.Model

	mode     inputMode
	ti       textinput.Model
	category model.Category // category for the next added item
	editID   string
	inputErr string
	status   string

	// Undo support (single-level)
	undo *model.Item

	width, height int
}

var keys = struct {
	add, edit, undo, toggle, fav, del, sort, clear, category key.Binding
}{
	add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "purchased")),
	fav:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	del:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	clear:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear purchased")),
	category: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
}

// New builds the interactive model over store. It subscribes to the
// store for its lifetime; call Close when done.
func New(store *grocery.Store) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	short := []key.Binding{keys.add, keys.toggle, keys.fav, keys.del, keys.sort}
	full := append(short, keys.edit, keys.undo, keys.clear, keys.category)
	l.AdditionalShortHelpKeys = func() []key.Binding { return short }
	l.AdditionalFullHelpKeys = func() []key.Binding { return full }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		store:    store,
		changes:  &changes{},
		list:     l,
		ti:       ti,
		category: model.Other,
		width:    80,
		height:   24,
	}
	ch := m.changes
	ch.unsubscribe = store.Subscribe(func(ev grocery.Event) {
		ch.dirty = true
		ch.last = ev
	})
	m.refresh()
	return m
}

// Close drops the model's store subscription.
func (m Model) Close() {
	if m.changes.unsubscribe != nil {
		m.changes.unsubscribe()
		m.changes.unsubscribe = nil
	}
}

// Run starts the full-screen list. Every change is persisted by the
// store as it happens, so quitting needs no save step.
func Run(store *grocery.Store) error {
	m := New(store)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// refresh reloads the list from the store's current sorted view.
func (m *Model) refresh() {
	sorted := m.store.SortedItems()
	items := make([]list.Item, len(sorted))
	for i, it := range sorted {
		items[i] = listItem{it}
	}
	m.list.SetItems(items)
	m.list.Title = m.title()
	m.changes.dirty = false
}

func (m Model) title() string {
	sum := m.store.Summary()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s",
		ui.TitleStyle.Render("Groceries"),
		ui.SuccessStyle.Render("✔"), sum.Purchased,
		ui.PendingStyle.Render("•"), sum.Remaining,
		ui.AccentStyle.Render("Total"), sum.Total,
		ui.MutedStyle.Render(m.store.SortMode().String()),
	)
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(m.width-4, m.height-4)
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeAdd, modeEdit:
		m, cmd = m.updateInput(msg)
	default:
		m, cmd = m.updateBrowse(msg)
	}
	if m.changes.dirty {
		m.status = describe(m.changes.last)
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			return m.submitInput(), nil
		case "esc":
			m.mode = modeBrowse
			m.inputErr = ""
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		case "tab":
			if m.mode == modeAdd {
				m.category = (m.category + 1) % model.NumCategories
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) submitInput() Model {
	name := strings.TrimSpace(m.ti.Value())
	switch m.mode {
	case modeAdd:
		it, err := model.NewItem(name, m.category)
		if err != nil {
			m.inputErr = err.Error()
			return m
		}
		m.store.Add(it)
	case modeEdit:
		if name == "" {
			m.inputErr = model.ErrEmptyName.Error()
			return m
		}
		if it, ok := m.store.Find(m.editID); ok {
			it.Name = name
			m.store.Update(it)
		}
	}
	m.mode = modeBrowse
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	return m
}

func (m Model) updateBrowse(msg tea.Msg) (Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	// while the filter prompt is open every key belongs to it
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch k.String() {
	case "q", "esc":
		if m.list.FilterState() == list.FilterApplied {
			break
		}
		return m, tea.Quit
	case " ":
		if it, ok := m.selected(); ok {
			m.store.TogglePurchased(it)
		}
		return m, nil
	case "f":
		if it, ok := m.selected(); ok {
			m.store.ToggleFavorite(it)
		}
		return m, nil
	case "d":
		if it, ok := m.selected(); ok {
			m.undo = &it
			m.store.Delete(it)
		}
		return m, nil
	case "u":
		if m.undo != nil {
			m.store.Add(*m.undo)
			m.undo = nil
		}
		return m, nil
	case "s":
		m.store.SetSortMode((m.store.SortMode() + 1) % model.SortMode(len(model.SortModes())))
		return m, nil
	case "C":
		m.store.ClearPurchased()
		return m, nil
	case "a":
		m.mode = modeAdd
		m.ti.SetValue("")
		m.ti.Placeholder = "New item name..."
		m.ti.Focus()
		return m, nil
	case "e":
		if it, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editID = it.ID
			m.ti.SetValue(it.Name)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit item name..."
			m.ti.Focus()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func describe(ev grocery.Event) string {
	switch ev.Kind {
	case grocery.ItemAdded:
		return "added " + ev.Item.Name
	case grocery.ItemUpdated:
		return "updated " + ev.Item.Name
	case grocery.ItemDeleted:
		return "deleted " + ev.Item.Name + " (u to undo)"
	case grocery.PurchasedToggled:
		if ev.Item.Purchased {
			return "purchased " + ev.Item.Name
		}
		return "unmarked " + ev.Item.Name
	case grocery.FavoriteToggled:
		if ev.Item.Favorite {
			return "starred " + ev.Item.Name
		}
		return "unstarred " + ev.Item.Name
	case grocery.PurchasedCleared:
		return "cleared purchased items"
	case grocery.SortChanged:
		return ""
	default:
		return ev.Kind.String()
	}
}

func (m Model) View() string {
	listHeight := m.height - 4
	if m.mode != modeBrowse {
		listHeight = m.height - 6
	}
	if m.status != "" {
		listHeight--
	}
	m.list.SetSize(m.width-4, listHeight)

	content := m.list.View()
	if m.status != "" {
		content += "\n" + ui.MutedStyle.Render(m.status)
	}
	if m.mode != modeBrowse {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add to " + ui.CategoryTag(m.category) + ui.MutedStyle.Render("  (tab: category)")
		if m.mode == modeEdit {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " - " + ui.ErrorStyle.Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.Frame(content)
}
