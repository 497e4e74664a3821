package tui

import (
	"encoding/json"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/grocery/internal/grocery"
	"github.com/idilsaglam/grocery/internal/kv"
	"github.com/idilsaglam/grocery/internal/model"
)

func newModel(t *testing.T) (Model, *grocery.Store) {
	t.Helper()
	at := model.AddedAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	items := []model.Item{
		model.MustItem("Milk", model.Dairy, model.WithID("id-milk"), at),
		model.MustItem("Apples", model.Fruit, model.WithID("id-apples"), at),
	}
	mem := kv.NewMemory()
	b, _ := json.Marshal(items)
	_ = mem.Set(grocery.ItemsKey, b)
	s := grocery.New(mem)

	m := New(s)
	t.Cleanup(m.Close)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model), s
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestToggleKeysActOnSelection(t *testing.T) {
	m, s := newModel(t)

	// sorted by name, Apples is selected first
	m = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if p := s.PurchasedItems(); len(p) != 1 || p[0].Name != "Apples" {
		t.Fatalf("unexpected purchased: %#v", p)
	}
	if m.status != "purchased Apples" {
		t.Fatalf("status: %q", m.status)
	}

	m = press(m, runes("f"))
	if f := s.FavoriteItems(); len(f) != 1 || f[0].Name != "Apples" {
		t.Fatalf("unexpected favorites: %#v", f)
	}
	if it, ok := m.selected(); !ok || !it.Favorite || !it.Purchased {
		t.Fatalf("list not refreshed: %#v", it)
	}
}

func TestDeleteAndUndo(t *testing.T) {
	m, s := newModel(t)
	m = press(m, runes("d"))
	if s.Len() != 1 {
		t.Fatalf("expected 1 item after delete, got %d", s.Len())
	}
	if len(m.list.Items()) != 1 {
		t.Fatalf("list shows %d items", len(m.list.Items()))
	}
	m = press(m, runes("u"))
	if _, ok := s.Find("id-apples"); !ok || s.Len() != 2 {
		t.Fatalf("undo did not restore Apples")
	}
	m = press(m, runes("u"))
	if s.Len() != 2 {
		t.Fatalf("second undo must be a no-op")
	}
}

func TestCycleSortMode(t *testing.T) {
	m, s := newModel(t)
	m = press(m, runes("s"))
	if s.SortMode() != model.SortByCategory {
		t.Fatalf("sort mode: %v", s.SortMode())
	}
	// categories sort by label: Dairy before Fruit
	if it, _ := m.selected(); it.Name != "Milk" {
		t.Fatalf("selected %q", it.Name)
	}
	for range model.SortModes()[1:] {
		m = press(m, runes("s"))
	}
	if s.SortMode() != model.SortByName {
		t.Fatalf("sort did not wrap: %v", s.SortMode())
	}
}

func TestAddWithCategory(t *testing.T) {
	m, s := newModel(t)
	m = press(m, runes("a"))
	if m.mode != modeAdd {
		t.Fatalf("expected add mode")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.inputErr == "" || s.Len() != 2 {
		t.Fatalf("empty name must be rejected")
	}
	m = press(m, runes("Eggs"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeBrowse {
		t.Fatalf("still in input mode")
	}
	items := s.Items()
	last := items[len(items)-1]
	if s.Len() != 3 || last.Name != "Eggs" || last.Category != model.Fruit {
		t.Fatalf("unexpected add: %#v", last)
	}
}

func TestEditRenamesSelected(t *testing.T) {
	m, s := newModel(t)
	m = press(m, runes("e"))
	if m.ti.Value() != "Apples" {
		t.Fatalf("edit prefill: %q", m.ti.Value())
	}
	m.ti.SetValue("Green apples")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if it, _ := s.Find("id-apples"); it.Name != "Green apples" || it.Category != model.Fruit {
		t.Fatalf("unexpected edit: %#v", it)
	}

	m = press(m, runes("e"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse || s.Len() != 2 {
		t.Fatalf("esc must cancel editing")
	}
}

func TestQuitAndCloseUnsubscribes(t *testing.T) {
	m, s := newModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	m.Close()
	s.ClearAll()
	if m.changes.dirty {
		t.Fatalf("closed model still observes the store")
	}
	if m.View() == "" {
		t.Fatalf("empty view")
	}
}
