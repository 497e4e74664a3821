package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/grocery/internal/grocery"
	"github.com/idilsaglam/grocery/internal/kv"
	"github.com/idilsaglam/grocery/internal/model"
	"github.com/idilsaglam/grocery/internal/ui"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	store  *grocery.Store
	opt    Options
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newHarness(t *testing.T, items ...model.Item) *harness {
	t.Helper()
	mem := kv.NewMemory()
	if len(items) > 0 {
		b, _ := json.Marshal(items)
		_ = mem.Set(grocery.ItemsKey, b)
	}
	h := &harness{store: grocery.New(mem)}
	h.opt = Options{Store: h.store, Now: func() time.Time { return now }}
	ui.SetOutput(&h.out, &h.errOut)
	ui.SetColorForcing(false, true)
	t.Cleanup(func() {
		ui.SetOutput(os.Stdout, os.Stderr)
		ui.SetColorForcing(false, false)
	})
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.errOut.Reset()
	return Run(args, h.opt)
}

func fixture(id, name string, c model.Category, opts ...model.ItemOption) model.Item {
	opts = append([]model.ItemOption{model.WithID(id), model.AddedAt(now.Add(-time.Hour))}, opts...)
	return model.MustItem(name, c, opts...)
}

func TestAddWithFlags(t *testing.T) {
	h := newHarness(t, fixture("aaaa-1", "Bread", model.Bakery))
	if code := h.run("add", "-c", "dairy", "-n", "2%", "-f", "Oat", "milk"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	items := h.store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	got := items[1]
	if got.Name != "Oat milk" || got.Category != model.Dairy || got.Notes != "2%" || !got.Favorite || !got.DateAdded.Equal(now) {
		t.Fatalf("unexpected item: %#v", got)
	}
	if !strings.Contains(h.out.String(), "added Oat milk") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestAddUsageErrors(t *testing.T) {
	h := newHarness(t, fixture("aaaa-1", "Bread", model.Bakery))
	if code := h.run("add"); code != 2 {
		t.Fatalf("empty name: exit %d", code)
	}
	if code := h.run("add", "-c", "snacks", "Chips"); code != 2 {
		t.Fatalf("bad category: exit %d", code)
	}
	if h.store.Len() != 1 {
		t.Fatalf("failed adds must not change the list")
	}
}

func TestDoneUsesSortedIndex(t *testing.T) {
	h := newHarness(t,
		fixture("aaaa-1", "Milk", model.Dairy),
		fixture("bbbb-2", "Apples", model.Fruit),
	)
	// sorted by name: 1. Apples 2. Milk
	if code := h.run("done", "1"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	if p := h.store.PurchasedItems(); len(p) != 1 || p[0].Name != "Apples" {
		t.Fatalf("wrong item toggled: %#v", p)
	}
	if code := h.run("done", "7"); code != 2 {
		t.Fatalf("out of range: exit %d", code)
	}
	if !strings.Contains(h.errOut.String(), "index out of range: have 2, got 7") {
		t.Fatalf("unexpected stderr: %q", h.errOut.String())
	}
}

func TestFavAndRemoveByIDPrefix(t *testing.T) {
	h := newHarness(t,
		fixture("aaaa-1", "Milk", model.Dairy),
		fixture("bbbb-2", "Apples", model.Fruit),
	)
	if code := h.run("fav", "bbbb"); code != 0 {
		t.Fatalf("fav exit %d: %s", code, h.errOut.String())
	}
	if f := h.store.FavoriteItems(); len(f) != 1 || f[0].Name != "Apples" {
		t.Fatalf("unexpected favorites: %#v", f)
	}
	if code := h.run("rm", "aaaa-1"); code != 0 {
		t.Fatalf("rm exit %d", code)
	}
	if h.store.Len() != 1 {
		t.Fatalf("expected 1 item left")
	}
	if code := h.run("rm", "zzzz"); code != 2 {
		t.Fatalf("unknown ref: exit %d", code)
	}
}

func TestEdit(t *testing.T) {
	h := newHarness(t, fixture("aaaa-1", "Milk", model.Dairy, model.Purchased()))
	if code := h.run("edit", "1", "--name", "Whole milk", "-n", "organic"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	got, _ := h.store.Find("aaaa-1")
	if got.Name != "Whole milk" || got.Notes != "organic" || got.Category != model.Dairy || !got.Purchased {
		t.Fatalf("unexpected edit: %#v", got)
	}
	if code := h.run("edit", "1"); code != 2 {
		t.Fatalf("no changes: exit %d", code)
	}
	if code := h.run("edit", "1", "--name", " "); code != 2 {
		t.Fatalf("blank name: exit %d", code)
	}
}

func TestClearPurchasedAndAll(t *testing.T) {
	h := newHarness(t,
		fixture("aaaa-1", "Milk", model.Dairy, model.Purchased()),
		fixture("bbbb-2", "Apples", model.Fruit),
	)
	if code := h.run("clear", "--purchased"); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if h.store.Len() != 1 || !strings.Contains(h.out.String(), "cleared 1 purchased") {
		t.Fatalf("unexpected: len=%d out=%q", h.store.Len(), h.out.String())
	}
	if code := h.run("clear"); code != 0 || h.store.Len() != 0 {
		t.Fatalf("clear all failed: exit %d len %d", code, h.store.Len())
	}
	if code := h.run("reset"); code != 0 || h.store.Len() != 10 {
		t.Fatalf("reset failed: exit %d len %d", code, h.store.Len())
	}
}

func TestListWhereAndGroups(t *testing.T) {
	h := newHarness(t,
		fixture("aaaa-1", "Milk", model.Dairy),
		fixture("bbbb-2", "Apples", model.Fruit, model.Purchased()),
		fixture("cccc-3", "Cheese", model.Dairy),
	)
	if code := h.run("ls", "--where", `category == "Dairy"`); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	out := h.out.String()
	if strings.Contains(out, "Apples") || !strings.Contains(out, " 2. ☐ Cheese") || !strings.Contains(out, " 3. ☐ Milk") {
		t.Fatalf("unexpected ls output:\n%s", out)
	}

	if code := h.run("ls", "--group", "status"); code != 0 {
		t.Fatalf("exit %d", code)
	}
	out = h.out.String()
	if strings.Index(out, "To buy") > strings.Index(out, "Purchased") {
		t.Fatalf("unexpected grouping:\n%s", out)
	}

	if code := h.run("ls", "--where", `name + 1`); code != 2 {
		t.Fatalf("bad expression: exit %d", code)
	}
	if code := h.run("ls", "--group", "aisle"); code != 2 {
		t.Fatalf("bad group: exit %d", code)
	}
}

func TestShareAndExport(t *testing.T) {
	h := newHarness(t,
		fixture("aaaa-1", "Milk", model.Dairy, model.Purchased()),
		fixture("bbbb-2", "Bread", model.Bakery),
	)
	if code := h.run("share"); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if h.out.String() != h.store.ShareList() {
		t.Fatalf("share output differs from store text")
	}

	if code := h.run("export", "--format", "yaml"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	var back []model.Item
	if err := yaml.Unmarshal(h.out.Bytes(), &back); err != nil {
		t.Fatalf("yaml: %v\n%s", err, h.out.String())
	}
	if len(back) != 2 || back[0].Category != model.Dairy || !back[0].Purchased {
		t.Fatalf("unexpected yaml export: %#v", back)
	}

	if code := h.run("export"); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if err := json.Unmarshal(h.out.Bytes(), &back); err != nil || len(back) != 2 {
		t.Fatalf("json export: %v", err)
	}
	if code := h.run("export", "--format", "csv"); code != 2 {
		t.Fatalf("unknown format: exit %d", code)
	}
}

func TestSuggestSearchStatsRecent(t *testing.T) {
	h := newHarness(t, fixture("aaaa-1", "Milk", model.Dairy))
	if code := h.run("suggest"); code != 0 || strings.Contains(h.out.String(), "+ Milk") || !strings.Contains(h.out.String(), "+ Bread") {
		t.Fatalf("suggest: exit %d\n%s", code, h.out.String())
	}
	if code := h.run("suggest", "meat"); code != 0 || !strings.Contains(h.out.String(), "+ Chicken") {
		t.Fatalf("suggest meat: exit %d\n%s", code, h.out.String())
	}
	if code := h.run("suggest", "candy"); code != 2 {
		t.Fatalf("bad category: exit %d", code)
	}
	if code := h.run("search", "dairy"); code != 0 || !strings.Contains(h.out.String(), "Milk") {
		t.Fatalf("search: exit %d\n%s", code, h.out.String())
	}
	if code := h.run("stats"); code != 0 || !strings.Contains(h.out.String(), "Dairy") {
		t.Fatalf("stats: exit %d\n%s", code, h.out.String())
	}
	if code := h.run("recent"); code != 0 || !strings.Contains(h.out.String(), "added 1h ago") {
		t.Fatalf("recent: exit %d\n%s", code, h.out.String())
	}
}

type brokenKV struct{ kv.Memory }

func (b *brokenKV) Get(string) ([]byte, error) { return nil, kv.ErrNotFound }
func (b *brokenKV) Set(string, []byte) error { return errors.New("read-only") }

func TestSaveFailureExitsOne(t *testing.T) {
	h := newHarness(t)
	h.opt.Store = grocery.New(&brokenKV{})
	if code := h.run("add", "Eggs"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(h.errOut.String(), "read-only") {
		t.Fatalf("unexpected stderr: %q", h.errOut.String())
	}
}

func TestUnknownSubcommandAndInteractive(t *testing.T) {
	h := newHarness(t)
	if code := h.run("dance"); code != 2 {
		t.Fatalf("unknown: exit %d", code)
	}
	if code := h.run("ui"); code != 1 {
		t.Fatalf("ui without runner: exit %d", code)
	}
	called := false
	h.opt.Interactive = func(s *grocery.Store) error {
		called = s == h.store
		return nil
	}
	if code := h.run("ui"); code != 0 || !called {
		t.Fatalf("ui: exit %d called %v", code, called)
	}
	if code := h.run("help"); code != 0 || !strings.Contains(h.out.String(), "grocery - a grocery list") {
		t.Fatalf("help: exit %d", code)
	}
}
