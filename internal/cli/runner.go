package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/grocery/internal/grocery"
	"github.com/idilsaglam/grocery/internal/model"
	"github.com/idilsaglam/grocery/internal/query"
	"github.com/idilsaglam/grocery/internal/ui"
)

// Options carries what subcommands need from the composition root.
type Options struct {
	Store *grocery.Store
	Log   *zap.Logger
	Now   func() time.Time

	// Interactive starts the full-screen list; nil disables `ui`.
	Interactive func(*grocery.Store) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Log == nil {
		opt.Log = zap.NewNop()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	cmd, a := args[0], args[1:]
	r := &runner{Options: opt}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ls", "list":
		return r.doList(a)
	case "ui":
		return r.doInteractive()
	case "add":
		return r.doAdd(a)
	case "done":
		return r.withRef("done", a, r.doTogglePurchased)
	case "fav":
		return r.withRef("fav", a, r.doToggleFavorite)
	case "rm":
		return r.withRef("rm", a, r.doRemove)
	case "edit":
		return r.doEdit(a)
	case "clear":
		return r.doClear(a)
	case "reset":
		r.Store.ResetToSampleData()
		return r.saved("reset to sample data")
	case "stats":
		return r.doStats()
	case "recent":
		return r.doRecent()
	case "suggest":
		return r.doSuggest(a)
	case "search":
		if len(a) == 0 {
			ui.Fail("usage: grocery search <text...>")
			return 2
		}
		return r.doSearch(strings.Join(a, " "))
	case "share":
		fmt.Fprint(ui.Stdout(), r.Store.ShareList())
		return 0
	case "export":
		return r.doExport(a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stdout())
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprintf(ui.Stdout(), `grocery - a grocery list for the terminal

Usage:
  grocery [flags] <subcommand> [args]

Flags:
  --sort MODE        name, category, purchased, date, favorites
  --theme NAME       classic, neon, mono
  --color            force colors    --no-color   disable colors
  --ephemeral        keep the list in memory only

Subcommands:
  add [-c CATEGORY] [-n NOTES] [-f] <name...>   Add an item (default category Other)
  ls [--group category|status] [--where EXPR]   List items
  ui                                            Interactive list
  done <ref>         Toggle purchased
  fav <ref>          Toggle favorite
  rm <ref>           Remove an item
  edit <ref> [--name NAME] [-c CATEGORY] [-n NOTES]
  clear [--purchased]                           Clear all (or only purchased) items
  reset              Replace the list with the sample items
  stats              Progress and per-category breakdown
  recent             Five most recently added items
  suggest [CATEGORY] Common items not yet on the list
  search <text...>   Match name, category or notes
  share              Print the list as shareable text
  export [--format json|yaml]

<ref> is the 1-based index shown by `+"`grocery ls`"+` or an id prefix (4+ chars).

Examples:
  grocery add -c dairy -f "Oat milk"
  grocery --sort category ls
  grocery ls --where 'category == "Dairy" && !purchased'
  grocery done 2
`)
}

type runner struct {
	Options
}

// saved reports success, or the write-through failure recorded by the store.
func (r *runner) saved(msg string) int {
	if err := r.Store.SaveErr(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(msg)
	return 0
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// -------------- ref resolution ----------------

var errBadRef = errors.New("no such item")

// resolve turns a 1-based index in the current sort order, or an id
// prefix, into an item.
func (r *runner) resolve(ref string) (model.Item, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		sorted := r.Store.SortedItems()
		if n < 1 || n > len(sorted) {
			return model.Item{}, fmt.Errorf("index out of range: have %d, got %d", len(sorted), n)
		}
		return sorted[n-1], nil
	}
	if len(ref) >= 4 {
		if it, ok := r.Store.FindPrefix(ref); ok {
			return it, nil
		}
	}
	return model.Item{}, fmt.Errorf("%w: %s", errBadRef, ref)
}

func (r *runner) withRef(name string, a []string, fn func(model.Item) int) int {
	if len(a) != 1 {
		ui.Fail(fmt.Sprintf("usage: grocery %s <ref>", name))
		return 2
	}
	it, err := r.resolve(a[0])
	if err != nil {
		ui.Fail(name + ": " + err.Error())
		ui.Hint("Hint: run `grocery ls` to see valid indexes")
		return 2
	}
	return fn(it)
}

// -------------- subcommand impls ----------------

func (r *runner) doAdd(a []string) int {
	fs := newFlagSet("add")
	cat := fs.String("c", "other", "category")
	notes := fs.String("n", "", "notes")
	fav := fs.Bool("f", false, "favorite")
	if err := fs.Parse(a); err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}
	name := strings.Join(fs.Args(), " ")
	c, err := model.ParseCategory(*cat)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}
	opts := []model.ItemOption{model.WithNotes(*notes), model.AddedAt(r.Now())}
	if *fav {
		opts = append(opts, model.Favorite())
	}
	it, err := model.NewItem(name, c, opts...)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}
	r.Store.Add(it)
	return r.saved("added " + it.Name)
}

func (r *runner) doTogglePurchased(it model.Item) int {
	r.Store.TogglePurchased(it)
	if it.Purchased {
		return r.saved("unmarked " + it.Name)
	}
	return r.saved("purchased " + it.Name)
}

func (r *runner) doToggleFavorite(it model.Item) int {
	r.Store.ToggleFavorite(it)
	if it.Favorite {
		return r.saved("unstarred " + it.Name)
	}
	return r.saved("starred " + it.Name)
}

func (r *runner) doRemove(it model.Item) int {
	r.Store.Delete(it)
	return r.saved("removed " + it.Name)
}

func (r *runner) doEdit(a []string) int {
	if len(a) == 0 {
		ui.Fail("usage: grocery edit <ref> [--name NAME] [-c CATEGORY] [-n NOTES]")
		return 2
	}
	it, err := r.resolve(a[0])
	if err != nil {
		ui.Fail("edit: " + err.Error())
		return 2
	}
	fs := newFlagSet("edit")
	name := fs.String("name", "", "new name")
	cat := fs.String("c", "", "new category")
	notes := fs.String("n", "", "new notes")
	if err := fs.Parse(a[1:]); err != nil {
		ui.Fail("edit: " + err.Error())
		return 2
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		ui.Fail("edit: nothing to change")
		return 2
	}
	if set["name"] {
		n := strings.TrimSpace(*name)
		if n == "" {
			ui.Fail("edit: " + model.ErrEmptyName.Error())
			return 2
		}
		it.Name = n
	}
	if set["c"] {
		c, err := model.ParseCategory(*cat)
		if err != nil {
			ui.Fail("edit: " + err.Error())
			return 2
		}
		it.Category = c
	}
	if set["n"] {
		it.Notes = strings.TrimSpace(*notes)
	}
	r.Store.Update(it)
	return r.saved("updated " + it.Name)
}

func (r *runner) doClear(a []string) int {
	fs := newFlagSet("clear")
	purchased := fs.Bool("purchased", false, "only purchased items")
	if err := fs.Parse(a); err != nil {
		ui.Fail("clear: " + err.Error())
		return 2
	}
	if *purchased {
		n := len(r.Store.PurchasedItems())
		r.Store.ClearPurchased()
		return r.saved(fmt.Sprintf("cleared %d purchased", n))
	}
	r.Store.ClearAll()
	return r.saved("cleared")
}

func (r *runner) doInteractive() int {
	if r.Interactive == nil {
		ui.Fail("ui: interactive mode unavailable")
		return 1
	}
	if err := r.Interactive(r.Store); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	return 0
}

func (r *runner) doSearch(text string) int {
	matches := r.Store.Search(text)
	lines := []string{ui.C(ui.Current().Title, fmt.Sprintf("Search %q", text)), ""}
	lines = append(lines, r.flatLines(matches)...)
	ui.Panel(lines)
	return 0
}

func (r *runner) doExport(a []string) int {
	fs := newFlagSet("export")
	format := fs.String("format", "json", "json or yaml")
	if err := fs.Parse(a); err != nil {
		ui.Fail("export: " + err.Error())
		return 2
	}
	items := r.Store.Items()
	var (
		b   []byte
		err error
	)
	switch *format {
	case "json":
		b, err = json.MarshalIndent(items, "", "  ")
		b = append(b, '\n')
	case "yaml":
		b, err = yaml.Marshal(items)
	default:
		ui.Fail("export: unknown format: " + *format)
		return 2
	}
	if err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	if _, err := ui.Stdout().Write(b); err != nil {
		r.Log.Warn("write export", zap.Error(err))
		return 1
	}
	return 0
}

func (r *runner) doSuggest(a []string) int {
	title := "Suggestions"
	var names []string
	if len(a) > 0 {
		c, err := model.ParseCategory(strings.Join(a, " "))
		if err != nil {
			ui.Fail("suggest: " + err.Error())
			return 2
		}
		title = "Suggestions · " + ui.CategoryTag(c)
		names = r.Store.GetCategorySuggestions(c)
	} else {
		names = r.Store.GetSmartSuggestions()
	}
	lines := []string{ui.C(ui.Current().Title, title), ""}
	if len(names) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "nothing to suggest"))
	}
	for _, n := range names {
		lines = append(lines, ui.C(ui.Current().Muted, "+")+" "+n)
	}
	ui.Panel(lines)
	return 0
}

// parseWhere compiles an optional --where expression.
func (r *runner) parseWhere(src string) (*query.Filter, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	return query.Compile(src, query.WithNow(r.Now))
}
