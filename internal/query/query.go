// Package query filters items with expr-lang boolean expressions, e.g.
//
//	category == "Dairy" && !purchased
//	favorite || lower(name) contains "milk"
//	age < 24
//
// Expressions see name, category (label), purchased, favorite, notes
// and age (hours since the item was added).
package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/idilsaglam/grocery/internal/model"
)

var ErrEmptyExpression = errors.New("expression must not be empty")

type Filter struct {
	source  string
	program *vm.Program
	now     func() time.Time
}

type Option func(*Filter)

// WithNow fixes the reference time used for age.
func WithNow(now func() time.Time) Option {
	return func(f *Filter) { f.now = now }
}

// Compile type-checks expression against the item environment. The
// expression must produce a bool.
func Compile(expression string, opts ...Option) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	f := &Filter{source: expression, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	program, err := expr.Compile(expression,
		expr.Env(environment(model.Item{}, time.Time{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	f.program = program
	return f, nil
}

func (f *Filter) String() string { return f.source }

// Match evaluates the expression for one item.
func (f *Filter) Match(it model.Item) (bool, error) {
	out, err := expr.Run(f.program, environment(it, f.now()))
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", f.source, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("evaluate %q: result is %T, not bool", f.source, out)
	}
	return ok, nil
}

// Apply keeps the items that match, preserving order.
func (f *Filter) Apply(items []model.Item) ([]model.Item, error) {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		ok, err := f.Match(it)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func environment(it model.Item, now time.Time) map[string]any {
	age := 0.0
	if !now.IsZero() && !it.DateAdded.IsZero() {
		age = now.Sub(it.DateAdded).Hours()
	}
	return map[string]any{
		"id":        it.ID,
		"name":      it.Name,
		"category":  it.Category.String(),
		"purchased": it.Purchased,
		"favorite":  it.Favorite,
		"notes":     it.Notes,
		"age":       age,
	}
}
