// Package query selects page model items with expr-lang predicates.
//
// A predicate sees one item at a time through these variables:
//
//	key    the item key
//	path   the item path, including the page path
//	type   the item :type
//	depth  1 for items of the page, 2 for their items and so on
//	props  the non reserved properties, as a map
//	has    has(name) reports whether the property is present
//	items  the number of items of the item
//
// and the functions sanitize(path) and isItem(path) from package pathutil.
//
//	q, err := query.Compile(`type == "site/text" && props.text != ""`)
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/koolkav1/aem-spa-page-model-manager/ir"
	"github.com/koolkav1/aem-spa-page-model-manager/model"
	"github.com/koolkav1/aem-spa-page-model-manager/pathutil"
)

// Query is a compiled item predicate.
type Query struct {
	src string
	prg *vm.Program
}

// Match is an item selected by a Query.
type Match struct {
	Path string
	Item *model.Model
}

// Compile compiles a boolean item predicate.
func Compile(src string) (*Query, error) {
	opts := append(exprOpts(), expr.Env(itemEnv(nil, "", "", 0)), expr.AsBool())
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func (q *Query) String() string {
	return q.src
}

// Match reports whether the item m, stored under key at path and depth,
// satisfies q.
func (q *Query) Match(m *model.Model, key, path string, depth int) (bool, error) {
	res, err := expr.Run(q.prg, itemEnv(m, key, path, depth))
	if err != nil {
		return false, fmt.Errorf("%w at %s: %w", ErrRun, path, err)
	}
	b, _ := res.(bool)
	return b, nil
}

// Find returns the items below page matching q, depth first in item
// order.  pagePath is the address of page.
func Find(page *model.Model, pagePath string, q *Query) ([]Match, error) {
	var res []Match
	var walk func(m *model.Model, rel string, depth int) error
	walk = func(m *model.Model, rel string, depth int) error {
		for _, k := range m.ItemKeys() {
			item := m.Items[k]
			itemRel := pathutil.Join(rel, k)
			itemPath := pathutil.JCRPath(pagePath, itemRel)
			ok, err := q.Match(item, k, itemPath, depth)
			if err != nil {
				return err
			}
			if ok {
				res = append(res, Match{Path: itemPath, Item: item.Clone()})
			}
			if err := walk(item, itemRel, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if page == nil {
		return nil, nil
	}
	if err := walk(page, "", 1); err != nil {
		return nil, err
	}
	return res, nil
}

func itemEnv(m *model.Model, key, path string, depth int) map[string]any {
	props := map[string]any{}
	var typ string
	var items int
	if m != nil {
		if p, ok := ir.ToAny(m.Props).(map[string]any); ok {
			props = p
		}
		typ = m.Type
		items = len(m.Items)
	}
	return map[string]any{
		"key":   key,
		"path":  path,
		"type":  typ,
		"depth": depth,
		"props": props,
		"items": items,
		"has": func(name string) bool {
			return m.Has(name)
		},
	}
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("sanitize", func(params ...any) (any, error) {
			p, _ := pathutil.Sanitize(params[0].(string))
			return p, nil
		},
			new(func(string) string)),
		expr.Function("isItem", func(params ...any) (any, error) {
			return pathutil.IsItem(params[0].(string)), nil
		},
			new(func(string) bool)),
	}
}
