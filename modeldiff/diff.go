// Package modeldiff compares page model snapshots.
//
// Text gives a line diff of the JSON renderings, for people; Items lists
// the item paths which were added, removed or changed, for programs
// deciding which listeners to notify.
package modeldiff

import (
	"bytes"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/koolkav1/aem-spa-page-model-manager/encode"
	"github.com/koolkav1/aem-spa-page-model-manager/ir"
	"github.com/koolkav1/aem-spa-page-model-manager/model"
	"github.com/koolkav1/aem-spa-page-model-manager/pathutil"
)

// Text returns a line diff from a to b with "-", "+" and " " line
// prefixes, or "" if they render the same.  With colored set, removed and
// added lines are colored red and green.
func Text(a, b *model.Model, colored bool) (string, error) {
	from, err := render(a)
	if err != nil {
		return "", err
	}
	to, err := render(b)
	if err != nil {
		return "", err
	}
	if from == to {
		return "", nil
	}
	dmp := diffpatch.New()
	c1, c2, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lines)

	del, ins := fmtFunc(colored, color.FgRed), fmtFunc(colored, color.FgGreen)
	var buf strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffpatch.DiffDelete:
				buf.WriteString(del("-" + line))
			case diffpatch.DiffInsert:
				buf.WriteString(ins("+" + line))
			case diffpatch.DiffEqual:
				buf.WriteString(" " + line)
			}
		}
	}
	return buf.String(), nil
}

func fmtFunc(colored bool, attr color.Attribute) func(string) string {
	if !colored {
		return func(s string) string { return s }
	}
	c := color.New(attr)
	c.EnableColor()
	return func(s string) string {
		line, nl := strings.CutSuffix(s, "\n")
		if nl {
			return c.Sprint(line) + "\n"
		}
		return c.Sprint(line)
	}
}

func render(m *model.Model) (string, error) {
	var buf bytes.Buffer
	if err := encode.EncodeModel(m, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Kind is the kind of an item change.
type Kind int

const (
	Added Kind = iota
	Removed
	Changed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Change is a change of the item at Path.
type Change struct {
	Path string
	Kind Kind
}

// Items compares the items of two versions of the page at pagePath.  An
// item is changed when its properties (compared with ir.Equal), reserved
// scalars, item keys or child page keys differ; changes within its items
// are reported for those.  Added and removed items are reported without
// their descendants.
func Items(a, b *model.Model, pagePath string) []Change {
	var res []Change
	var walk func(a, b *model.Model, rel string)
	walk = func(a, b *model.Model, rel string) {
		keys := b.ItemKeys()
		for _, k := range a.ItemKeys() {
			if _, ok := b.Items[k]; !ok {
				keys = append(keys, k)
			}
		}
		for _, k := range keys {
			ai, inA := a.Items[k]
			bi, inB := b.Items[k]
			itemRel := pathutil.Join(rel, k)
			path := pathutil.JCRPath(pagePath, itemRel)
			switch {
			case !inA:
				res = append(res, Change{Path: path, Kind: Added})
			case !inB:
				res = append(res, Change{Path: path, Kind: Removed})
			default:
				if !sameOwn(ai, bi) {
					res = append(res, Change{Path: path, Kind: Changed})
				}
				walk(ai, bi, itemRel)
			}
		}
	}
	if a == nil {
		a = model.New()
	}
	if b == nil {
		b = model.New()
	}
	walk(a, b, "")
	return res
}

func sameOwn(a, b *model.Model) bool {
	for _, k := range []string{model.TypeProp, model.HierarchyTypeProp, model.PathProp} {
		if a.Has(k) != b.Has(k) {
			return false
		}
	}
	return a.Type == b.Type &&
		a.HierarchyType == b.HierarchyType &&
		a.Path == b.Path &&
		ir.Equal(props(a), props(b)) &&
		slices.Equal(a.ItemKeys(), b.ItemKeys()) &&
		slices.Equal(slices.Sorted(maps.Keys(a.Children)), slices.Sorted(maps.Keys(b.Children)))
}

func props(m *model.Model) *ir.Node {
	if m.Props == nil {
		return ir.Object()
	}
	return m.Props
}
