package store

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/koolkav1/aem-spa-page-model-manager/ir"
	"github.com/koolkav1/aem-spa-page-model-manager/model"
)

const rootPath = "/content/site"

func testLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustModel(t *testing.T, js string) *model.Model {
	t.Helper()
	m, err := model.FromJSON([]byte(js))
	if err != nil {
		t.Fatalf("FromJSON(%s): %v", js, err)
	}
	return m
}

func newStore(t *testing.T, js string) *Store {
	t.Helper()
	return NewWithData(rootPath, mustModel(t, js), testLog())
}

// checkOrder fails unless every ItemsOrder in the tree is a permutation of
// the keys of its Items.
func checkOrder(t *testing.T, at string, m *model.Model) {
	t.Helper()
	if m == nil {
		return
	}
	if m.Items != nil || m.ItemsOrder != nil {
		keys := make([]string, 0, len(m.Items))
		for k := range m.Items {
			keys = append(keys, k)
		}
		order := slices.Clone(m.ItemsOrder)
		sort.Strings(keys)
		sort.Strings(order)
		if !slices.Equal(keys, order) {
			t.Errorf("%s: itemsOrder %v is not a permutation of items %v", at, m.ItemsOrder, keys)
		}
	}
	for k, v := range m.Items {
		checkOrder(t, at+"/"+k, v)
	}
	for k, v := range m.Children {
		checkOrder(t, k, v)
	}
}

func TestScenario(t *testing.T) {
	s := New(testLog())
	s.Initialize(rootPath, model.New())
	if s.State() != Initialized {
		t.Fatalf("state = %v", s.State())
	}

	const title = "/content/site/jcr:content/title"
	s.Insert(title, mustModel(t, `{"value": "Hello", "label": "L"}`), "", false)

	got := s.Get(title)
	if !model.Equal(got, mustModel(t, `{"value": "Hello", "label": "L"}`)) {
		t.Errorf("Get(%s) = %v", title, got.Keys())
	}
	if diff := cmp.Diff([]string{"title"}, s.GetData(rootPath, false).ItemsOrder); diff != "" {
		t.Errorf("root order (-want +got):\n%s", diff)
	}

	s.Set(title, mustModel(t, `{"value": "Bye"}`))
	got = s.Get(title)
	if v := got.Prop("value").String; v != "Bye" {
		t.Errorf("value = %q, want Bye", v)
	}
	if !got.Has("label") || got.Prop("label").String != "" {
		t.Errorf("label not preserved as empty: %v", got.Prop("label"))
	}

	parent, ok := s.Remove(title)
	if !ok || parent != rootPath {
		t.Errorf("Remove = %q, %v, want %q, true", parent, ok, rootPath)
	}
	if got := s.Get(title); got != nil {
		t.Errorf("Get after Remove = %v", got.Keys())
	}
	order := s.GetMutable(rootPath).ItemsOrder
	if order == nil || len(order) != 0 {
		t.Errorf("order after Remove = %#v, want empty", order)
	}

	const other = "/content/other-page"
	s.Insert(other, mustModel(t, `{"title": "Other"}`), "", false)
	if _, ok := s.GetMutable("").Children[other]; !ok {
		t.Errorf("page not stored under children[%q]", other)
	}
	if got := s.Get(other); got == nil || got.Prop("title").String != "Other" {
		t.Errorf("Get(%s) = %v", other, got)
	}
	if p, ok := s.Remove(other); ok || p != "" {
		t.Errorf("Remove page = %q, %v", p, ok)
	}
	if got := s.Get(other); got != nil {
		t.Error("page still present after Remove")
	}
}

func TestSiblingOrdering(t *testing.T) {
	const abc = `{":items": {"a": {}, "b": {}, "c": {}}, ":itemsOrder": ["a", "b", "c"]}`
	tests := []struct {
		name    string
		key     string
		sibling string
		before  bool
		want    []string
	}{
		{"before", "d", "b", true, []string{"a", "d", "b", "c"}},
		{"after", "d", "b", false, []string{"a", "b", "d", "c"}},
		{"after last", "d", "c", false, []string{"a", "b", "c", "d"}},
		{"before first", "d", "a", true, []string{"d", "a", "b", "c"}},
		{"missing sibling", "d", "x", true, []string{"a", "b", "c", "d"}},
		{"no sibling", "d", "", true, []string{"a", "b", "c", "d"}},
		{"existing key moves", "a", "c", false, []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, abc)
			s.Insert(rootPath+"/jcr:content/"+tt.key, model.New(), tt.sibling, tt.before)
			root := s.GetMutable(rootPath)
			if diff := cmp.Diff(tt.want, root.ItemsOrder); diff != "" {
				t.Errorf("order (-want +got):\n%s", diff)
			}
			checkOrder(t, rootPath, root)
		})
	}
}

func TestNestedItems(t *testing.T) {
	s := newStore(t, `{
	  ":items": {
	    "root": {
	      ":items": {"text": {"text": "hi"}, "nested": {":items": {"inner": {"x": 1}}}}
	    },
	    "bare": {}
	  },
	  ":children": {
	    "/content/site/about": {":path": "/content/site/about", ":items": {"x": {"v": 1}}}
	  }
	}`)
	const about = "/content/site/about"

	tests := []struct {
		path   string
		parent string
	}{
		{rootPath + "/jcr:content/root/text", rootPath + "/jcr:content/root"},
		{rootPath + "/jcr:content/root/nested/inner", rootPath + "/jcr:content/root/nested"},
		{rootPath + "/jcr:content/root/jcr:content/fresh", rootPath + "/jcr:content/root/jcr:content"},
		{rootPath + "/jcr:content/bare/fresh", rootPath + "/jcr:content/bare"},
		{about + "/jcr:content/fresh", about},
		{about + "/jcr:content/x/fresh", about + "/jcr:content/x"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v := mustModel(t, `{"value": "v"}`)
			s.Insert(tt.path, v, "", false)
			if got := s.Get(tt.path); !model.Equal(got, v) {
				t.Fatalf("Get after Insert = %v", got)
			}
			checkOrder(t, rootPath, s.GetMutable(""))
			parent, ok := s.Remove(tt.path)
			if !ok || parent != tt.parent {
				t.Errorf("Remove = %q, %v, want %q", parent, ok, tt.parent)
			}
			if got := s.Get(tt.path); got != nil {
				t.Errorf("Get after Remove = %v", got.Keys())
			}
			checkOrder(t, rootPath, s.GetMutable(""))
		})
	}

	const x = about + "/jcr:content/x"
	s.Set(x, mustModel(t, `{"w": 2}`))
	if got := s.Get(x); !model.Equal(got, mustModel(t, `{"w": 2, "v": "", ":items": {}}`)) {
		t.Errorf("Get after Set on child page item = %s", mustJSON(t, got))
	}
	if _, ok := s.GetMutable(rootPath).Items["x"]; ok {
		t.Error("Set on child page item wrote to the root page")
	}
}

func TestOrderInvariant(t *testing.T) {
	s := newStore(t, `{":items": {"a": {":items": {"x": {}}}, "b": {}}}`)
	var paths []string
	for i := range 20 {
		var p string
		switch i % 3 {
		case 0:
			p = fmt.Sprintf("%s/jcr:content/i%d", rootPath, i)
		case 1:
			p = fmt.Sprintf("%s/jcr:content/a/i%d", rootPath, i)
		default:
			p = fmt.Sprintf("%s/jcr:content/b/i%d", rootPath, i)
		}
		sibling := ""
		if i%4 == 0 {
			sibling = "a"
		}
		s.Insert(p, model.New(), sibling, i%2 == 0)
		paths = append(paths, p)
		checkOrder(t, rootPath, s.GetMutable(""))
	}
	for _, p := range paths {
		if _, ok := s.Remove(p); !ok {
			t.Errorf("Remove(%s) failed", p)
		}
		if _, ok := s.Remove(p); ok {
			t.Errorf("second Remove(%s) succeeded", p)
		}
		checkOrder(t, rootPath, s.GetMutable(""))
	}
}

func TestNoAliasing(t *testing.T) {
	data := mustModel(t, `{":items": {"title": {"value": "Hello", ":items": {}}}}`)
	s := NewWithData(rootPath, data, testLog())
	data.Items["title"].SetProp("value", ir.FromString("caller"))

	const title = rootPath + "/jcr:content/title"
	got := s.Get(title)
	if v := got.Prop("value").String; v != "Hello" {
		t.Fatalf("Initialize aliased caller data: value = %q", v)
	}
	got.SetProp("value", ir.FromString("changed"))
	got.Items["new"] = model.New()
	got.ItemsOrder = append(got.ItemsOrder, "new")

	again := s.Get(title)
	if v := again.Prop("value").String; v != "Hello" {
		t.Errorf("value = %q after mutating a Get result", v)
	}
	if len(again.Items) != 0 {
		t.Errorf("items = %v after mutating a Get result", again.Items)
	}

	ins := mustModel(t, `{"value": "inserted"}`)
	s.Insert(rootPath+"/jcr:content/other", ins, "", false)
	ins.SetProp("value", ir.FromString("caller"))
	if v := s.Get(rootPath + "/jcr:content/other").Prop("value").String; v != "inserted" {
		t.Errorf("Insert aliased caller data: value = %q", v)
	}

	set := mustModel(t, `{"value": "set"}`)
	s.Set(title, set)
	set.SetProp("value", ir.FromString("caller"))
	if v := s.Get(title).Prop("value").String; v != "set" {
		t.Errorf("Set aliased caller data: value = %q", v)
	}

	whole := s.DataMap()
	delete(whole.Items, "title")
	if s.Get(title) == nil {
		t.Error("DataMap aliased the root")
	}
}

func TestGetAddresses(t *testing.T) {
	s := newStore(t, `{
	  ":path": "/content/site",
	  "title": "Home",
	  ":children": {
	    "/content/site/about": {":items": {"text": {"value": "about"}}}
	  }
	}`)
	for _, p := range []string{"", rootPath, rootPath + "/jcr:content"} {
		if got := s.Get(p); got == nil || got.Prop("title").String != "Home" {
			t.Errorf("Get(%q) did not return the root", p)
		}
	}
	if got := s.Get("/content/site/about.html"); got == nil {
		t.Error("child page not found by its sanitized path")
	}
	got := s.Get("/content/site/about/jcr:content/text")
	if got == nil || got.Prop("value").String != "about" {
		t.Errorf("item of child page = %v", got)
	}
	if got := s.Get("/content/site/missing/jcr:content/text"); got != nil {
		t.Error("item of missing page found")
	}
	if got := s.Get(rootPath + "/jcr:content/missing"); got != nil {
		t.Error("missing item found")
	}
}

func TestSetNeverCreates(t *testing.T) {
	s := newStore(t, `{":items": {"a": {}}}`)
	s.Set(rootPath+"/jcr:content/b", mustModel(t, `{"v": 1}`))
	if s.Get(rootPath+"/jcr:content/b") != nil {
		t.Error("Set created a missing item")
	}
	s.Set(rootPath+"/jcr:content/a/deeper", mustModel(t, `{"v": 1}`))
	s.Set("", mustModel(t, `{"v": 1}`))
	checkOrder(t, rootPath, s.GetMutable(""))
}

func TestSetKeepsReservedKeys(t *testing.T) {
	s := newStore(t, `{":items": {"a": {":type": "t", ":items": {"x": {}}}}}`)
	const a = rootPath + "/jcr:content/a"
	s.Set(a, mustModel(t, `{"value": "v"}`))
	got := s.GetMutable(a)
	if got.Items == nil || got.ItemsOrder == nil {
		t.Errorf("reserved collections not kept: items=%v order=%v", got.Items, got.ItemsOrder)
	}
	checkOrder(t, a, got)

	const title = rootPath + "/jcr:content/title"
	s.Insert(title, mustModel(t, `{":type": "site/title", ":hierarchyType": "h", ":path": "/p", "value": "Hello"}`), "", false)
	s.Set(title, mustModel(t, `{"value": "Bye"}`))
	res := s.Get(title)
	for _, k := range []string{model.TypeProp, model.HierarchyTypeProp, model.PathProp} {
		if !res.Has(k) {
			t.Errorf("Set dropped %s", k)
		}
	}
	if res.Type != "" || res.HierarchyType != "" || res.Path != "" {
		t.Errorf("placeholders = %q %q %q", res.Type, res.HierarchyType, res.Path)
	}
	want := `{"value":"Bye",":type":"",":hierarchyType":"",":path":""}`
	if got := mustJSON(t, res); got != want {
		t.Errorf("Get after Set = %s, want %s", got, want)
	}
}

func mustJSON(t *testing.T, m *model.Model) string {
	t.Helper()
	d, err := m.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestUninitialized(t *testing.T) {
	s := New(testLog())
	for range 2 {
		if s.State() != Uninitialized {
			t.Fatalf("state = %v", s.State())
		}
		if s.Get("") != nil || s.Get(rootPath) != nil || s.DataMap() != nil {
			t.Error("read returned data from an empty store")
		}
		s.Insert(rootPath+"/jcr:content/a", model.New(), "", false)
		s.Insert("/content/page", model.New(), "", false)
		s.Set(rootPath+"/jcr:content/a", model.New())
		if p, ok := s.Remove(rootPath + "/jcr:content/a"); ok || p != "" {
			t.Errorf("Remove = %q, %v", p, ok)
		}
		if s.Get("") != nil {
			t.Error("mutation initialized the store")
		}
		s.Initialize(rootPath, nil)
		if s.RootPath() != rootPath || s.Get("") == nil {
			t.Error("Initialize(nil) did not initialize")
		}
		s.Destroy()
		if s.RootPath() != "" {
			t.Errorf("RootPath after Destroy = %q", s.RootPath())
		}
	}
}

func TestInitializeReplaces(t *testing.T) {
	s := newStore(t, `{":items": {"a": {}}}`)
	s.Initialize("/content/other", mustModel(t, `{"title": "x"}`))
	if s.Get("/content/other/jcr:content/a") != nil {
		t.Error("Initialize merged with prior content")
	}
	if s.Get("/content/other").Prop("title").String != "x" {
		t.Error("new root not installed")
	}
}

func TestLocateAssertion(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("locate(nil) did not panic")
		}
	}()
	locate("a", nil, nil, "")
}

func TestGuarded(t *testing.T) {
	g := NewGuarded(New(testLog()))
	g.Initialize(rootPath, model.New())
	var wg sync.WaitGroup
	const n = 50
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := fmt.Sprintf("%s/jcr:content/i%d", rootPath, i)
			g.Insert(p, model.New(), "", false)
			_ = g.Get(p)
			if i%5 == 0 {
				g.Remove(p)
			}
		}()
	}
	wg.Wait()
	root := g.DataMap()
	if len(root.Items) != n-n/5 {
		t.Errorf("items = %d, want %d", len(root.Items), n-n/5)
	}
	checkOrder(t, rootPath, root)

	g.Update(func(s *Store) {
		s.Insert(rootPath+"/jcr:content/first", model.New(), "i1", true)
		s.Set(rootPath+"/jcr:content/first", mustModel(t, `{"v": 1}`))
	})
	if got := g.Get(rootPath + "/jcr:content/first"); got == nil || !got.Has("v") {
		t.Errorf("Update result = %v", got)
	}
	if g.RootPath() != rootPath || g.State() != Initialized {
		t.Error("accessors")
	}
	g.Set(rootPath+"/jcr:content/first", model.New())
	g.Destroy()
	if g.State() != Uninitialized {
		t.Error("Destroy")
	}
}
