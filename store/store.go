package store

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/koolkav1/aem-spa-page-model-manager/model"
	"github.com/koolkav1/aem-spa-page-model-manager/pathutil"
)

// Store holds the page model of a root page and the pages and items
// loaded beneath it.
//
// A Store is not safe for concurrent use and expects at most one mutation
// in flight; see Guarded.
type Store struct {
	root     *model.Model
	rootPath string
	log      *slog.Logger
}

// New returns an uninitialized store.  A nil log uses slog.Default().
func New(log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{log: log.With("component", "store")}
}

// NewWithData returns a store initialized with rootPath and data.
func NewWithData(rootPath string, data *model.Model, log *slog.Logger) *Store {
	s := New(log)
	s.Initialize(rootPath, data)
	return s
}

// Initialize replaces the content of s with a copy of data, rooted at
// rootPath.  A nil data initializes an empty root.
func (s *Store) Initialize(rootPath string, data *model.Model) {
	root := data.Clone()
	if root == nil {
		root = model.New()
	}
	root.Reconcile()
	s.root = root
	s.rootPath = rootPath
	s.log.Debug("initialized", "rootPath", rootPath)
}

// Destroy releases the content of s.  Reads return nil until the next
// Initialize.
func (s *Store) Destroy() {
	s.root = nil
	s.rootPath = ""
}

// RootPath returns the root path given to Initialize, or "".
func (s *Store) RootPath() string {
	return s.rootPath
}

// State reports whether s holds content.
func (s *Store) State() State {
	if s.root == nil {
		return Uninitialized
	}
	return Initialized
}

// DataMap returns a copy of the whole model.
func (s *Store) DataMap() *model.Model {
	return s.root.Clone()
}

// Get returns a copy of the model at path, or nil.
//
// An empty path, the root path and the root path followed by jcr:content
// address the root.  A page path addresses the root or one of its
// children; an item path adds the item address within that page.
func (s *Store) Get(path string) *model.Model {
	return s.get(path).Clone()
}

// GetMutable returns the live model at path, or nil.  Changes made to the
// result are changes to the store, and the caller is responsible for
// keeping ItemsOrder consistent.
func (s *Store) GetMutable(path string) *model.Model {
	return s.get(path)
}

// GetData is Get if immutable is set and GetMutable otherwise.
func (s *Store) GetData(path string, immutable bool) *model.Model {
	if immutable {
		return s.Get(path)
	}
	return s.GetMutable(path)
}

func (s *Store) get(path string) *model.Model {
	if s.root == nil {
		return nil
	}
	path = strings.TrimSuffix(path, "/"+pathutil.JCRContent)
	if path == "" || path == s.rootPath {
		return s.root
	}
	pagePath, itemPath, hasItem := pathutil.SplitPageContentPaths(path)
	page := s.page(pagePath)
	if page == nil || !hasItem {
		return page
	}
	return locate(itemPath, page, nil, "").Data
}

func (s *Store) page(pagePath string) *model.Model {
	if s.root == nil {
		return nil
	}
	if pagePath == "" || pagePath == s.root.Path || pagePath == s.rootPath {
		return s.root
	}
	if p, ok := s.root.Children[pagePath]; ok {
		return p
	}
	if sp, ok := pathutil.Sanitize(pagePath); ok {
		return s.root.Children[sp]
	}
	return nil
}

// Set replaces the existing item at path with a copy of value.  Keys of
// the replaced item missing from value are kept with an empty value.  Set
// does nothing if there is no item at path.
func (s *Store) Set(path string, value *model.Model) {
	key, ok := pathutil.NodeName(path)
	if !ok {
		return
	}
	parentPath, _ := pathutil.ParentNodePath(path)
	parent := s.get(parentPath)
	if parent == nil || parent.Items == nil {
		s.log.Debug("set: no parent items", "path", path)
		return
	}
	old, ok := parent.Items[key]
	if !ok {
		s.log.Debug("set: no such item", "path", path)
		return
	}
	v := value.Clone()
	if v == nil {
		v = model.New()
	}
	for _, k := range old.Keys() {
		if !v.Has(k) {
			v.SetEmpty(k)
		}
	}
	v.Reconcile()
	parent.Items[key] = v
}

// Insert stores a copy of data at path.
//
// A path without jcr:content is a page: data becomes a child page of the
// root under the literal path.  Otherwise data becomes an item, placed
// relative to siblingName when that item exists in the same parent, and
// last otherwise.
func (s *Store) Insert(path string, data *model.Model, siblingName string, insertBefore bool) {
	if path == "" {
		s.log.Warn("insert: no path provided")
		return
	}
	if s.root == nil {
		s.log.Debug("insert: store not initialized", "path", path)
		return
	}
	v := data.Clone()
	if v == nil {
		v = model.New()
	}
	v.Reconcile()
	if !pathutil.IsItem(path) {
		if s.root.Children == nil {
			s.root.Children = map[string]*model.Model{}
		}
		s.root.Children[path] = v
		return
	}
	pagePath, itemPath, _ := pathutil.SplitPageContentPaths(path)
	name, ok := pathutil.NodeName(itemPath)
	if !ok {
		return
	}
	parent := s.page(pagePath)
	if parent != nil {
		if w := locate(itemPath, parent, nil, ""); w.Parent != nil {
			parent = w.Parent
		}
	} else {
		parent = s.root
	}
	insertItem(parent, name, v, siblingName, insertBefore)
}

func insertItem(parent *model.Model, name string, v *model.Model, siblingName string, insertBefore bool) {
	if parent.Items == nil {
		parent.Items = map[string]*model.Model{}
	}
	if _, ok := parent.Items[name]; ok {
		parent.ItemsOrder = slices.DeleteFunc(parent.ItemsOrder, func(k string) bool { return k == name })
	}
	parent.Items[name] = v
	i := -1
	if siblingName != "" {
		i = slices.Index(parent.ItemsOrder, siblingName)
	}
	switch {
	case i < 0:
		parent.ItemsOrder = append(parent.ItemsOrder, name)
	case insertBefore:
		parent.ItemsOrder = slices.Insert(parent.ItemsOrder, i, name)
	default:
		parent.ItemsOrder = slices.Insert(parent.ItemsOrder, i+1, name)
	}
}

// Remove deletes the model at path.
//
// For an item, Remove returns the address of the node which held it: the
// page path for an item of the page itself and the item path of the
// holding item otherwise.  Removing a page returns false whether or not it
// existed.
func (s *Store) Remove(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if !pathutil.IsItem(path) {
		if s.root != nil {
			delete(s.root.Children, path)
		}
		return "", false
	}
	pagePath, itemPath, _ := pathutil.SplitPageContentPaths(path)
	if page := s.page(pagePath); page != nil {
		w := locate(itemPath, page, nil, "")
		if w.Data != nil && w.Parent != nil {
			delete(w.Parent.Items, w.Key)
			w.Parent.ItemsOrder = slices.DeleteFunc(w.Parent.ItemsOrder, func(k string) bool { return k == w.Key })
			if w.ParentPath == "" {
				return pagePath, true
			}
			return pathutil.JCRPath(pagePath, w.ParentPath), true
		}
	}
	s.log.Warn("item not found, nothing to remove", "path", path)
	return "", false
}
