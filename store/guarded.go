package store

import (
	"sync"

	"github.com/koolkav1/aem-spa-page-model-manager/model"
)

// Guarded serializes access to a Store with a single mutex.
//
// Reads return copies; the live tree is reachable only from Update.
type Guarded struct {
	mu sync.Mutex
	s  *Store
}

// NewGuarded wraps s.  s must not be used directly afterwards.
func NewGuarded(s *Store) *Guarded {
	return &Guarded{s: s}
}

// Update calls f with the store while holding the lock, so several
// operations apply as one.
func (g *Guarded) Update(f func(*Store)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f(g.s)
}

func (g *Guarded) Initialize(rootPath string, data *model.Model) {
	g.Update(func(s *Store) { s.Initialize(rootPath, data) })
}

func (g *Guarded) Destroy() {
	g.Update(func(s *Store) { s.Destroy() })
}

func (g *Guarded) Get(path string) (res *model.Model) {
	g.Update(func(s *Store) { res = s.Get(path) })
	return
}

func (g *Guarded) Set(path string, value *model.Model) {
	g.Update(func(s *Store) { s.Set(path, value) })
}

func (g *Guarded) Insert(path string, data *model.Model, siblingName string, insertBefore bool) {
	g.Update(func(s *Store) { s.Insert(path, data, siblingName, insertBefore) })
}

func (g *Guarded) Remove(path string) (parentPath string, ok bool) {
	g.Update(func(s *Store) { parentPath, ok = s.Remove(path) })
	return
}

func (g *Guarded) RootPath() (res string) {
	g.Update(func(s *Store) { res = s.RootPath() })
	return
}

func (g *Guarded) DataMap() (res *model.Model) {
	g.Update(func(s *Store) { res = s.DataMap() })
	return
}

func (g *Guarded) State() (res State) {
	g.Update(func(s *Store) { res = s.State() })
	return
}
