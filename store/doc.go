// Package store provides the in-memory page model store.
//
// A Store holds one root page model, addressed by a root path, and offers
// read, replace, insert and remove operations on the pages and items
// beneath it:
//
//	s := store.NewWithData("/content/site", root, log)
//	s.Insert("/content/site/jcr:content/title", title, "", false)
//	t := s.Get("/content/site/jcr:content/title")
//	parent, ok := s.Remove("/content/site/jcr:content/title")
//
// Data crossing the Store boundary is copied both ways: Initialize, Set
// and Insert store copies of their arguments and Get returns a copy.
// GetMutable is the exception, returning the live node for callers which
// modify the tree themselves.
//
// After every operation the ItemsOrder of every node lists exactly the
// keys of its Items.
//
// Lookups that find nothing return nil and mutations with nothing to act
// on do nothing; the store has no error results.
package store
