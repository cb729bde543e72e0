// Package model defines the page model node.
//
// A page model is the JSON document a content repository exports for a
// page: a record with arbitrary author-defined properties and a few
// reserved keys.
//
//	{
//	  "title": "Home",
//	  ":type": "site/components/page",
//	  ":path": "/content/site",
//	  ":itemsOrder": ["root"],
//	  ":items": {"root": {...}},
//	  ":children": {"/content/site/about": {...}}
//	}
//
// :items holds the nodes addressed within the same page, in the order
// given by :itemsOrder.  :children holds other pages keyed by their
// absolute path.
//
// Models decoded with FromJSON, FromYAML or FromNode always satisfy the
// ItemsOrder invariant; models built by hand can be brought in line with
// Reconcile.
package model
