package store

import (
	"github.com/koolkav1/aem-spa-page-model-manager/model"
	"github.com/koolkav1/aem-spa-page-model-manager/pathutil"
)

var pageDelimiters = []string{pathutil.JCRContent}

// itemWrapper is the result of locate: the item found, if any, along with
// the node holding it and the address of that node relative to the page.
type itemWrapper struct {
	Data       *model.Model
	Parent     *model.Model
	ParentPath string
	Key        string
}

func (w itemWrapper) empty() bool {
	return w.Data == nil && w.Parent == nil
}

// locate searches subtree for the item at itemPath, relative to subtree.
//
// Item keys may themselves contain "/", so at each level every key is
// tried: an exact match ends the search, a key which is a component prefix
// of itemPath leads into that item with the remainder, stripped of page
// delimiters.  When the descent ends at a node lacking the item, the
// wrapper carries that node as Parent with no Data, which is where an
// insert of the item belongs.
//
// parent and parentPath describe subtree to the caller's level; pass nil
// and "" at the page.
func locate(itemPath string, subtree, parent *model.Model, parentPath string) itemWrapper {
	if subtree == nil {
		panic("assertion error: no data provided to item locator")
	}
	res := itemWrapper{Parent: parent, ParentPath: parentPath}
	if subtree.Items == nil {
		return res
	}
	for _, key := range subtree.ItemKeys() {
		child := subtree.Items[key]
		if key == itemPath {
			res.Data = child
			res.Parent = subtree
			res.Key = key
			return res
		}
		sub := pathutil.Subpath(itemPath, key)
		delim := pathutil.StartStrings(sub, pageDelimiters)
		childPath := pathutil.Join(parentPath, key, delim)
		sub = pathutil.TrimStrings(sub, pageDelimiters)
		if sub == itemPath {
			continue
		}
		if w := locate(sub, child, child, childPath); !w.empty() {
			return w
		}
	}
	return res
}
