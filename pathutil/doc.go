// Package pathutil provides the path algebra used to address page models.
//
// Paths come in two shapes:
//
//	/content/site/page                       a page
//	/content/site/page/jcr:content/root/text an item within a page
//
// The jcr:content segment (JCRContent) separates the page address from the
// item address.  Item addresses may cross nested pages, in which case they
// contain the delimiter again.
//
// # Usage
//
//	p, ok := pathutil.Sanitize("/ctx/content/site/page.model.json")
//	// p == "/content/site/page", ok == true
//
//	page, item, hasItem := pathutil.SplitPageContentPaths(p + "/jcr:content/root")
//	// page == "/content/site/page", item == "root"
//
//	u := pathutil.ToModelPath("/content/site/page", "/ctx")
//	// u == "/ctx/content/site/page.model.json"
//
// All functions are pure.  Invalid input yields empty results, never an
// error or a panic.
package pathutil
