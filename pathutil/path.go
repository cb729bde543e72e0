package pathutil

import (
	"net/url"
	"regexp"
	"strings"
)

// JCRContent is the content delimiter: the path segment separating a page
// address from the address of an item within that page.
const JCRContent = "jcr:content"

// DefaultSelector and DefaultExtension make up the model json suffix
// (".model.json") of model urls.
const (
	DefaultSelector  = "model"
	DefaultExtension = "json"
)

const dummyOrigin = "http://dummy"

var (
	contextPathRe = regexp.MustCompile(`/(?:content|apps|libs|etc|etc\.clientlibs|conf|mnt/overlay)/`)
	itemPathRe    = regexp.MustCompile(`(.+)/` + regexp.QuoteMeta(JCRContent) + `/(.+)`)
	htmlExtRe     = regexp.MustCompile(`\.html?$`)
	slashesRe     = regexp.MustCompile(`/+`)

	dummyBase, _ = url.Parse(dummyOrigin)
)

// Sanitize returns the canonical form of path used as a store address.
//
// The pathname is resolved against a fixed origin, so "..", "." and
// scheme-relative forms collapse; the context path is removed; everything
// from the first "." on (selectors, extension) is dropped and repeated
// separators are collapsed.  Sanitize returns false for an empty path.
// Sanitize(Sanitize(p)) == Sanitize(p).
func Sanitize(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	res := parsePathname(path)
	if res == "" {
		return "", true
	}
	res = Internalize(res, ContextPath(res))
	if i := strings.IndexByte(res, '.'); i > -1 {
		res = res[:i]
	}
	return Normalize(res), true
}

func parsePathname(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return dummyBase.ResolveReference(ref).EscapedPath()
}

// ContextPath returns the part of location preceding the first well known
// repository root segment (/content/, /apps/, /libs/, /etc/,
// /etc.clientlibs/, /conf/, /mnt/overlay/), or "" if there is none.
func ContextPath(location string) string {
	loc := contextPathRe.FindStringIndex(location)
	if loc == nil || loc[0] <= 0 {
		return ""
	}
	return location[:loc[0]]
}

// Internalize removes contextPath from the front of u.
func Internalize(u, contextPath string) string {
	if u == "" {
		return ""
	}
	if contextPath == "" {
		return u
	}
	if rest, ok := strings.CutPrefix(u, contextPath+"/"); ok {
		return "/" + rest
	}
	return u
}

// Externalize prefixes u with contextPath unless it is already there.
func Externalize(u, contextPath string) string {
	if strings.HasPrefix(u, contextPath) {
		return u
	}
	return contextPath + u
}

// AdaptPagePath internalizes path and maps the page at rootPath to "".
func AdaptPagePath(path, rootPath string) string {
	if path == "" {
		return ""
	}
	local := Internalize(path, ContextPath(path))
	if rootPath == "" {
		return local
	}
	root, _ := Sanitize(rootPath)
	if local == root {
		return ""
	}
	return local
}

// AddSelector inserts ".selector" into the last segment of path, before
// any existing extension.  It is a no-op if selector is empty, path is
// empty or path already contains ".selector".
func AddSelector(path, selector string) string {
	if selector == "" {
		return path
	}
	if !strings.HasPrefix(selector, ".") {
		selector = "." + selector
	}
	if path == "" || strings.Contains(path, selector) {
		return path
	}
	p, query := splitQuery(path)
	dir, file := splitFile(p)
	name, rest, found := strings.Cut(file, ".")
	if !found {
		return dir + file + selector + query
	}
	return dir + name + selector + "." + rest + query
}

// AddExtension sets the extension of the last segment of path, keeping
// selectors.  An existing .htm or .html extension is replaced.  It is a
// no-op if extension is empty, path is empty or path already contains
// ".extension".
func AddExtension(path, extension string) string {
	if extension == "" {
		return path
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	if path == "" || strings.Contains(path, extension) {
		return path
	}
	p, query := splitQuery(Normalize(path))
	dir, file := splitFile(p)
	name, rest, _ := strings.Cut(file, ".")
	var sels []string
	if rest != "" {
		sels = strings.Split(rest, ".")
		if last := sels[len(sels)-1]; last == "htm" || last == "html" {
			sels = sels[:len(sels)-1]
		}
	}
	var b strings.Builder
	b.WriteString(dir)
	b.WriteString(name)
	for _, s := range sels {
		if s == "" {
			continue
		}
		b.WriteByte('.')
		b.WriteString(s)
	}
	b.WriteString(extension)
	b.WriteString(query)
	return b.String()
}

func splitQuery(path string) (string, string) {
	if i := strings.IndexAny(path, "?#"); i > -1 {
		return path[:i], path[i:]
	}
	return path, ""
}

func splitFile(path string) (string, string) {
	i := strings.LastIndexByte(path, '/')
	return path[:i+1], path[i+1:]
}

// ConvertToModelURL replaces a trailing .htm or .html extension with
// .model.json.
func ConvertToModelURL(u string) string {
	return htmlExtRe.ReplaceAllString(u, "."+DefaultSelector+"."+DefaultExtension)
}

// ToModelPath builds the absolute model url of a page or item path.
func ToModelPath(path, contextPath string) string {
	u := AddSelector(path, DefaultSelector)
	u = AddExtension(u, DefaultExtension)
	return MakeAbsolute(Externalize(u, contextPath))
}

// Join joins the non empty paths with "/" and normalizes the result.
func Join(paths ...string) string {
	var parts []string
	for _, p := range paths {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return Normalize(strings.Join(parts, "/"))
}

// Normalize collapses repeated "/".
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	return slashesRe.ReplaceAllString(path, "/")
}

func MakeAbsolute(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

func MakeRelative(path string) string {
	return strings.TrimPrefix(path, "/")
}

// ParentNodePath returns path without its last segment.  It returns false
// for an empty path or a path ending in "/".
func ParentNodePath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	i := strings.LastIndexByte(path, '/') + 1
	if i >= len(path) {
		return "", false
	}
	if i == 0 {
		return "", true
	}
	return path[:i-1], true
}

// NodeName returns the last non empty segment of path.
func NodeName(path string) (string, bool) {
	var last string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			last = s
		}
	}
	return last, last != ""
}

// IsItem reports whether path addresses an item: it matches
// "<page>/jcr:content/<item>" with both parts non empty.
func IsItem(path string) bool {
	return itemPathRe.MatchString(path)
}

// SplitPageContentPaths splits path at the first "/jcr:content/" into the
// page path and the item path.  hasItem is false if there is no delimiter
// or nothing follows it.
func SplitPageContentPaths(path string) (pagePath, itemPath string, hasItem bool) {
	pagePath, itemPath, _ = strings.Cut(path, "/"+JCRContent+"/")
	return pagePath, itemPath, itemPath != ""
}

// JCRPath returns the path of the item at dataPath within the page at
// pagePath.
func JCRPath(pagePath, dataPath string) string {
	return strings.Join([]string{pagePath, JCRContent, dataPath}, "/")
}

// Subpath returns the components of target following those of root when
// root's components are a strict prefix of target's; otherwise target.
// Both are compared without a leading "/".
func Subpath(target, root string) string {
	if target == "" {
		return ""
	}
	tc := strings.Split(MakeRelative(target), "/")
	rc := strings.Split(MakeRelative(root), "/")
	if len(tc) <= len(rc) {
		return target
	}
	for i := range rc {
		if tc[i] != rc[i] {
			return target
		}
	}
	return strings.Join(tc[len(rc):], "/")
}

// TrimStrings repeatedly strips the tokens from the start and the end of
// path, together with the adjacent separator.
func TrimStrings(path string, tokens []string) string {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		for strings.HasPrefix(path, tok) {
			path = MakeRelative(path[len(tok):])
		}
		for strings.HasSuffix(path, tok) {
			path = strings.TrimSuffix(path[:len(path)-len(tok)], "/")
		}
	}
	return path
}

// StartStrings returns the tokens TrimStrings strips from the start of
// path, joined with "/".
func StartStrings(path string, tokens []string) string {
	var res []string
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		for strings.HasPrefix(path, tok) {
			path = MakeRelative(path[len(tok):])
			res = append(res, tok)
		}
	}
	return strings.Join(res, "/")
}

// SplitByDelimiters splits path at every delimiter segment, dropping
// empty pieces.
func SplitByDelimiters(path string, delimiters []string) []string {
	paths := []string{path}
	for _, d := range delimiters {
		var next []string
		delim := Normalize(MakeAbsolute(d) + "/")
		for _, seg := range paths {
			next = append(next, strings.Split(seg, delim)...)
			if strings.HasSuffix(seg, d) {
				last := next[len(next)-1]
				next = next[:len(next)-1]
				if last != d {
					next = append(next, strings.Split(last, MakeAbsolute(d))...)
				}
			}
			next = dropEmpty(next)
		}
		paths = next
	}
	return paths
}

func dropEmpty(ss []string) []string {
	res := ss[:0]
	for _, s := range ss {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
