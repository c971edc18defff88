package source

import "regexp"

// pathGrammar matches a whole source path:
//
//	root ( sep subdir )* sep name locale? "." extension
//
// Groups: 1 root, 2 directory, 3 name, 4 locale, 5 extension.
var pathGrammar = regexp.MustCompile(
	`(?i)^(includes|layouts|pages)` +
		`((?:[/\\][^/\\]+)+)?` +
		`[/\\]([^/\\.]+)` +
		`((?:\.[a-z0-9_-]+)+)?` +
		`\.([a-z]+)$`,
)

const (
	groupRoot = iota + 1
	groupDirectory
	groupName
	groupLocale
	groupExtension
)

// match holds submatch offsets into the matched string. Groups that did not
// participate carry -1 offsets.
type match []int

func matchPath(raw string) (match, bool) {
	m := pathGrammar.FindStringSubmatchIndex(raw)
	if m == nil {
		return nil, false
	}
	return match(m), true
}

func (m match) span(group int) (Span, bool) {
	start, end := m[2*group], m[2*group+1]
	if start < 0 {
		return Span{}, false
	}
	return Span{Start: start, End: end}, true
}
