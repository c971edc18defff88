package source

import "strings"

// Kind is the authoring role of a file, derived from the root segment of its
// path.
type Kind uint8

const (
	kindUnknown Kind = iota
	KindInclude
	KindLayout
	KindPage
)

var kindRoots = map[string]Kind{
	"includes": KindInclude,
	"layouts":  KindLayout,
	"pages":    KindPage,
}

// ParseKind maps a root directory token onto a Kind. Matching is exact after
// lowercasing.
func ParseKind(token string) (Kind, error) {
	if kind, ok := kindRoots[strings.ToLower(token)]; ok {
		return kind, nil
	}
	return kindUnknown, &ClassificationError{Code: CodeKindUnrecognized, Token: token}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindInclude && k <= KindPage
}

// Root returns the directory token that selects the kind.
func (k Kind) Root() string {
	switch k {
	case KindInclude:
		return "includes"
	case KindLayout:
		return "layouts"
	case KindPage:
		return "pages"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindInclude:
		return "include"
	case KindLayout:
		return "layout"
	case KindPage:
		return "page"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind name so descriptors serialise predictably.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Kinds lists every declared kind in root order.
func Kinds() []Kind {
	return []Kind{KindInclude, KindLayout, KindPage}
}
