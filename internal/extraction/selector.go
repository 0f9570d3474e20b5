package extraction

import "strings"

// Selector addresses one or more nodes of a parsed page.
//
// Query is a CSS selector (cascadia syntax, so :has and :contains work).
// When Attr is empty the selected value is the node text, otherwise it is the
// value of that attribute.
type Selector struct {
	Query string
	Attr  string
}

// Text selects the text of the nodes matched by query.
func Text(query string) Selector {
	return Selector{Query: query}
}

// Attr selects the attr attribute of the nodes matched by query.
func Attr(query, attr string) Selector {
	return Selector{Query: query, Attr: attr}
}

// Within returns s scoped under parent.
func (s Selector) Within(parent string) Selector {
	parent = strings.TrimSpace(parent)
	if parent == "" {
		return s
	}
	return Selector{Query: parent + " " + s.Query, Attr: s.Attr}
}

func (s Selector) String() string {
	if s.Attr == "" {
		return s.Query
	}
	return s.Query + "@" + s.Attr
}

// Field binds an output key to a selector. Dotted keys ("club.id") nest.
type Field struct {
	Key      string
	Selector Selector
}
