package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// Record is one extracted entity keyed by output field name.
type Record = map[string]any

// \p{Zs} catches the non-breaking spaces the site pads cells with.
var innerWhitespace = regexp.MustCompile(`[\s\p{Zs}]+`)

// CleanText collapses runs of whitespace, trims, and NFC-normalizes s.
func CleanText(s string) string {
	s = innerWhitespace.ReplaceAllString(s, " ")
	return norm.NFC.String(strings.TrimSpace(s))
}

// AssertFound fails with ErrNotFound when sel matches no node in doc.
func AssertFound(doc *goquery.Document, sel Selector) error {
	if doc == nil || doc.Find(sel.Query).Length() == 0 {
		return fmt.Errorf("%w: no match for %s", ErrNotFound, sel)
	}
	return nil
}

// TextOf returns the value of the first node matched by sel, or "" when
// nothing matches.
func TextOf(doc *goquery.Document, sel Selector) string {
	v, _ := Lookup(doc, sel)
	return v
}

// Lookup returns the value of the first node matched by sel. The boolean is
// false when sel matched nothing, which TextOf folds into "".
func Lookup(doc *goquery.Document, sel Selector) (string, bool) {
	if doc == nil {
		return "", false
	}
	return lookup(doc.Selection, sel)
}

// ListOf returns the value of every node matched by sel in document order.
// A node missing the selected attribute contributes "" so positions stay
// aligned with the matched nodes.
func ListOf(doc *goquery.Document, sel Selector) []string {
	values := []string{}
	if doc == nil {
		return values
	}
	doc.Find(sel.Query).Each(func(_ int, s *goquery.Selection) {
		v, _ := valueOf(s, sel.Attr)
		values = append(values, v)
	})
	return values
}

// RowValues returns one entry per node matched by rows: the value of the first
// match of sel inside that row, or nil when the row has none. An empty
// sel.Query selects the row itself.
func RowValues(doc *goquery.Document, rows string, sel Selector) []*string {
	values := []*string{}
	if doc == nil {
		return values
	}
	doc.Find(rows).Each(func(_ int, row *goquery.Selection) {
		v, ok := lookup(row, sel)
		if !ok {
			values = append(values, nil)
			return
		}
		values = append(values, &v)
	})
	return values
}

// ExtractFields evaluates every field against the document root. Fields that
// match nothing are recorded as nil so that Clean can drop them later.
func ExtractFields(doc *goquery.Document, fields []Field) Record {
	record := Record{}
	for _, f := range fields {
		if v, ok := Lookup(doc, f.Selector); ok {
			Put(record, f.Key, v)
			continue
		}
		Put(record, f.Key, nil)
	}
	return record
}

func lookup(root *goquery.Selection, sel Selector) (string, bool) {
	target := root
	if strings.TrimSpace(sel.Query) != "" {
		target = root.Find(sel.Query).First()
	}
	if target.Length() == 0 {
		return "", false
	}
	return valueOf(target, sel.Attr)
}

func valueOf(s *goquery.Selection, attr string) (string, bool) {
	if attr == "" {
		return CleanText(s.Text()), true
	}
	v, ok := s.Attr(attr)
	if !ok {
		return "", false
	}
	return CleanText(v), true
}
