package extraction

import "strings"

// Column is one field's values across all records of a page, in document order.
type Column struct {
	Key    string
	Values []any
}

// ColumnOf builds a Column from a typed slice. Nil *string entries become nil.
func ColumnOf[T any](key string, values []T) Column {
	c := Column{Key: key, Values: make([]any, len(values))}
	for i, v := range values {
		c.Values[i] = plain(v)
	}
	return c
}

// Zip pairs columns by position: record i holds the i-th value of every
// column under that column's key. Every column must have the same length as
// the first one; otherwise no records are returned.
func Zip(columns ...Column) ([]Record, error) {
	if len(columns) == 0 {
		return []Record{}, nil
	}

	n := len(columns[0].Values)
	for _, c := range columns[1:] {
		if len(c.Values) != n {
			return nil, &LengthMismatchError{Key: c.Key, Want: n, Got: len(c.Values)}
		}
	}

	records := make([]Record, n)
	for i := range records {
		r := Record{}
		for _, c := range columns {
			Put(r, c.Key, c.Values[i])
		}
		records[i] = r
	}
	return records, nil
}

// Put stores v under a dotted key, creating nested records along the way.
func Put(r Record, key string, v any) {
	parts := strings.Split(key, ".")
	cur := r
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(Record)
		if !ok {
			next = Record{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = plain(v)
}

func plain(v any) any {
	if p, ok := v.(*string); ok {
		if p == nil {
			return nil
		}
		return *p
	}
	return v
}
