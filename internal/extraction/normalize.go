package extraction

import "reflect"

// Clean returns a copy of r without empty values. "", nil, nil pointers, empty
// slices and empty maps are dropped at every depth, and a nested map or slice
// that ends up empty is dropped too. Empty list elements are dropped like
// empty keys, so list positions are not preserved. Numbers and booleans are
// always kept.
func Clean(r Record) Record {
	out := Record{}
	for k, v := range r {
		if c, keep := cleanValue(v); keep {
			out[k] = c
		}
	}
	return out
}

func cleanValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		return t, t != ""
	case *string:
		if t == nil {
			return nil, false
		}
		return cleanValue(*t)
	case map[string]any:
		c := Clean(t)
		return c, len(c) > 0
	case []map[string]any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			if c, keep := cleanValue(e); keep {
				out = append(out, c)
			}
		}
		return out, len(out) > 0
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			if c, keep := cleanValue(e); keep {
				out = append(out, c)
			}
		}
		return out, len(out) > 0
	case []string:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if e != "" {
				out = append(out, e)
			}
		}
		return out, len(out) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}
	case reflect.Slice, reflect.Map:
		if rv.Len() == 0 {
			return nil, false
		}
	}
	return v, true
}
