package extraction

import "regexp"

// MatchNamedGroup applies re to text and returns the named group, or nil when
// the pattern does not match, the group does not exist, or it captured nothing.
func MatchNamedGroup(text string, re *regexp.Regexp, group string) *string {
	idx := re.SubexpIndex(group)
	if idx < 0 {
		return nil
	}
	m := re.FindStringSubmatch(text)
	if m == nil || m[idx] == "" {
		return nil
	}
	v := m[idx]
	return &v
}

// MatchEach runs MatchNamedGroup over values. Nil inputs stay nil.
func MatchEach(values []*string, re *regexp.Regexp, group string) []*string {
	out := make([]*string, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		out[i] = MatchNamedGroup(*v, re, group)
	}
	return out
}
