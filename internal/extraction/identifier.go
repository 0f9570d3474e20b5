package extraction

import (
	"net/url"
	"regexp"
	"strconv"
)

// Entity paths look like /{slug}/{section}/{kind}/{id}, for example
// /pep-guardiola/profil/trainer/5672 or /fc-barcelona/startseite/verein/131.
var entityPath = regexp.MustCompile(`^/(?P<slug>[^/]+)/(?P<section>[^/]+)/(?P<kind>[^/]+)/(?P<id>\d+)`)

var pageNumber = regexp.MustCompile(`(?:/page/|[?&](?:\w+_)?page=)(?P<page>\d+)`)

// IDFromURL returns the identifier segment of an entity URL, or "" when the
// URL does not have the expected shape.
func IDFromURL(raw string) string {
	return SegmentFromURL(raw, "id")
}

// SegmentFromURL returns a named part of an entity URL: "slug", "section",
// "kind", "id", or "page". Unknown names and non-matching URLs yield "".
// A URL can carry the page parameter of several result boxes at once; "page"
// yields the highest of them.
func SegmentFromURL(raw, name string) string {
	if name == "page" {
		return highestPage(raw)
	}

	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.EscapedPath()
	}
	if v := MatchNamedGroup(path, entityPath, name); v != nil {
		return *v
	}
	return ""
}

func highestPage(raw string) string {
	idx := pageNumber.SubexpIndex("page")
	best, bestN := "", -1
	for _, m := range pageNumber.FindAllStringSubmatch(raw, -1) {
		n, err := strconv.Atoi(m[idx])
		if err != nil {
			continue
		}
		if n > bestN {
			best, bestN = m[idx], n
		}
	}
	return best
}
