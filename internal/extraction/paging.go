package extraction

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// LastPage returns the highest page number found in the pagination region
// matched by sel, reading both link texts and page numbers in hrefs. When the
// page repeats the pagination control the largest value wins. Pages without
// pagination markup have exactly one page.
func LastPage(doc *goquery.Document, sel Selector) int {
	last := 1
	if doc == nil {
		return last
	}

	consider := func(s string) {
		if n, err := strconv.Atoi(s); err == nil && n > last {
			last = n
		}
	}

	doc.Find(sel.Query).Each(func(_ int, region *goquery.Selection) {
		region.Find("*").AddSelection(region).Each(func(_ int, node *goquery.Selection) {
			if node.Children().Length() == 0 {
				consider(CleanText(node.Text()))
			}
			if href, ok := node.Attr("href"); ok {
				consider(SegmentFromURL(href, "page"))
			}
		})
	})
	return last
}
