package managers

import (
	"regexp"

	"github.com/baldidon/transfermarkt-api/internal/extraction"
)

// Quick search result page. The managers box is one of several result boxes
// (players, clubs, managers...) so every query is anchored on its heading.
const searchBox = `div.box:has(h2:contains("Managers"))`

var (
	// The results column is rendered for every query, with or without hits.
	searchFound = extraction.Text(`div.large-8.columns`)

	searchRows       = extraction.Text(`table.items > tbody > tr`).Within(searchBox).Query
	searchPagination = extraction.Text(`ul.tm-pagination`).Within(searchBox)

	// Row-relative selectors. The first cell holds a nested inline table
	// (name link over function), so positional cells use nth-of-type, which
	// the nested rows never reach beyond their second cell.
	searchURL       = extraction.Attr(`td.hauptlink a`, "href")
	searchClubCrest = extraction.Attr(`img.tiny_wappen`, "src")

	searchColumns = []extraction.Field{
		{Key: "name", Selector: extraction.Text(`td.hauptlink a`)},
		{Key: "age", Selector: extraction.Text(`td:nth-of-type(3)`)},
		{Key: "nationality", Selector: extraction.Attr(`td:nth-of-type(4) img`, "title")},
		{Key: "club.name", Selector: extraction.Attr(`img.tiny_wappen`, "title")},
		{Key: "contract", Selector: extraction.Text(`td:nth-of-type(5)`)},
		{Key: "function", Selector: extraction.Text(`table.inline-table tr:nth-of-type(2) td`)},
	}

	// Crest images are served as .../wappen/tiny/{club_id}.png
	clubCrestID = regexp.MustCompile(`/(?P<club_id>\d+)\.(?:png|jpe?g|gif|svg|webp)`)
)

// Manager profile page.
var (
	profileFound = extraction.Text(`header.data-header`)

	profileCanonical = extraction.Attr(`link[rel="canonical"]`, "href")
	profileBirth     = extraction.Text(`span[itemprop="birthDate"]`)
	profileClubLink  = extraction.Attr(`span.data-header__club a`, "href")

	profileFields = []extraction.Field{
		{Key: "name", Selector: extraction.Text(`h1.data-header__headline-wrapper`)},
		{Key: "image", Selector: extraction.Attr(`img.data-header__profile-image`, "src")},
		{Key: "placeOfBirth.city", Selector: extraction.Text(`span[itemprop="birthPlace"]`)},
		{Key: "placeOfBirth.country", Selector: extraction.Attr(`span[itemprop="birthPlace"] img`, "title")},
		{Key: "citizenship", Selector: extraction.Text(`span[itemprop="nationality"]`)},
		{Key: "avgTermAsCoach", Selector: infoTable("Avg. term as coach:")},
		{Key: "coachingLicence", Selector: infoTable("Coaching Licence:")},
		{Key: "preferredFormation", Selector: infoTable("Preferred formation:")},
		{Key: "agent", Selector: infoTable("Agent:")},
		{Key: "currentClub.name", Selector: extraction.Text(`span.data-header__club a`)},
		{Key: "currentClub.joined", Selector: headerLabel("Appointed:")},
		{Key: "currentClub.contractExpires", Selector: headerLabel("Contract expires:")},
	}

	// "Jan 18, 1971 (53)"
	birthDate = regexp.MustCompile(`^(?P<date>[^(]*[^(\s])`)
	birthAge  = regexp.MustCompile(`\((?P<age>\d+)\)`)
)

// infoTable selects the value cell following a label in the facts table.
func infoTable(label string) extraction.Selector {
	return extraction.Text(`div.info-table span.info-table__content--regular:contains("` + label + `") + span.info-table__content--bold`)
}

// headerLabel selects the content of a labelled item in the profile header.
func headerLabel(label string) extraction.Selector {
	return extraction.Text(`span.data-header__label:contains("` + label + `") span.data-header__content`)
}
