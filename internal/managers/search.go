package managers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/baldidon/transfermarkt-api/internal/extraction"
	"github.com/rs/zerolog/log"
)

// SearchRequest is one page of a manager search. PageNumber values below 1
// are treated as 1.
type SearchRequest struct {
	Query      string
	PageNumber int
}

// Page returns the effective page number.
func (r SearchRequest) Page() int {
	if r.PageNumber < 1 {
		return 1
	}
	return r.PageNumber
}

// URL returns the quick search URL for the request below base.
func (r SearchRequest) URL(base string) string {
	return fmt.Sprintf("%s/schnellsuche/ergebnis/schnellsuche?query=%s&Trainer_page=%d",
		trimBase(base), url.QueryEscape(r.Query), r.Page())
}

// SearchResult is one page of manager search results. Results is never nil
// so it always encodes as a JSON array.
type SearchResult struct {
	Query          string              `json:"query"`
	PageNumber     int                 `json:"pageNumber"`
	LastPageNumber int                 `json:"lastPageNumber"`
	Results        []extraction.Record `json:"results"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// Search fetches one page of results for req.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	ctx, span := tracer.Start(ctx, "managers.Search")
	defer span.End()

	pageURL := req.URL(s.BaseURL)
	doc, err := s.load(ctx, pageURL, searchFound)
	if err != nil {
		return nil, fmt.Errorf("search managers %q: %w", req.Query, err)
	}

	urls := extraction.RowValues(doc, searchRows, searchURL)
	ids := make([]*string, len(urls))
	absolute := make([]*string, len(urls))
	for i, u := range urls {
		if u == nil {
			continue
		}
		id := extraction.IDFromURL(*u)
		ids[i] = &id
		abs := resolve(s.BaseURL, *u)
		absolute[i] = &abs
	}
	crests := extraction.RowValues(doc, searchRows, searchClubCrest)

	columns := []extraction.Column{
		extraction.ColumnOf("id", ids),
		extraction.ColumnOf("url", absolute),
		extraction.ColumnOf("club.id", extraction.MatchEach(crests, clubCrestID, "club_id")),
	}
	for _, f := range searchColumns {
		columns = append(columns, extraction.ColumnOf(f.Key, extraction.RowValues(doc, searchRows, f.Selector)))
	}

	records, err := extraction.Zip(columns...)
	if err != nil {
		return nil, fmt.Errorf("search managers %q: %w", req.Query, err)
	}

	results := make([]extraction.Record, 0, len(records))
	for _, r := range records {
		// Separator and "no results" rows carry no manager cells.
		if c := extraction.Clean(r); len(c) > 0 {
			results = append(results, c)
		}
	}

	res := &SearchResult{
		Query:          req.Query,
		PageNumber:     req.Page(),
		LastPageNumber: extraction.LastPage(doc, searchPagination),
		Results:        results,
		UpdatedAt:      s.now(),
	}

	log.Debug().
		Str("query", req.Query).
		Int("page", res.PageNumber).
		Int("results", len(results)).
		Msg("searched managers")

	return res, nil
}
