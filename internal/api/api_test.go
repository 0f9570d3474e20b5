package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baldidon/transfermarkt-api/internal/extraction"
	"github.com/baldidon/transfermarkt-api/internal/managers"
	"github.com/baldidon/transfermarkt-api/internal/scraper"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var updated = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type stubManagers struct {
	lastSearch  managers.SearchRequest
	lastProfile managers.ProfileRequest
	err         error
}

func (s *stubManagers) Search(_ context.Context, req managers.SearchRequest) (*managers.SearchResult, error) {
	s.lastSearch = req
	if s.err != nil {
		return nil, s.err
	}
	return &managers.SearchResult{
		Query:          req.Query,
		PageNumber:     req.Page(),
		LastPageNumber: 1,
		Results:        []extraction.Record{},
		UpdatedAt:      updated,
	}, nil
}

func (s *stubManagers) Profile(_ context.Context, req managers.ProfileRequest) (*managers.ProfileResult, error) {
	s.lastProfile = req
	if s.err != nil {
		return nil, s.err
	}
	return &managers.ProfileResult{
		Profile:   extraction.Record{"id": req.ID, "name": "Pep Guardiola"},
		UpdatedAt: updated,
	}, nil
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	rec := do(t, NewRouter(&stubManagers{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestSearch(t *testing.T) {
	stub := &stubManagers{}
	rec := do(t, NewRouter(stub), "/managers/search/Pep%20Guardiola?page_number=2")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, managers.SearchRequest{Query: "Pep Guardiola", PageNumber: 2}, stub.lastSearch)
	assert.JSONEq(t, `{
		"query": "Pep Guardiola",
		"pageNumber": 2,
		"lastPageNumber": 1,
		"results": [],
		"updatedAt": "2024-05-01T12:00:00Z"
	}`, rec.Body.String())
}

func TestSearch_DefaultPage(t *testing.T) {
	stub := &stubManagers{}
	rec := do(t, NewRouter(stub), "/managers/search/klopp")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.lastSearch.PageNumber)
}

func TestSearch_BadPage(t *testing.T) {
	stub := &stubManagers{}
	rec := do(t, NewRouter(stub), "/managers/search/klopp?page_number=two")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["detail"], "page_number")
	assert.Empty(t, stub.lastSearch.Query)
}

func TestProfile(t *testing.T) {
	stub := &stubManagers{}
	rec := do(t, NewRouter(stub), "/managers/5672/profile")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "5672", stub.lastProfile.ID)
	assert.JSONEq(t, `{"id":"5672","name":"Pep Guardiola","updatedAt":"2024-05-01T12:00:00Z"}`, rec.Body.String())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("manager profile 1: %w", extraction.ErrNotFound), http.StatusNotFound},
		{"fetch", &scraper.FetchError{URL: "u", Status: 503, Err: errors.New("busy")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(&stubManagers{err: tt.err})

			rec := do(t, r, "/managers/1/profile")
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.err.Error(), decode(t, rec)["detail"])

			rec = do(t, r, "/managers/search/x")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestID_Propagated(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	NewRouter(&stubManagers{}).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}
