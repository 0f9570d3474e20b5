// Package api exposes the manager extraction services over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/baldidon/transfermarkt-api/internal/extraction"
	"github.com/baldidon/transfermarkt-api/internal/managers"
	"github.com/baldidon/transfermarkt-api/internal/scraper"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Managers is the extraction service the handlers call.
type Managers interface {
	Search(ctx context.Context, req managers.SearchRequest) (*managers.SearchResult, error)
	Profile(ctx context.Context, req managers.ProfileRequest) (*managers.ProfileResult, error)
}

type handler struct {
	managers Managers
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc Managers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	h := &handler{managers: svc}
	r.GET("/health", h.health)

	g := r.Group("/managers")
	g.GET("/search/:name", h.searchManagers)
	g.GET("/:id/profile", h.managerProfile)

	return r
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type searchQuery struct {
	PageNumber int `form:"page_number"`
}

func (h *handler) searchManagers(c *gin.Context) {
	q := searchQuery{PageNumber: 1}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "page_number must be an integer"})
		return
	}

	res, err := h.managers.Search(c.Request.Context(), managers.SearchRequest{
		Query:      c.Param("name"),
		PageNumber: q.PageNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) managerProfile(c *gin.Context) {
	res, err := h.managers.Profile(c.Request.Context(), managers.ProfileRequest{ID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// statusFor maps extraction failures to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, extraction.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, scraper.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	ev := zerolog.Ctx(c.Request.Context()).Warn()
	if status == http.StatusInternalServerError {
		ev = zerolog.Ctx(c.Request.Context()).Error()
	}
	ev.Err(err).Int("status", status).Msg("request failed")

	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}
