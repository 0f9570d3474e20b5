package managers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/baldidon/transfermarkt-api/internal/extraction"
	"github.com/rs/zerolog/log"
)

// ProfileRequest identifies one manager by the numeric id used in its
// Transfermarkt URL.
type ProfileRequest struct {
	ID string
}

// URL returns the profile URL for the request below base.
func (r ProfileRequest) URL(base string) string {
	return fmt.Sprintf("%s/-/profil/trainer/%s", trimBase(base), url.PathEscape(r.ID))
}

// ProfileResult is a cleaned manager profile. It encodes as a single flat
// object: the profile fields plus updatedAt.
type ProfileResult struct {
	Profile   extraction.Record
	UpdatedAt time.Time
}

func (p ProfileResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Profile)+1)
	for k, v := range p.Profile {
		out[k] = v
	}
	out["updatedAt"] = p.UpdatedAt
	return json.Marshal(out)
}

// Profile fetches and extracts the profile page for req.
func (s *Service) Profile(ctx context.Context, req ProfileRequest) (*ProfileResult, error) {
	ctx, span := tracer.Start(ctx, "managers.Profile")
	defer span.End()

	pageURL := req.URL(s.BaseURL)
	doc, err := s.load(ctx, pageURL, profileFound)
	if err != nil {
		return nil, fmt.Errorf("manager profile %s: %w", req.ID, err)
	}

	profile := extraction.ExtractFields(doc, profileFields)
	profile["id"] = req.ID

	canonical := extraction.TextOf(doc, profileCanonical)
	if canonical == "" {
		canonical = pageURL
	}
	profile["url"] = resolve(s.BaseURL, canonical)

	birth := extraction.TextOf(doc, profileBirth)
	profile["dateOfBirth"] = extraction.MatchNamedGroup(birth, birthDate, "date")
	profile["age"] = extraction.MatchNamedGroup(birth, birthAge, "age")

	extraction.Put(profile, "currentClub.id", extraction.IDFromURL(extraction.TextOf(doc, profileClubLink)))

	res := &ProfileResult{
		Profile:   extraction.Clean(profile),
		UpdatedAt: s.now(),
	}

	log.Debug().Str("id", req.ID).Msg("extracted manager profile")
	return res, nil
}
