package countries

import (
	"context"
	"strings"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/internal/freshness"
	"github.com/ayoussef/atlas/internal/sanitizer"
	"github.com/ayoussef/atlas/models"
)

// service implements the Service interface
type service struct {
	repo     Repository
	selector *Selector
	policy   *freshness.Policy
	strip    sanitizer.HTMLStripperer
}

// NewService creates a new country service
func NewService(repo Repository, selector *Selector, policy *freshness.Policy, strip sanitizer.HTMLStripperer) Service {
	return &service{
		repo:     repo,
		selector: selector,
		policy:   policy,
		strip:    strip,
	}
}

// GetAllCountries returns the full catalogue, network-first.
func (s *service) GetAllCountries(ctx context.Context) ([]CountryResponse, error) {
	countries, err := s.repo.FetchAllCountries(ctx)
	if err != nil {
		return nil, err
	}
	return ToCountryResponseList(countries), nil
}

// SearchCountries filters the catalogue by a free-text query. The
// query is stripped of markup before it reaches the matcher.
func (s *service) SearchCountries(ctx context.Context, query string) ([]CountryResponse, error) {
	countries, err := s.repo.SearchCountries(ctx, s.strip.StripHTML(query))
	if err != nil {
		return nil, err
	}
	return ToCountryResponseList(countries), nil
}

// GetCountryByCode returns the details view for one country by its
// alpha-2 code.
func (s *service) GetCountryByCode(ctx context.Context, alpha2Code string) (*CountryDetailsResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(alpha2Code))
	if len(code) != 2 {
		return nil, apperr.New(apperr.KindInvalidCountryCode, alpha2Code, models.ErrInvalidCountryCode)
	}

	country, err := s.repo.FetchCountry(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToCountryDetailsResponse(country), nil
}

// GetSelectedCountries returns the user's pinned countries.
func (s *service) GetSelectedCountries(ctx context.Context) ([]CountryResponse, error) {
	countries, err := s.selector.Selected(ctx)
	if err != nil {
		return nil, err
	}
	return ToCountryResponseList(countries), nil
}

// AddSelectedCountry pins a country by alpha-3 code. The country must
// already be present in the local snapshot: selection happens from a
// browsed list, so the row is always cached by then.
func (s *service) AddSelectedCountry(ctx context.Context, alpha3Code string) error {
	code := strings.ToUpper(strings.TrimSpace(alpha3Code))
	if len(code) != 3 {
		return apperr.New(apperr.KindInvalidCountryCode, alpha3Code, models.ErrInvalidCountryCode)
	}

	country, err := s.findLocal(ctx, code)
	if err != nil {
		return err
	}
	return s.selector.Add(ctx, *country)
}

// RemoveSelectedCountry unpins a country by alpha-3 code.
func (s *service) RemoveSelectedCountry(ctx context.Context, alpha3Code string) error {
	code := strings.ToUpper(strings.TrimSpace(alpha3Code))
	if len(code) != 3 {
		return apperr.New(apperr.KindInvalidCountryCode, alpha3Code, models.ErrInvalidCountryCode)
	}
	return s.selector.Remove(ctx, code)
}

// CacheStatus reports the snapshot's freshness and row counts.
func (s *service) CacheStatus(ctx context.Context) (*CacheStatusResponse, error) {
	lastUpdated, err := s.repo.SnapshotAge(ctx)
	if err != nil {
		return nil, err
	}

	resp := &CacheStatusResponse{
		Status:    s.policy.StatusOf(lastUpdated),
		Freshness: s.policy.Freshness(lastUpdated),
	}
	if !lastUpdated.IsZero() {
		resp.LastUpdated = &lastUpdated
	}

	// Counts are display data; a failed read leaves them at zero.
	if all, err := s.repo.LocalCountries(ctx); err == nil {
		resp.Countries = len(all)
	}
	if selected, err := s.selector.Selected(ctx); err == nil {
		resp.Selected = len(selected)
	}
	return resp, nil
}

// findLocal resolves an alpha-3 code against the local snapshot.
func (s *service) findLocal(ctx context.Context, alpha3Code string) (*models.Country, error) {
	local, err := s.repo.LocalCountries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range local {
		if strings.EqualFold(local[i].Alpha3Code, alpha3Code) {
			return &local[i], nil
		}
	}
	return nil, apperr.New(apperr.KindDataNotFound, alpha3Code, models.ErrDataNotFound)
}
