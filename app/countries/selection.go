package countries

import (
	"context"
	"sync"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/models"
)

// Selector enforces the selection invariants at the use-case level,
// independent of the store's own enforcement. It owns the cap
// constant, and serializes Add so two concurrent adds cannot both pass
// the count check.
type Selector struct {
	repo        Repository
	maxSelected int
	mu          sync.Mutex
}

// NewSelector creates a selection use case over the repository.
func NewSelector(repo Repository, maxSelected int) *Selector {
	return &Selector{repo: repo, maxSelected: maxSelected}
}

// Add selects a country: rejected when its alpha-3 code is already
// selected or the cap is reached, otherwise committed via the
// repository. The check and the commit are one atomic unit relative to
// other Add calls.
func (s *Selector) Add(ctx context.Context, country models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.GetSelectedCountries(ctx)
	if err != nil {
		return err
	}

	for i := range current {
		if current[i].Alpha3Code == country.Alpha3Code {
			return apperr.New(apperr.KindCountryAlreadyAdded, country.Alpha3Code, models.ErrCountryAlreadyAdded)
		}
	}
	if len(current) >= s.maxSelected {
		return apperr.New(apperr.KindMaxCountriesReached, country.Alpha3Code, models.ErrMaxCountriesReached)
	}

	return s.repo.AddSelectedCountry(ctx, country)
}

// Remove deselects a country. No extra validation: removal is
// monotonic and cannot violate any invariant.
func (s *Selector) Remove(ctx context.Context, alpha3Code string) error {
	return s.repo.RemoveSelectedCountry(ctx, alpha3Code)
}

// Selected returns the current selection.
func (s *Selector) Selected(ctx context.Context) ([]models.Country, error) {
	return s.repo.GetSelectedCountries(ctx)
}
