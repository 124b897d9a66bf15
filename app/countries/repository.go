package countries

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/internal/freshness"
	"github.com/ayoussef/atlas/internal/logger"
	"github.com/ayoussef/atlas/models"
)

const persistTimeout = 30 * time.Second

// repository is the reconciliation engine: it decides, per read,
// whether to trust the network or fall back to the local store, and it
// routes selection writes to the store.
//
// Search is pure offline-first: non-empty queries filter the local
// snapshot and never touch the network.
type repository struct {
	fetcher     Fetcher
	store       Store
	search      Searcher
	policy      *freshness.Policy
	log         logger.Logger
	maxSelected int

	// persistWG tracks in-flight best-effort persists so tests and
	// shutdown can drain them.
	persistWG sync.WaitGroup
}

// NewRepository creates the reconciliation engine.
func NewRepository(fetcher Fetcher, store Store, search Searcher, policy *freshness.Policy, log logger.Logger, maxSelected int) Repository {
	return &repository{
		fetcher:     fetcher,
		store:       store,
		search:      search,
		policy:      policy,
		log:         log,
		maxSelected: maxSelected,
	}
}

// FetchAllCountries asks the network first. On success the result is
// persisted locally without blocking the caller, and persist failures
// never surface. On network failure the local snapshot is returned
// instead; if that read fails too, the original network error wins.
func (r *repository) FetchAllCountries(ctx context.Context) ([]models.Country, error) {
	fetched, fetchErr := r.fetcher.FetchAll(ctx)
	if fetchErr == nil {
		r.persistAsync(fetched, true)
		return fetched, nil
	}

	r.log.Debug("catalogue fetch failed, falling back to local store", logger.Fields{
		"error": fetchErr.Error(),
	})

	local, localErr := r.store.GetAll(ctx)
	if localErr != nil {
		// The store is a best-effort fallback, not a primary path.
		r.log.Error(localErr, logger.Fields{"op": "fallback_read"})
		return nil, fetchErr
	}
	return local, nil
}

// SearchCountries filters the local snapshot for non-empty queries.
// An empty query means "everything" and delegates to FetchAllCountries.
func (r *repository) SearchCountries(ctx context.Context, query string) ([]models.Country, error) {
	if strings.TrimSpace(query) == "" {
		return r.FetchAllCountries(ctx)
	}

	local, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return r.search.Search(local, query), nil
}

// FetchCountry resolves a country by alpha-2 code, local snapshot
// first. A network lookup only happens on a local miss, and its result
// is persisted best-effort.
func (r *repository) FetchCountry(ctx context.Context, alpha2Code string) (*models.Country, error) {
	local, err := r.store.GetAll(ctx)
	if err == nil {
		for i := range local {
			if strings.EqualFold(local[i].Alpha2Code, alpha2Code) {
				return &local[i], nil
			}
		}
	}

	country, fetchErr := r.fetcher.FetchByCode(ctx, alpha2Code)
	if fetchErr != nil {
		if apperr.IsKind(fetchErr, apperr.KindDataNotFound) {
			return nil, apperr.New(apperr.KindDataNotFound, alpha2Code, models.ErrDataNotFound)
		}
		return nil, fetchErr
	}

	r.persistAsync([]models.Country{*country}, false)
	return country, nil
}

// LocalCountries reads the local snapshot without touching the network.
func (r *repository) LocalCountries(ctx context.Context) ([]models.Country, error) {
	return r.store.GetAll(ctx)
}

// GetSelectedCountries delegates straight to the store.
func (r *repository) GetSelectedCountries(ctx context.Context) ([]models.Country, error) {
	return r.store.GetSelected(ctx)
}

// AddSelectedCountry delegates to the store, which enforces the cap
// and duplicate rejection atomically.
func (r *repository) AddSelectedCountry(ctx context.Context, country models.Country) error {
	return r.store.AddSelected(ctx, country, r.maxSelected)
}

// RemoveSelectedCountry delegates to the store.
func (r *repository) RemoveSelectedCountry(ctx context.Context, alpha3Code string) error {
	return r.store.RemoveSelected(ctx, alpha3Code)
}

// SnapshotAge returns the local snapshot's last-updated timestamp.
func (r *repository) SnapshotAge(ctx context.Context) (time.Time, error) {
	return r.store.LastUpdated(ctx)
}

// RefreshIfStale re-fetches the catalogue when the freshness policy
// says a refresh is due. Returns whether a refresh was triggered.
func (r *repository) RefreshIfStale(ctx context.Context) (bool, error) {
	lastUpdated, err := r.store.LastUpdated(ctx)
	if err != nil {
		return false, err
	}
	if !r.policy.ShouldRefresh(lastUpdated) {
		return false, nil
	}

	fetched, err := r.fetcher.FetchAll(ctx)
	if err != nil {
		return false, err
	}
	if err := r.store.SaveAll(ctx, fetched); err != nil {
		return false, err
	}
	return true, nil
}

// WaitForPendingWrites blocks until every fire-and-forget persist has
// finished. Used by tests and graceful shutdown.
func (r *repository) WaitForPendingWrites() {
	r.persistWG.Wait()
}

// persistAsync saves countries into the local store as an independent
// unit of work. The caller is never blocked on it and never sees its
// failure. snapshot selects between a full catalogue replacement and a
// plain upsert of a partial result.
func (r *repository) persistAsync(countries []models.Country, snapshot bool) {
	r.persistWG.Add(1)
	go func() {
		defer r.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var err error
		if snapshot {
			err = r.store.SaveAll(ctx, countries)
		} else {
			err = r.store.Save(ctx, countries)
		}
		if err != nil {
			r.log.Error(err, logger.Fields{"op": "persist_after_fetch", "count": len(countries)})
		}
	}()
}
