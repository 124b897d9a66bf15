package countries

import (
	"context"
	"time"

	"github.com/ayoussef/atlas/models"
)

// Fetcher retrieves countries from the upstream catalogue API.
// Failures carry the apperr network taxonomy.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]models.Country, error)
	Search(ctx context.Context, query string) ([]models.Country, error)
	FetchByCode(ctx context.Context, code string) (*models.Country, error)
}

// Store is the embedded local catalogue keyed by alpha-3 code.
// The selected-set cap is enforced by callers passing maxSelected;
// AddSelected must make count-check and commit atomic.
type Store interface {
	GetAll(ctx context.Context) ([]models.Country, error)
	SaveAll(ctx context.Context, countries []models.Country) error
	Save(ctx context.Context, countries []models.Country) error
	GetSelected(ctx context.Context) ([]models.Country, error)
	AddSelected(ctx context.Context, country models.Country, maxSelected int) error
	RemoveSelected(ctx context.Context, alpha3Code string) error
	LastUpdated(ctx context.Context) (time.Time, error)
	Bootstrapped(ctx context.Context) (bool, error)
	MarkBootstrapped(ctx context.Context) error
}

// Searcher filters an in-memory country set by a free-text query.
type Searcher interface {
	Search(countries []models.Country, query string) []models.Country
}

// Repository reconciles network data with the local store for reads,
// and guards the selection invariants for writes.
type Repository interface {
	FetchAllCountries(ctx context.Context) ([]models.Country, error)
	SearchCountries(ctx context.Context, query string) ([]models.Country, error)
	FetchCountry(ctx context.Context, alpha2Code string) (*models.Country, error)
	LocalCountries(ctx context.Context) ([]models.Country, error)
	GetSelectedCountries(ctx context.Context) ([]models.Country, error)
	AddSelectedCountry(ctx context.Context, country models.Country) error
	RemoveSelectedCountry(ctx context.Context, alpha3Code string) error
	SnapshotAge(ctx context.Context) (time.Time, error)
	RefreshIfStale(ctx context.Context) (bool, error)
}

// LocationProvider resolves the device's current country. It is an
// external collaborator; implementations surface location-class errors.
type LocationProvider interface {
	CurrentCountryCode(ctx context.Context) (string, error)
}

// Service is the surface exposed to the transport layer.
type Service interface {
	GetAllCountries(ctx context.Context) ([]CountryResponse, error)
	SearchCountries(ctx context.Context, query string) ([]CountryResponse, error)
	GetCountryByCode(ctx context.Context, alpha2Code string) (*CountryDetailsResponse, error)
	GetSelectedCountries(ctx context.Context) ([]CountryResponse, error)
	AddSelectedCountry(ctx context.Context, alpha3Code string) error
	RemoveSelectedCountry(ctx context.Context, alpha3Code string) error
	CacheStatus(ctx context.Context) (*CacheStatusResponse, error)
}
