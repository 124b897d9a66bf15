package countries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/internal/freshness"
	"github.com/ayoussef/atlas/internal/logger"
	"github.com/ayoussef/atlas/models"
)

func newTestRepository(fetcher Fetcher, store Store) *repository {
	repo := NewRepository(
		fetcher,
		store,
		NewSearchService(),
		freshness.NewPolicy(24*time.Hour, time.Hour),
		logger.NewNullLogger(),
		5,
	)
	return repo.(*repository)
}

func sampleCountries() []models.Country {
	return []models.Country{
		{
			Alpha3Code: "EGY",
			Alpha2Code: "EG",
			Name:       "Egypt",
			NativeName: "مصر",
			Capital:    "Cairo",
			Region:     "Africa",
			Population: 104_000_000,
			Currencies: models.CurrencyList{{Code: "EGP", Name: "Egyptian pound", Symbol: "£"}},
			Languages:  models.LanguageList{{ISO639_1: "ar", Name: "Arabic", NativeName: "العربية"}},
		},
		{
			Alpha3Code: "NGA",
			Alpha2Code: "NG",
			Name:       "Nigeria",
			Capital:    "Abuja",
			Region:     "Africa",
			Population: 216_000_000,
			Currencies: models.CurrencyList{{Code: "NGN", Name: "Nigerian naira", Symbol: "₦"}},
		},
	}
}

func TestRepository_FetchAllCountries(t *testing.T) {
	ctx := context.Background()

	t.Run("network success persists in background", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		countries := sampleCountries()
		fetcher.On("FetchAll", ctx).Return(countries, nil)
		store.On("SaveAll", mock.Anything, countries).Return(nil)

		got, err := repo.FetchAllCountries(ctx)
		require.NoError(t, err)
		assert.Equal(t, countries, got)

		repo.WaitForPendingWrites()
		store.AssertCalled(t, "SaveAll", mock.Anything, countries)
	})

	t.Run("persist failure never surfaces", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		countries := sampleCountries()
		fetcher.On("FetchAll", ctx).Return(countries, nil)
		store.On("SaveAll", mock.Anything, countries).Return(apperr.New(apperr.KindDatabase, "disk full", nil))

		got, err := repo.FetchAllCountries(ctx)
		require.NoError(t, err)
		assert.Equal(t, countries, got)
		repo.WaitForPendingWrites()
	})

	t.Run("network failure falls back to local store", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		local := sampleCountries()
		netErr := apperr.New(apperr.KindNoConnection, "offline", nil)
		fetcher.On("FetchAll", ctx).Return([]models.Country{}, netErr)
		store.On("GetAll", ctx).Return(local, nil)

		got, err := repo.FetchAllCountries(ctx)
		require.NoError(t, err)
		assert.Equal(t, local, got)
		store.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("double failure surfaces the network error", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		netErr := apperr.New(apperr.KindTimeout, "deadline", nil)
		dbErr := apperr.New(apperr.KindDatabase, "corrupt", nil)
		fetcher.On("FetchAll", ctx).Return([]models.Country{}, netErr)
		store.On("GetAll", ctx).Return([]models.Country{}, dbErr)

		got, err := repo.FetchAllCountries(ctx)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, netErr)
	})
}

func TestRepository_SearchCountries(t *testing.T) {
	ctx := context.Background()

	t.Run("non-empty query never touches the network", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		store.On("GetAll", ctx).Return(sampleCountries(), nil)

		got, err := repo.SearchCountries(ctx, "cairo")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "EGY", got[0].Alpha3Code)
		fetcher.AssertNotCalled(t, "FetchAll", mock.Anything)
		fetcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("empty query delegates to FetchAllCountries", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		countries := sampleCountries()
		fetcher.On("FetchAll", ctx).Return(countries, nil)
		store.On("SaveAll", mock.Anything, countries).Return(nil)

		got, err := repo.SearchCountries(ctx, "   ")
		require.NoError(t, err)
		assert.Equal(t, countries, got)
		repo.WaitForPendingWrites()
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		dbErr := apperr.New(apperr.KindDatabase, "locked", nil)
		store.On("GetAll", ctx).Return([]models.Country{}, dbErr)

		got, err := repo.SearchCountries(ctx, "egypt")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestRepository_FetchCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("local hit skips the network", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		store.On("GetAll", ctx).Return(sampleCountries(), nil)

		got, err := repo.FetchCountry(ctx, "eg")
		require.NoError(t, err)
		assert.Equal(t, "EGY", got.Alpha3Code)
		fetcher.AssertNotCalled(t, "FetchByCode", mock.Anything, mock.Anything)
	})

	t.Run("local miss fetches and persists without pruning", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		kenya := models.Country{Alpha3Code: "KEN", Alpha2Code: "KE", Name: "Kenya"}
		store.On("GetAll", ctx).Return([]models.Country{}, nil)
		fetcher.On("FetchByCode", ctx, "KE").Return(&kenya, nil)
		store.On("Save", mock.Anything, []models.Country{kenya}).Return(nil)

		got, err := repo.FetchCountry(ctx, "KE")
		require.NoError(t, err)
		assert.Equal(t, "KEN", got.Alpha3Code)

		repo.WaitForPendingWrites()
		store.AssertCalled(t, "Save", mock.Anything, []models.Country{kenya})
		store.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("upstream 404 maps to data not found", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		store.On("GetAll", ctx).Return([]models.Country{}, nil)
		fetcher.On("FetchByCode", ctx, "XX").
			Return(nil, apperr.New(apperr.KindDataNotFound, "country not found upstream", nil))

		got, err := repo.FetchCountry(ctx, "XX")
		assert.Nil(t, got)
		assert.True(t, apperr.IsKind(err, apperr.KindDataNotFound))
		assert.ErrorIs(t, err, models.ErrDataNotFound)
	})
}

func TestRepository_RefreshIfStale(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh snapshot skips the fetch", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		store.On("LastUpdated", ctx).Return(time.Now(), nil)

		refreshed, err := repo.RefreshIfStale(ctx)
		require.NoError(t, err)
		assert.False(t, refreshed)
		fetcher.AssertNotCalled(t, "FetchAll", mock.Anything)
	})

	t.Run("due snapshot refetches and saves", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		countries := sampleCountries()
		store.On("LastUpdated", ctx).Return(time.Now().Add(-48*time.Hour), nil)
		fetcher.On("FetchAll", ctx).Return(countries, nil)
		store.On("SaveAll", ctx, countries).Return(nil)

		refreshed, err := repo.RefreshIfStale(ctx)
		require.NoError(t, err)
		assert.True(t, refreshed)
		store.AssertExpectations(t)
	})

	t.Run("fetch failure reports no refresh", func(t *testing.T) {
		fetcher := new(MockFetcher)
		store := new(MockStore)
		repo := newTestRepository(fetcher, store)

		store.On("LastUpdated", ctx).Return(time.Now().Add(-48*time.Hour), nil)
		fetcher.On("FetchAll", ctx).
			Return([]models.Country{}, apperr.New(apperr.KindNoConnection, "offline", nil))

		refreshed, err := repo.RefreshIfStale(ctx)
		assert.Error(t, err)
		assert.False(t, refreshed)
	})
}
