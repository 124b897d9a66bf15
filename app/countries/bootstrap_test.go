package countries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/internal/logger"
	"github.com/ayoussef/atlas/models"
)

func newTestBootstrapper(repo Repository, store Store, location LocationProvider) *Bootstrapper {
	return NewBootstrapper(repo, store, location, "EG", logger.NewNullLogger())
}

func TestBootstrapper_Run(t *testing.T) {
	ctx := context.Background()
	egypt := models.Country{Alpha3Code: "EGY", Alpha2Code: "EG", Name: "Egypt"}

	t.Run("first launch selects the located country", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockStore)
		location := new(MockLocationProvider)

		store.On("Bootstrapped", ctx).Return(false, nil)
		store.On("MarkBootstrapped", ctx).Return(nil)
		location.On("CurrentCountryCode", ctx).Return("EG", nil)
		repo.On("FetchCountry", ctx, "EG").Return(&egypt, nil)
		repo.On("AddSelectedCountry", ctx, egypt).Return(nil)

		newTestBootstrapper(repo, store, location).Run(ctx)

		repo.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("subsequent launches do nothing", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockStore)
		location := new(MockLocationProvider)

		store.On("Bootstrapped", ctx).Return(true, nil)

		newTestBootstrapper(repo, store, location).Run(ctx)

		store.AssertNotCalled(t, "MarkBootstrapped", ctx)
		repo.AssertNotCalled(t, "FetchCountry", mock.Anything, mock.Anything)
	})

	t.Run("location failure falls back to the default country", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockStore)
		location := new(MockLocationProvider)

		store.On("Bootstrapped", ctx).Return(false, nil)
		store.On("MarkBootstrapped", ctx).Return(nil)
		location.On("CurrentCountryCode", ctx).
			Return("", apperr.New(apperr.KindLocationDenied, "denied", nil))
		repo.On("FetchCountry", ctx, "EG").Return(&egypt, nil)
		repo.On("AddSelectedCountry", ctx, egypt).Return(nil)

		newTestBootstrapper(repo, store, location).Run(ctx)

		repo.AssertExpectations(t)
	})

	t.Run("fetch failure is swallowed and not retried next launch", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockStore)
		location := new(MockLocationProvider)

		store.On("Bootstrapped", ctx).Return(false, nil)
		store.On("MarkBootstrapped", ctx).Return(nil)
		location.On("CurrentCountryCode", ctx).Return("EG", nil)
		repo.On("FetchCountry", ctx, "EG").
			Return(nil, apperr.New(apperr.KindNoConnection, "offline", nil))

		newTestBootstrapper(repo, store, location).Run(ctx)

		// Marked before the attempt, so a broken first launch stays done.
		store.AssertCalled(t, "MarkBootstrapped", ctx)
		repo.AssertNotCalled(t, "AddSelectedCountry", mock.Anything, mock.Anything)
	})

	t.Run("already selected is tolerated", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockStore)
		location := new(MockLocationProvider)

		store.On("Bootstrapped", ctx).Return(false, nil)
		store.On("MarkBootstrapped", ctx).Return(nil)
		location.On("CurrentCountryCode", ctx).Return("EG", nil)
		repo.On("FetchCountry", ctx, "EG").Return(&egypt, nil)
		repo.On("AddSelectedCountry", ctx, egypt).
			Return(apperr.New(apperr.KindCountryAlreadyAdded, "EGY", nil))

		newTestBootstrapper(repo, store, location).Run(ctx)
		repo.AssertExpectations(t)
	})
}

func TestStaticLocationProvider(t *testing.T) {
	ctx := context.Background()

	code, err := (&StaticLocationProvider{Code: "EG"}).CurrentCountryCode(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "EG", code)

	_, err = (&StaticLocationProvider{}).CurrentCountryCode(ctx)
	assert.True(t, apperr.IsKind(err, apperr.KindLocationUnavailable))
}
