package countries

import (
	"context"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/internal/logger"
)

// Bootstrapper seeds the selection on first launch: the current
// country (falling back to a configured default when location fails)
// is fetched and pinned. Every failure is logged and swallowed; a
// broken bootstrap must never break startup.
type Bootstrapper struct {
	repo        Repository
	store       Store
	location    LocationProvider
	defaultCode string
	log         logger.Logger
}

// NewBootstrapper creates the first-launch bootstrapper.
func NewBootstrapper(repo Repository, store Store, location LocationProvider, defaultCode string, log logger.Logger) *Bootstrapper {
	return &Bootstrapper{
		repo:        repo,
		store:       store,
		location:    location,
		defaultCode: defaultCode,
		log:         log,
	}
}

// Run performs the bootstrap once per database lifetime.
func (b *Bootstrapper) Run(ctx context.Context) {
	done, err := b.store.Bootstrapped(ctx)
	if err != nil {
		b.log.Error(err, logger.Fields{"op": "bootstrap_check"})
		return
	}
	if done {
		b.log.Debug("not first launch, skipping auto-selection", nil)
		return
	}

	// Marked before the attempt so a failed bootstrap is not retried
	// on every start.
	if err := b.store.MarkBootstrapped(ctx); err != nil {
		b.log.Error(err, logger.Fields{"op": "bootstrap_mark"})
		return
	}

	code := b.resolveCountryCode(ctx)
	country, err := b.repo.FetchCountry(ctx, code)
	if err != nil {
		b.log.Error(err, logger.Fields{"op": "bootstrap_fetch", "code": code})
		return
	}

	if err := b.repo.AddSelectedCountry(ctx, *country); err != nil {
		if apperr.IsKind(err, apperr.KindCountryAlreadyAdded) {
			return
		}
		b.log.Error(err, logger.Fields{"op": "bootstrap_add", "code": country.Alpha3Code})
		return
	}
	b.log.Info("first-launch country selected", logger.Fields{"country": country.Name})
}

func (b *Bootstrapper) resolveCountryCode(ctx context.Context) string {
	code, err := b.location.CurrentCountryCode(ctx)
	if err != nil || code == "" {
		if err != nil {
			b.log.Debug("location unavailable, using default country", logger.Fields{
				"error":   err.Error(),
				"default": b.defaultCode,
			})
		}
		return b.defaultCode
	}
	return code
}

// StaticLocationProvider always reports a fixed country, standing in
// for a real geolocation collaborator.
type StaticLocationProvider struct {
	Code string
}

// CurrentCountryCode returns the configured code, or a location error
// when none is set.
func (p *StaticLocationProvider) CurrentCountryCode(_ context.Context) (string, error) {
	if p.Code == "" {
		return "", apperr.New(apperr.KindLocationUnavailable, "no static location configured", nil)
	}
	return p.Code, nil
}
