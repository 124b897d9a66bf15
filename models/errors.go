package models

import "errors"

var (
	ErrInvalidCountryName = errors.New("invalid country name")
	ErrInvalidCountryCode = errors.New("invalid country code")
	ErrInvalidPopulation  = errors.New("population cannot be negative")

	ErrMaxCountriesReached = errors.New("maximum number of selected countries reached")
	ErrCountryAlreadyAdded = errors.New("country is already selected")
	ErrDataNotFound        = errors.New("requested data not found")
	ErrRecordNotFound      = errors.New("record not found")

	ErrDatabaseNotConfigured = errors.New("database path not configured")

	ErrInvalidCacheValidity    = errors.New("cache validity duration must be positive")
	ErrInvalidRefreshThreshold = errors.New("refresh threshold must be positive and below the validity duration")
	ErrInvalidMaxSelected      = errors.New("max selected countries must be positive")
	ErrInvalidBaseURL          = errors.New("catalogue base URL not configured")
	ErrInvalidRequestTimeout   = errors.New("request timeout must be positive")
	ErrInvalidDebounceInterval = errors.New("search debounce interval cannot be negative")
)
