package countries

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ayoussef/atlas/models"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchAll(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockFetcher) Search(ctx context.Context, query string) ([]models.Country, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockFetcher) FetchByCode(ctx context.Context, code string) (*models.Country, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetAll(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockStore) SaveAll(ctx context.Context, countries []models.Country) error {
	args := m.Called(ctx, countries)
	return args.Error(0)
}

func (m *MockStore) Save(ctx context.Context, countries []models.Country) error {
	args := m.Called(ctx, countries)
	return args.Error(0)
}

func (m *MockStore) GetSelected(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockStore) AddSelected(ctx context.Context, country models.Country, maxSelected int) error {
	args := m.Called(ctx, country, maxSelected)
	return args.Error(0)
}

func (m *MockStore) RemoveSelected(ctx context.Context, alpha3Code string) error {
	args := m.Called(ctx, alpha3Code)
	return args.Error(0)
}

func (m *MockStore) LastUpdated(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockStore) Bootstrapped(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) MarkBootstrapped(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FetchAllCountries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockRepository) SearchCountries(ctx context.Context, query string) ([]models.Country, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockRepository) FetchCountry(ctx context.Context, alpha2Code string) (*models.Country, error) {
	args := m.Called(ctx, alpha2Code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *MockRepository) LocalCountries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockRepository) GetSelectedCountries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *MockRepository) AddSelectedCountry(ctx context.Context, country models.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

func (m *MockRepository) RemoveSelectedCountry(ctx context.Context, alpha3Code string) error {
	args := m.Called(ctx, alpha3Code)
	return args.Error(0)
}

func (m *MockRepository) SnapshotAge(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockRepository) RefreshIfStale(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) GetAllCountries(ctx context.Context) ([]CountryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]CountryResponse), args.Error(1)
}

func (m *MockService) SearchCountries(ctx context.Context, query string) ([]CountryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]CountryResponse), args.Error(1)
}

func (m *MockService) GetCountryByCode(ctx context.Context, alpha2Code string) (*CountryDetailsResponse, error) {
	args := m.Called(ctx, alpha2Code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CountryDetailsResponse), args.Error(1)
}

func (m *MockService) GetSelectedCountries(ctx context.Context) ([]CountryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]CountryResponse), args.Error(1)
}

func (m *MockService) AddSelectedCountry(ctx context.Context, alpha3Code string) error {
	args := m.Called(ctx, alpha3Code)
	return args.Error(0)
}

func (m *MockService) RemoveSelectedCountry(ctx context.Context, alpha3Code string) error {
	args := m.Called(ctx, alpha3Code)
	return args.Error(0)
}

func (m *MockService) CacheStatus(ctx context.Context) (*CacheStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CacheStatusResponse), args.Error(1)
}

type MockLocationProvider struct {
	mock.Mock
}

func (m *MockLocationProvider) CurrentCountryCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
