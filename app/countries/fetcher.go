package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ayoussef/atlas/internal/apperr"
	"github.com/ayoussef/atlas/internal/cache"
	"github.com/ayoussef/atlas/models"
)

// allFields trims the /v2/all payload to the fields the catalogue maps.
const allFields = "name,nativeName,capital,currencies,languages,alpha2Code,alpha3Code,region,population,timezones,borders"

const (
	cacheKeyAll    = "catalogue:all"
	cacheKeyByCode = "catalogue:code:"
)

// countryDTO mirrors the restcountries v2 wire format.
type countryDTO struct {
	Name       string        `json:"name"`
	NativeName string        `json:"nativeName"`
	Capital    string        `json:"capital"`
	Alpha2Code string        `json:"alpha2Code"`
	Alpha3Code string        `json:"alpha3Code"`
	Region     string        `json:"region"`
	Population int64         `json:"population"`
	Currencies []currencyDTO `json:"currencies"`
	Languages  []languageDTO `json:"languages"`
	Timezones  []string      `json:"timezones"`
	Borders    []string      `json:"borders"`
}

type currencyDTO struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type languageDTO struct {
	ISO639_1   string `json:"iso639_1"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

func (dto *countryDTO) toDomain() models.Country {
	currencies := make(models.CurrencyList, 0, len(dto.Currencies))
	for _, c := range dto.Currencies {
		currencies = append(currencies, models.Currency{Code: c.Code, Name: c.Name, Symbol: c.Symbol})
	}
	languages := make(models.LanguageList, 0, len(dto.Languages))
	for _, l := range dto.Languages {
		languages = append(languages, models.Language{ISO639_1: l.ISO639_1, Name: l.Name, NativeName: l.NativeName})
	}

	capital := dto.Capital
	if capital == "" {
		capital = "N/A"
	}
	region := dto.Region
	if region == "" {
		region = "Unknown"
	}

	return models.Country{
		Alpha3Code: dto.Alpha3Code,
		Alpha2Code: dto.Alpha2Code,
		Name:       dto.Name,
		NativeName: dto.NativeName,
		Capital:    capital,
		Region:     region,
		Population: dto.Population,
		Currencies: currencies,
		Languages:  languages,
		Timezones:  models.StringList(dto.Timezones),
		Borders:    models.StringList(dto.Borders),
	}
}

// CatalogueFetcher is the restcountries-backed Fetcher. Successful
// responses are memoized for the refresh-threshold window so bursts of
// reads do not hammer the upstream API; retryable failures are retried
// with capped exponential backoff.
type CatalogueFetcher struct {
	client   *http.Client
	baseURL  string
	cache    cache.Cache[[]models.Country]
	cacheTTL time.Duration
	retries  uint64
	baseWait time.Duration
}

// NewCatalogueFetcher builds a fetcher from the module config.
func NewCatalogueFetcher(cfg *Config, countryCache cache.Cache[[]models.Country]) *CatalogueFetcher {
	return &CatalogueFetcher{
		client:   &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:  cfg.CatalogueBaseURL,
		cache:    countryCache,
		cacheTTL: cfg.RefreshThreshold,
		retries:  uint64(cfg.MaxRetries),
		baseWait: cfg.RetryBaseDelay,
	}
}

// FetchAll retrieves the full catalogue.
func (f *CatalogueFetcher) FetchAll(ctx context.Context) ([]models.Country, error) {
	if cached, err := f.cache.Get(ctx, cacheKeyAll); err == nil {
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/v2/all?fields=%s", f.baseURL, url.QueryEscape(allFields))
	countries, err := f.fetchList(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	_ = f.cache.Set(ctx, cacheKeyAll, countries, f.cacheTTL)
	return countries, nil
}

// Search queries the upstream by-name endpoint.
func (f *CatalogueFetcher) Search(ctx context.Context, query string) ([]models.Country, error) {
	if query == "" {
		return f.FetchAll(ctx)
	}
	endpoint := fmt.Sprintf("%s/v2/name/%s", f.baseURL, url.PathEscape(query))
	return f.fetchList(ctx, endpoint)
}

// FetchByCode retrieves a single country by alpha-2 or alpha-3 code.
func (f *CatalogueFetcher) FetchByCode(ctx context.Context, code string) (*models.Country, error) {
	if code == "" {
		return nil, apperr.New(apperr.KindInvalidCountryCode, "empty country code", nil)
	}

	key := cacheKeyByCode + code
	if cached, err := f.cache.Get(ctx, key); err == nil && len(cached) == 1 {
		return &cached[0], nil
	}

	endpoint := fmt.Sprintf("%s/v2/alpha/%s", f.baseURL, url.PathEscape(code))
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var dto countryDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, apperr.Wrap(apperr.KindDecoding, err)
	}

	country := dto.toDomain()
	_ = f.cache.Set(ctx, key, []models.Country{country}, f.cacheTTL)
	return &country, nil
}

func (f *CatalogueFetcher) fetchList(ctx context.Context, endpoint string) ([]models.Country, error) {
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var dtos []countryDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, apperr.Wrap(apperr.KindDecoding, err)
	}

	countries := make([]models.Country, 0, len(dtos))
	for i := range dtos {
		countries = append(countries, dtos[i].toDomain())
	}
	return countries, nil
}

// get performs the request with retry on retryable network failures.
func (f *CatalogueFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte

	operation := func() error {
		var err error
		body, err = f.getOnce(ctx, endpoint)
		if err != nil && !apperr.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(f.baseWait),
		), f.retries),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func (f *CatalogueFetcher) getOnce(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.New(apperr.KindDataNotFound, "country not found upstream", nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.ServerError(resp.StatusCode, "")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknown, err)
	}
	if len(body) == 0 {
		return nil, apperr.New(apperr.KindNoData, "empty response body", nil)
	}
	return body, nil
}

// classifyTransportError maps transport failures onto the network
// error taxonomy. A cancelled in-flight request is treated the same as
// a failed one so the fallback path still engages.
func classifyTransportError(err error) *apperr.Error {
	switch {
	case errors.Is(err, context.Canceled):
		return apperr.Wrap(apperr.KindCancelled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.KindTimeout, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return apperr.Wrap(apperr.KindTimeout, err)
		}
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return apperr.Wrap(apperr.KindNoConnection, err)
		}
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			return apperr.Wrap(apperr.KindNoConnection, err)
		}
	}

	return apperr.Wrap(apperr.KindUnknown, err)
}
