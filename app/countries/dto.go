package countries

import (
	"fmt"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/ayoussef/atlas/internal/freshness"
	"github.com/ayoussef/atlas/models"
)

// CountryResponse is the row representation consumed by list views.
type CountryResponse struct {
	Alpha2Code          string `json:"alpha2_code"`
	Alpha3Code          string `json:"alpha3_code"`
	Name                string `json:"name"`
	NativeName          string `json:"native_name,omitempty"`
	Capital             string `json:"capital"`
	Region              string `json:"region"`
	Population          int64  `json:"population"`
	CurrencyDescription string `json:"currency_description"`
	IsSelected          bool   `json:"is_selected"`
}

// CountryDetailsResponse carries the full display data for one country.
type CountryDetailsResponse struct {
	CountryResponse
	Currencies           models.CurrencyList `json:"currencies"`
	Languages            models.LanguageList `json:"languages"`
	LanguagesDescription string              `json:"languages_description"`
	Timezones            []string            `json:"timezones,omitempty"`
	Borders              []string            `json:"borders,omitempty"`
	CallingCode          string              `json:"calling_code,omitempty"`
}

// CacheStatusResponse reports the local snapshot's freshness.
type CacheStatusResponse struct {
	Status      freshness.Status `json:"status"`
	LastUpdated *time.Time       `json:"last_updated,omitempty"`
	Freshness   float64          `json:"freshness_percent"`
	Countries   int              `json:"countries"`
	Selected    int              `json:"selected"`
}

// AddSelectedRequest is the body for selecting a country.
type AddSelectedRequest struct {
	Alpha3Code string `json:"alpha3_code" binding:"required,len=3,alpha"`
}

// ToCountryResponse converts a models.Country to CountryResponse
func ToCountryResponse(c *models.Country) CountryResponse {
	return CountryResponse{
		Alpha2Code:          c.Alpha2Code,
		Alpha3Code:          c.Alpha3Code,
		Name:                c.Name,
		NativeName:          c.NativeName,
		Capital:             c.Capital,
		Region:              c.Region,
		Population:          c.Population,
		CurrencyDescription: c.CurrencyDescription(),
		IsSelected:          c.IsSelected,
	}
}

// ToCountryResponseList converts a slice of models.Country to CountryResponse
func ToCountryResponseList(countries []models.Country) []CountryResponse {
	responses := make([]CountryResponse, len(countries))
	for i := range countries {
		responses[i] = ToCountryResponse(&countries[i])
	}
	return responses
}

// ToCountryDetailsResponse converts a models.Country to its details view,
// deriving the international calling code from the alpha-2 code.
func ToCountryDetailsResponse(c *models.Country) *CountryDetailsResponse {
	return &CountryDetailsResponse{
		CountryResponse:      ToCountryResponse(c),
		Currencies:           c.Currencies,
		Languages:            c.Languages,
		LanguagesDescription: c.LanguagesDescription(),
		Timezones:            c.Timezones,
		Borders:              c.Borders,
		CallingCode:          callingCodeFor(c.Alpha2Code),
	}
}

func callingCodeFor(alpha2Code string) string {
	code := phonenumbers.GetCountryCodeForRegion(strings.ToUpper(alpha2Code))
	if code == 0 {
		return ""
	}
	return fmt.Sprintf("+%d", code)
}
