package countries

import (
	"strings"

	"github.com/ayoussef/atlas/models"
)

// searchService is the pure in-memory multi-field matcher used for the
// offline search path.
type searchService struct{}

// NewSearchService creates the local country search service.
func NewSearchService() Searcher {
	return &searchService{}
}

// Search keeps every country matching the trimmed query in any
// display field. An empty query is the identity: the input comes back
// unchanged, in its original order. The filter is stable.
func (s *searchService) Search(countries []models.Country, query string) []models.Country {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return countries
	}

	needle := strings.ToLower(trimmed)
	matched := make([]models.Country, 0, len(countries))
	for i := range countries {
		if matchesCountry(&countries[i], needle) {
			matched = append(matched, countries[i])
		}
	}
	return matched
}

// matchesCountry expects needle already lowercased. strings.ToLower is
// Unicode-aware, so caseless scripts such as Arabic compare byte-wise.
func matchesCountry(c *models.Country, needle string) bool {
	fields := []string{
		c.Name,
		c.NativeName,
		c.Capital,
		c.Alpha2Code,
		c.Alpha3Code,
		c.Region,
	}
	for _, f := range fields {
		if containsFold(f, needle) {
			return true
		}
	}
	return matchesCurrencies(c.Currencies, needle) || matchesLanguages(c.Languages, needle)
}

func matchesCurrencies(currencies models.CurrencyList, needle string) bool {
	for _, cur := range currencies {
		if containsFold(cur.Code, needle) ||
			containsFold(cur.Name, needle) ||
			containsFold(cur.Symbol, needle) {
			return true
		}
	}
	return false
}

func matchesLanguages(languages models.LanguageList, needle string) bool {
	for _, lang := range languages {
		if containsFold(lang.Name, needle) ||
			containsFold(lang.NativeName, needle) ||
			containsFold(lang.ISO639_1, needle) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
