package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Currency is one entry of a country's currency list.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// DisplayName renders "CODE (symbol)", or the code alone when the
// symbol is empty.
func (c Currency) DisplayName() string {
	if c.Symbol == "" {
		return c.Code
	}
	return fmt.Sprintf("%s (%s)", c.Code, c.Symbol)
}

// Language is one entry of a country's language list.
type Language struct {
	ISO639_1   string `json:"iso639_1,omitempty"`
	Name       string `json:"name"`
	NativeName string `json:"native_name,omitempty"`
}

// CurrencyList is stored as a JSON column.
type CurrencyList []Currency

// Value implements driver.Valuer interface for database storage
func (l CurrencyList) Value() (driver.Value, error) {
	if l == nil {
		l = CurrencyList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for database retrieval
func (l *CurrencyList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// LanguageList is stored as a JSON column.
type LanguageList []Language

// Value implements driver.Valuer interface for database storage
func (l LanguageList) Value() (driver.Value, error) {
	if l == nil {
		l = LanguageList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for database retrieval
func (l *LanguageList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// StringList is stored as a JSON column.
type StringList []string

// Value implements driver.Valuer interface for database storage
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for database retrieval
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value, target interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	}
	return nil
}

// Country represents a single country row in the local catalogue.
// Alpha3Code is the identity key; rows are replaced wholesale on a
// catalogue refresh except that selected rows keep their snapshot.
type Country struct {
	Alpha3Code  string       `gorm:"type:varchar(3);primaryKey" json:"alpha3_code"` // ISO 3166-1 alpha-3
	Alpha2Code  string       `gorm:"type:varchar(2);not null;index" json:"alpha2_code"`
	Name        string       `gorm:"type:varchar(120);not null;index" json:"name"`
	NativeName  string       `gorm:"type:varchar(120)" json:"native_name,omitempty"`
	Capital     string       `gorm:"type:varchar(120)" json:"capital"`
	Region      string       `gorm:"type:varchar(60)" json:"region"`
	Population  int64        `json:"population"`
	Currencies  CurrencyList `gorm:"type:text" json:"currencies"`
	Languages   LanguageList `gorm:"type:text" json:"languages"`
	Timezones   StringList   `gorm:"type:text" json:"timezones,omitempty"`
	Borders     StringList   `gorm:"type:text" json:"borders,omitempty"`
	IsSelected  bool         `gorm:"default:false;index" json:"is_selected"`
	LastUpdated time.Time    `gorm:"autoUpdateTime" json:"last_updated"`
}

// TableName specifies the table name for Country model
func (*Country) TableName() string {
	return "countries"
}

// MainCurrency returns the first currency, or false if there is none.
func (c *Country) MainCurrency() (Currency, bool) {
	if len(c.Currencies) == 0 {
		return Currency{}, false
	}
	return c.Currencies[0], true
}

// CurrencyDescription renders the main currency for display,
// or "N/A" when the country has no currencies.
func (c *Country) CurrencyDescription() string {
	main, ok := c.MainCurrency()
	if !ok {
		return "N/A"
	}
	return main.DisplayName()
}

// LanguagesDescription joins the native names of all languages,
// falling back to the plain name per entry, or "N/A" when empty.
func (c *Country) LanguagesDescription() string {
	if len(c.Languages) == 0 {
		return "N/A"
	}
	names := make([]string, 0, len(c.Languages))
	for _, lang := range c.Languages {
		name := lang.NativeName
		if name == "" {
			name = lang.Name
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// Validate performs validation on the country model
func (c *Country) Validate() error {
	if c.Name == "" {
		return ErrInvalidCountryName
	}
	if len(c.Alpha2Code) != 2 {
		return ErrInvalidCountryCode
	}
	if len(c.Alpha3Code) != 3 {
		return ErrInvalidCountryCode
	}
	if c.Population < 0 {
		return ErrInvalidPopulation
	}
	return nil
}

// SnapshotMeta is a single-row table tracking the local catalogue as
// a whole: when the last full refresh landed and whether the
// first-launch bootstrap already ran.
type SnapshotMeta struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	LastUpdated  time.Time `json:"last_updated"`
	Bootstrapped bool      `gorm:"default:false" json:"bootstrapped"`
}

// TableName specifies the table name for SnapshotMeta model
func (*SnapshotMeta) TableName() string {
	return "snapshot_meta"
}
