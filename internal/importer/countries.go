package importer

import (
	"strings"

	"github.com/tonpuu/riichirank/internal/domain/model"
)

// countryTable covers the countries that appear on the score sheets: EMA
// member countries plus the usual guest federations. Keyed by alpha-2.
var countryTable = map[string]model.Country{
	"AT": {ID: "AT", Alpha3: "AUT", Name: "Austria"},
	"BE": {ID: "BE", Alpha3: "BEL", Name: "Belgium"},
	"CH": {ID: "CH", Alpha3: "CHE", Name: "Switzerland"},
	"CN": {ID: "CN", Alpha3: "CHN", Name: "China"},
	"CZ": {ID: "CZ", Alpha3: "CZE", Name: "Czechia"},
	"DE": {ID: "DE", Alpha3: "DEU", Name: "Germany"},
	"DK": {ID: "DK", Alpha3: "DNK", Name: "Denmark"},
	"ES": {ID: "ES", Alpha3: "ESP", Name: "Spain"},
	"FI": {ID: "FI", Alpha3: "FIN", Name: "Finland"},
	"FR": {ID: "FR", Alpha3: "FRA", Name: "France"},
	"GB": {ID: "GB", Alpha3: "GBR", Name: "United Kingdom"},
	"HU": {ID: "HU", Alpha3: "HUN", Name: "Hungary"},
	"IT": {ID: "IT", Alpha3: "ITA", Name: "Italy"},
	"JP": {ID: "JP", Alpha3: "JPN", Name: "Japan"},
	"NL": {ID: "NL", Alpha3: "NLD", Name: "Netherlands"},
	"NO": {ID: "NO", Alpha3: "NOR", Name: "Norway"},
	"PL": {ID: "PL", Alpha3: "POL", Name: "Poland"},
	"PT": {ID: "PT", Alpha3: "PRT", Name: "Portugal"},
	"RU": {ID: "RU", Alpha3: "RUS", Name: "Russia"},
	"SE": {ID: "SE", Alpha3: "SWE", Name: "Sweden"},
	"SK": {ID: "SK", Alpha3: "SVK", Name: "Slovakia"},
	"UA": {ID: "UA", Alpha3: "UKR", Name: "Ukraine"},
	"US": {ID: "US", Alpha3: "USA", Name: "United States"},
}

// Sheets are inconsistent about naming; map the variants seen in the wild to
// alpha-2 before falling back to the English name.
var countryAliases = map[string]string{
	"uk":              "GB",
	"great britain":   "GB",
	"england":         "GB",
	"holland":         "NL",
	"the netherlands": "NL",
	"czech republic":  "CZ",
	"deutschland":     "DE",
	"usa":             "US",
}

// normalizeCountry resolves a raw sheet value (alpha-2, alpha-3, or an
// English name variant) to a canonical country record.
func normalizeCountry(raw string) (model.Country, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return model.Country{}, false
	}
	if c, ok := countryTable[strings.ToUpper(v)]; ok {
		return c, true
	}
	if len(v) == 3 {
		up := strings.ToUpper(v)
		for _, c := range countryTable {
			if c.Alpha3 == up {
				return c, true
			}
		}
	}
	lower := strings.ToLower(v)
	if id, ok := countryAliases[lower]; ok {
		return countryTable[id], true
	}
	for _, c := range countryTable {
		if strings.ToLower(c.Name) == lower {
			return c, true
		}
	}
	return model.Country{}, false
}
