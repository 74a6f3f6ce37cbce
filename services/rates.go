package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// RateTable maps a construction type to its default cost per square meter.
// It is injected into budget creation rather than read from a module-level
// constant, so operators can tune rates per deployment.
type RateTable map[string]float64

// DefaultRates returns the initial seed rates. After seeding they live in
// the rate_settings collection and are editable over the API; this
// function is only the first-boot fallback.
func DefaultRates() RateTable {
	return RateTable{
		"residential":    1800,
		"commercial":     2200,
		"industrial":     2600,
		"renovation":     950,
		"infrastructure": 3100,
	}
}

// Lookup returns the default cost per sqm for a construction type.
// Unknown types return ErrUnknownCategory; the caller must then supply an
// explicit override.
func (rt RateTable) Lookup(constructionType string) (float64, error) {
	rate, ok := rt[constructionType]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, constructionType)
	}
	return rate, nil
}

// LoadRateTable builds the rate table from the rate_settings collection.
// If no rates are stored yet it falls back to DefaultRates.
func LoadRateTable(app core.App) (RateTable, error) {
	records, err := app.FindRecordsByFilter("rate_settings", "id != ''", "construction_type", 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("load rate table: %w", err)
	}
	if len(records) == 0 {
		return DefaultRates(), nil
	}

	rt := make(RateTable, len(records))
	for _, r := range records {
		rt[r.GetString("construction_type")] = r.GetFloat("cost_per_sqm")
	}
	return rt, nil
}
