package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// rateDef is a seed row for rate_settings.
type rateDef struct {
	constructionType string
	costPerSqm       float64
}

// seedRates are the first-boot defaults. They must stay in sync with the
// construction types the budgets collection accepts; once seeded, the
// stored rows are the source of truth and are editable over the API.
var seedRates = []rateDef{
	{"residential", 1800},
	{"commercial", 2200},
	{"industrial", 2600},
	{"renovation", 950},
	{"infrastructure", 3100},
}

// Seed populates the rate_settings collection with the default cost per
// sqm for each construction type. Types that already have a rate record
// are left alone, so operator-tuned values survive restarts.
func Seed(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("rate_settings")
	if err != nil {
		return fmt.Errorf("seed: could not find rate_settings collection: %w", err)
	}

	seeded := 0
	for _, def := range seedRates {
		existing, err := app.FindRecordsByFilter(
			"rate_settings",
			"construction_type = {:type}",
			"", 1, 0,
			map[string]any{"type": def.constructionType},
		)
		if err != nil {
			return fmt.Errorf("seed: could not query rates for %q: %w", def.constructionType, err)
		}
		if len(existing) > 0 {
			continue
		}

		record := core.NewRecord(col)
		record.Set("construction_type", def.constructionType)
		record.Set("cost_per_sqm", def.costPerSqm)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save rate for %q: %w", def.constructionType, err)
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("seed: created %d default rate setting(s)\n", seeded)
	}
	return nil
}
