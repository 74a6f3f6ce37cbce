package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// HandleRateList returns a handler that lists the configured default cost
// per sqm by construction type.
func HandleRateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rates, err := services.LoadRateTable(app)
		if err != nil {
			return writeServiceError(e, "rate_list", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"rates": rates})
	}
}

type rateUpdateRequest struct {
	ConstructionType string  `json:"construction_type"`
	CostPerSqm       float64 `json:"cost_per_sqm"`
}

// HandleRateUpdate returns a handler that tunes the default rate for one
// construction type. Only already-seeded types can be tuned; the rate
// table is configuration, not a free-form dictionary.
func HandleRateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req rateUpdateRequest
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if err := (validation.Errors{
			"construction_type": validation.Validate(req.ConstructionType,
				validation.Required, validation.By(func(any) error {
					if !services.IsConstructionType(req.ConstructionType) {
						return services.ErrUnknownCategory
					}
					return nil
				})),
			"cost_per_sqm": validation.Validate(req.CostPerSqm,
				validation.Min(0.0).Error("must not be negative")),
		}).Filter(); err != nil {
			return writeServiceError(e, "rate_update", err)
		}

		records, err := app.FindRecordsByFilter(
			"rate_settings",
			"construction_type = {:type}",
			"", 1, 0,
			map[string]any{"type": req.ConstructionType},
		)
		if err != nil {
			return writeServiceError(e, "rate_update", err)
		}

		var record *core.Record
		if len(records) > 0 {
			record = records[0]
		} else {
			col, err := app.FindCollectionByNameOrId("rate_settings")
			if err != nil {
				return writeServiceError(e, "rate_update", err)
			}
			record = core.NewRecord(col)
			record.Set("construction_type", req.ConstructionType)
		}

		record.Set("cost_per_sqm", req.CostPerSqm)
		if err := app.Save(record); err != nil {
			return writeServiceError(e, "rate_update", err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"construction_type": req.ConstructionType,
			"cost_per_sqm":      req.CostPerSqm,
		})
	}
}
