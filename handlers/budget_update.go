package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// budgetPatchRequest carries a partial header update; absent fields are
// left untouched.
type budgetPatchRequest struct {
	ProjectName      *string  `json:"project_name"`
	ConstructionType *string  `json:"construction_type"`
	AreaSqm          *float64 `json:"area_sqm"`
	CostPerSqm       *float64 `json:"cost_per_sqm"`
	Location         *string  `json:"location"`
	TechnicalLead    *string  `json:"technical_lead"`
	IssueDate        *string  `json:"issue_date"`
	TechnicalNotes   *string  `json:"technical_notes"`
	LaborBurdenPct   *float64 `json:"labor_burden_pct"`
	AdminMarginPct   *float64 `json:"admin_margin_pct"`
	ContingencyPct   *float64 `json:"contingency_pct"`
	ProfitMarginPct  *float64 `json:"profit_margin_pct"`
	TaxPct           *float64 `json:"tax_pct"`
}

// HandleBudgetUpdate returns a handler that merges a partial header
// update and responds with the recomputed record. Approved budgets are
// rejected; a revision must be created first.
func HandleBudgetUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		var req budgetPatchRequest
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		budget, err := services.UpdateBudget(app, budgetID, services.BudgetPatch{
			ProjectName:      req.ProjectName,
			ConstructionType: req.ConstructionType,
			AreaSqm:          req.AreaSqm,
			CostPerSqm:       req.CostPerSqm,
			Location:         req.Location,
			TechnicalLead:    req.TechnicalLead,
			IssueDate:        req.IssueDate,
			TechnicalNotes:   req.TechnicalNotes,
			LaborBurdenPct:   req.LaborBurdenPct,
			AdminMarginPct:   req.AdminMarginPct,
			ContingencyPct:   req.ContingencyPct,
			ProfitMarginPct:  req.ProfitMarginPct,
			TaxPct:           req.TaxPct,
		})
		if err != nil {
			return writeServiceError(e, "budget_update", err)
		}

		return respondWithBudget(e, app, budget.Id, http.StatusOK)
	}
}

// HandleTransportUpdate returns a handler that replaces the budget's
// transport parameters.
func HandleTransportUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		var t services.TransportParams
		if err := e.BindBody(&t); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		budget, err := services.UpdateTransport(app, budgetID, t)
		if err != nil {
			return writeServiceError(e, "budget_transport", err)
		}

		return respondWithBudget(e, app, budget.Id, http.StatusOK)
	}
}
