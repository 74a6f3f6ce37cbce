package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// budgetRequest is the JSON body for creating a budget draft. A missing
// cost_per_sqm means "default from the rate table".
type budgetRequest struct {
	ProjectName      string   `json:"project_name"`
	ConstructionType string   `json:"construction_type"`
	AreaSqm          float64  `json:"area_sqm"`
	CostPerSqm       *float64 `json:"cost_per_sqm"`
	Location         string   `json:"location"`
	TechnicalLead    string   `json:"technical_lead"`
	IssueDate        string   `json:"issue_date"`
	TechnicalNotes   string   `json:"technical_notes"`
	LaborBurdenPct   float64  `json:"labor_burden_pct"`
	AdminMarginPct   float64  `json:"admin_margin_pct"`
	ContingencyPct   float64  `json:"contingency_pct"`
	ProfitMarginPct  float64  `json:"profit_margin_pct"`
	TaxPct           float64  `json:"tax_pct"`
}

// HandleBudgetCreate returns a handler that creates a budget draft and
// responds with the stored record including its seeded breakdown.
func HandleBudgetCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req budgetRequest
		if err := e.BindBody(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		rates, err := services.LoadRateTable(app)
		if err != nil {
			return writeServiceError(e, "budget_create", err)
		}

		budget, err := services.CreateBudget(app, rates, services.BudgetParams{
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
			return writeServiceError(e, "budget_create", err)
		}

		return respondWithBudget(e, app, budget.Id, http.StatusCreated)
	}
}

// respondWithBudget writes the flat budget record (header, line items,
// breakdown) as JSON.
func respondWithBudget(e *core.RequestEvent, app *pocketbase.PocketBase, budgetID string, status int) error {
	data, err := services.BuildExportData(app, budgetID)
	if err != nil {
		return writeServiceError(e, "budget_view", err)
	}
	return e.JSON(status, data)
}
