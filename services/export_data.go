package services

import (
	"github.com/pocketbase/pocketbase/core"
)

// ExportData is the flat, stable-shaped record handed to document
// renderers (PDF, Excel, JSON view). Renderers format; they never compute.
type ExportData struct {
	BudgetID         string `json:"budget_id"`
	ProjectName      string `json:"project_name"`
	ConstructionType string `json:"construction_type"`
	Location         string `json:"location"`
	TechnicalLead    string `json:"technical_lead"`
	IssueDate        string `json:"issue_date"`
	Status           string `json:"status"`
	TechnicalNotes   string `json:"technical_notes"`
	RevisionOf       string `json:"revision_of,omitempty"`
	LinkedProjectID  string `json:"linked_project_id,omitempty"`

	AreaSqm    float64 `json:"area_sqm"`
	CostPerSqm float64 `json:"cost_per_sqm"`

	LaborBurdenPct  float64 `json:"labor_burden_pct"`
	AdminMarginPct  float64 `json:"admin_margin_pct"`
	ContingencyPct  float64 `json:"contingency_pct"`
	ProfitMarginPct float64 `json:"profit_margin_pct"`
	TaxPct          float64 `json:"tax_pct"`

	Materials []MaterialItem  `json:"materials"`
	Labor     []LaborItem     `json:"labor"`
	Transport TransportParams `json:"transport"`
	Stages    []Stage         `json:"stages"`
	Extras    []ExtraExpense  `json:"extra_expenses"`

	Breakdown CostBreakdown `json:"breakdown"`
}

// BuildExportData assembles the renderer-facing record for a budget from
// its stored fields, line items and breakdown.
func BuildExportData(app core.App, budgetID string) (ExportData, error) {
	budget, err := LoadBudget(app, budgetID)
	if err != nil {
		return ExportData{}, err
	}

	in, err := BudgetInputFromRecord(app, budget)
	if err != nil {
		return ExportData{}, err
	}

	return ExportData{
		BudgetID:         budget.Id,
		ProjectName:      budget.GetString("project_name"),
		ConstructionType: budget.GetString("construction_type"),
		Location:         budget.GetString("location"),
		TechnicalLead:    budget.GetString("technical_lead"),
		IssueDate:        budget.GetString("issue_date"),
		Status:           budget.GetString("status"),
		TechnicalNotes:   budget.GetString("technical_notes"),
		RevisionOf:       budget.GetString("revision_of"),
		LinkedProjectID:  budget.GetString("linked_project"),
		AreaSqm:          in.AreaSqm,
		CostPerSqm:       in.CostPerSqm,
		LaborBurdenPct:   in.LaborBurdenPct,
		AdminMarginPct:   in.AdminMarginPct,
		ContingencyPct:   in.ContingencyPct,
		ProfitMarginPct:  in.ProfitMarginPct,
		TaxPct:           in.TaxPct,
		Materials:        in.Materials,
		Labor:            in.Labor,
		Transport:        in.Transport,
		Stages:           in.Stages,
		Extras:           in.Extras,
		Breakdown:        BreakdownFromRecord(budget),
	}, nil
}
