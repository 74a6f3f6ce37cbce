package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// HandleBudgetList returns a handler that lists budget summaries, newest
// first.
func HandleBudgetList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgets, err := app.FindRecordsByFilter("budgets", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			return writeServiceError(e, "budget_list", err)
		}

		summaries := make([]map[string]any, 0, len(budgets))
		for _, b := range budgets {
			summaries = append(summaries, map[string]any{
				"id":                b.Id,
				"project_name":      b.GetString("project_name"),
				"construction_type": b.GetString("construction_type"),
				"area_sqm":          b.GetFloat("area_sqm"),
				"status":            b.GetString("status"),
				"total_cost":        b.GetFloat("total_cost"),
				"linked_project_id": b.GetString("linked_project"),
				"revision_of":       b.GetString("revision_of"),
				"issue_date":        b.GetString("issue_date"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"budgets": summaries})
	}
}

// HandleBudgetView returns a handler that responds with the full budget
// record: header, line items and breakdown.
func HandleBudgetView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return respondWithBudget(e, app, e.Request.PathValue("id"), http.StatusOK)
	}
}

// HandleBudgetDelete returns a handler that removes a budget and its line
// items. A linked project is not touched.
func HandleBudgetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		if err := services.DeleteBudget(app, budgetID); err != nil {
			return writeServiceError(e, "budget_delete", err)
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": budgetID})
	}
}
