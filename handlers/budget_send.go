package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// HandleBudgetSendToProject returns a handler that provisions a live
// project from an approved budget. Idempotent: a budget that already has
// a linked project gets the same id back and nothing new is created.
func HandleBudgetSendToProject(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		projectID, err := services.SendToProject(app, budgetID)
		if err != nil {
			return writeServiceError(e, "budget_send", err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"budget_id":  budgetID,
			"project_id": projectID,
		})
	}
}
