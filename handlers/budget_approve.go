package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// HandleBudgetApprove returns a handler that transitions a draft or
// revision to approved. The response is an explicit result, not a
// fire-and-forget notification: callers get the approved record or the
// list of missing fields.
func HandleBudgetApprove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		budget, err := services.ApproveBudget(app, budgetID)
		if err != nil {
			return writeServiceError(e, "budget_approve", err)
		}

		return respondWithBudget(e, app, budget.Id, http.StatusOK)
	}
}

// HandleBudgetRevision returns a handler that clones an approved budget
// into a new mutable revision. The approved original is retained
// unmodified for audit.
func HandleBudgetRevision(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		clone, err := services.CreateRevision(app, budgetID)
		if err != nil {
			return writeServiceError(e, "budget_revision", err)
		}

		return respondWithBudget(e, app, clone.Id, http.StatusCreated)
	}
}
