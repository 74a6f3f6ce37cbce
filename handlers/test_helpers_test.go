package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

// createDraftBudget creates a budget through the lifecycle service so the
// breakdown is seeded like in production.
func createDraftBudget(t *testing.T, app *pocketbase.PocketBase, projectName string) *core.Record {
	t.Helper()

	budget, err := services.CreateBudget(app, services.DefaultRates(), services.BudgetParams{
		ProjectName:      projectName,
		ConstructionType: "residential",
		AreaSqm:          100,
		Location:         "Belo Horizonte",
		TechnicalLead:    "Eng. Souza",
		IssueDate:        "2026-01-15",
	})
	if err != nil {
		t.Fatalf("failed to create draft budget: %v", err)
	}
	return budget
}

func createApprovedBudget(t *testing.T, app *pocketbase.PocketBase, projectName string) *core.Record {
	t.Helper()

	budget := createDraftBudget(t, app, projectName)
	approved, err := services.ApproveBudget(app, budget.Id)
	if err != nil {
		t.Fatalf("failed to approve budget: %v", err)
	}
	return approved
}
