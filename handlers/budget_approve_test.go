package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"obralis/testhelpers"
)

func TestHandleBudgetApprove(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createDraftBudget(t, app, "Casa Alfa")

	handler := HandleBudgetApprove(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/approve", nil)
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"status":"approved"`)
}

func TestHandleBudgetApprove_AlreadyApproved(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createApprovedBudget(t, app, "Casa Alfa")

	handler := HandleBudgetApprove(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/approve", nil)
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleBudgetApprove_Incomplete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := testhelpers.CreateTestBudget(t, app, "Sem Nome")
	budget.Set("project_name", "")
	if err := app.Save(budget); err != nil {
		t.Fatalf("save: %v", err)
	}

	handler := HandleBudgetApprove(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/approve", nil)
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), "project_name")
}

func TestHandleBudgetRevision(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createApprovedBudget(t, app, "Casa Alfa")

	handler := HandleBudgetRevision(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/revision", nil)
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(),
		`"status":"revision"`,
		`"revision_of":"`+budget.Id+`"`,
	)
}

func TestHandleBudgetRevision_DraftRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createDraftBudget(t, app, "Casa Alfa")

	handler := HandleBudgetRevision(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/revision", nil)
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for draft revision, got %d", rec.Code)
	}
}
