package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"obralis/testhelpers"
)

func TestHandleBudgetList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	createDraftBudget(t, app, "Casa Alfa")
	createDraftBudget(t, app, "Casa Beta")

	handler := HandleBudgetList(app)
	req := httptest.NewRequest(http.MethodGet, "/budgets", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), "Casa Alfa", "Casa Beta")
}

func TestHandleBudgetView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createDraftBudget(t, app, "Casa Alfa")

	handler := HandleBudgetView(app)
	req := httptest.NewRequest(http.MethodGet, "/budgets/"+budget.Id, nil)
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(),
		`"budget_id":"`+budget.Id+`"`,
		`"breakdown"`,
	)
}

func TestHandleBudgetView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBudgetView(app)
	req := httptest.NewRequest(http.MethodGet, "/budgets/missing123", nil)
	req.SetPathValue("id", "missing123")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleBudgetDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createDraftBudget(t, app, "Casa Alfa")

	handler := HandleBudgetDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/budgets/"+budget.Id, nil)
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("budgets", budget.Id); err == nil {
		t.Error("budget still exists after delete")
	}
}

func TestHandleBudgetUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createDraftBudget(t, app, "Casa Alfa")

	handler := HandleBudgetUpdate(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/save",
		jsonBody(`{"area_sqm": 150}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(),
		`"area_sqm":150`,
		`"base_cost":270000`,
	)
}

func TestHandleBudgetUpdate_ApprovedRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createApprovedBudget(t, app, "Casa Alfa")

	handler := HandleBudgetUpdate(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/save",
		jsonBody(`{"area_sqm": 200}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for approved budget, got %d", rec.Code)
	}
}

func TestHandleTransportUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createDraftBudget(t, app, "Casa Alfa")

	handler := HandleTransportUpdate(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/transport",
		jsonBody(`{"distance_km": 30, "fuel_efficiency_km_per_l": 10, "fuel_price_per_l": 6, "trips_per_week": 5, "duration_weeks": 4, "tolls": 120}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	// round-trip fuel 720 plus tolls 120
	testhelpers.AssertJSONContains(t, rec.Body.String(), `"transport_cost":840`)
}

func TestHandleTransportUpdate_MissingEfficiency(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	budget := createDraftBudget(t, app, "Casa Alfa")

	handler := HandleTransportUpdate(app)
	req := httptest.NewRequest(http.MethodPost, "/budgets/"+budget.Id+"/transport",
		jsonBody(`{"distance_km": 30}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", budget.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
