package services

import (
	"errors"
	"testing"

	"obralis/testhelpers"
)

func TestBuildExportData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	budget, err := CreateBudget(app, DefaultRates(), BudgetParams{
		ProjectName:      "Casa Alfa",
		ConstructionType: "residential",
		AreaSqm:          100,
		Location:         "Belo Horizonte",
		TechnicalLead:    "Eng. Souza",
		IssueDate:        "2026-01-15",
		ProfitMarginPct:  15,
	})
	if err != nil {
		t.Fatalf("CreateBudget() error: %v", err)
	}
	if _, err := AddMaterialItem(app, budget.Id, MaterialItem{
		Description: "Cement", Unit: "bag", Quantity: 10, UnitPrice: 50,
	}); err != nil {
		t.Fatalf("AddMaterialItem() error: %v", err)
	}
	if _, err := AddLaborItem(app, budget.Id, LaborItem{
		Role: "Mason", Headcount: 2, DailyRate: 200, DurationDays: 5,
	}); err != nil {
		t.Fatalf("AddLaborItem() error: %v", err)
	}
	if _, err := UpdateTransport(app, budget.Id, TransportParams{Tolls: 120}); err != nil {
		t.Fatalf("UpdateTransport() error: %v", err)
	}

	data, err := BuildExportData(app, budget.Id)
	if err != nil {
		t.Fatalf("BuildExportData() error: %v", err)
	}

	if data.BudgetID != budget.Id {
		t.Errorf("BudgetID = %q, want %q", data.BudgetID, budget.Id)
	}
	if data.ProjectName != "Casa Alfa" {
		t.Errorf("ProjectName = %q, want Casa Alfa", data.ProjectName)
	}
	if data.Status != StatusDraft {
		t.Errorf("Status = %q, want %q", data.Status, StatusDraft)
	}
	if len(data.Materials) != 1 || data.Materials[0].Description != "Cement" {
		t.Errorf("Materials = %+v, want single Cement line", data.Materials)
	}
	if len(data.Labor) != 1 || data.Labor[0].Role != "Mason" {
		t.Errorf("Labor = %+v, want single Mason line", data.Labor)
	}
	if data.Transport.Tolls != 120 {
		t.Errorf("Transport.Tolls = %v, want 120", data.Transport.Tolls)
	}

	// the exported breakdown matches a fresh aggregator run over the same
	// fields
	in, err := BudgetInputFromRecord(app, mustLoad(t, app, budget.Id))
	if err != nil {
		t.Fatalf("BudgetInputFromRecord() error: %v", err)
	}
	fresh, err := ComputeBreakdown(in)
	if err != nil {
		t.Fatalf("ComputeBreakdown() error: %v", err)
	}
	if !almostEqual(data.Breakdown.TotalCost, fresh.TotalCost) {
		t.Errorf("exported TotalCost %v drifted from recomputed %v",
			data.Breakdown.TotalCost, fresh.TotalCost)
	}
}

func TestBuildExportDataNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if _, err := BuildExportData(app, "missing123"); !errors.Is(err, ErrBudgetNotFound) {
		t.Errorf("expected ErrBudgetNotFound, got %v", err)
	}
}
