package services

import (
	"testing"
)

func sampleExportData() ExportData {
	return ExportData{
		BudgetID:         "bdg001",
		ProjectName:      "Casa Alfa",
		ConstructionType: "residential",
		Location:         "Belo Horizonte",
		TechnicalLead:    "Eng. Souza",
		IssueDate:        "2026-01-15",
		Status:           StatusDraft,
		AreaSqm:          100,
		CostPerSqm:       500,
		LaborBurdenPct:   80,
		AdminMarginPct:   10,
		ContingencyPct:   5,
		ProfitMarginPct:  15,
		TaxPct:           12,
		Materials: []MaterialItem{
			{Description: "Cement", Unit: "bag", Quantity: 10, UnitPrice: 50, Supplier: "Votoran"},
		},
		Labor: []LaborItem{
			{Role: "Mason", Headcount: 2, DailyRate: 200, DurationDays: 5},
		},
		Transport: TransportParams{
			DistanceKm: 30, FuelEfficiencyKmPerL: 10, FuelPricePerL: 6,
			TripsPerWeek: 5, DurationWeeks: 4, Tolls: 120,
		},
		Stages: []Stage{
			{Name: "Foundation", PlannedCost: 8000},
		},
		Extras: []ExtraExpense{
			{Category: "permits", Amount: 400},
		},
		Breakdown: CostBreakdown{
			BaseCost:      50000,
			MaterialsCost: 500,
			LaborCost:     3600,
			Subtotal:      62485.5,
			Profit:        9372.825,
			TaxAmount:     8622.999,
			TotalCost:     80481.324,
		},
	}
}

func TestGeneratePDF_FullBudget(t *testing.T) {
	result, err := GeneratePDF(sampleExportData())
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyLineItems(t *testing.T) {
	data := ExportData{
		BudgetID:    "bdg002",
		ProjectName: "Budget Without Items",
		Status:      StatusDraft,
		AreaSqm:     50,
		CostPerSqm:  1800,
	}

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}
