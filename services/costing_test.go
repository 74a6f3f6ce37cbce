package services

import (
	"errors"
	"math"
	"testing"
)

const costTol = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < costTol
}

// Full worked example: every intermediate of the compounding chain is
// checked, not just the total.
func TestComputeBreakdownFullChain(t *testing.T) {
	in := BudgetInput{
		AreaSqm:    100,
		CostPerSqm: 500,
		Materials: []MaterialItem{
			{Description: "Cement", Quantity: 10, UnitPrice: 50},
		},
		Labor: []LaborItem{
			{Role: "Mason", Headcount: 2, DailyRate: 200, DurationDays: 5},
		},
		LaborBurdenPct:  80,
		AdminMarginPct:  10,
		ContingencyPct:  5,
		ProfitMarginPct: 15,
		TaxPct:          12,
	}

	bd, err := ComputeBreakdown(in)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}

	checks := []struct {
		name   string
		got    float64
		expect float64
	}{
		{"BaseCost", bd.BaseCost, 50000},
		{"MaterialsCost", bd.MaterialsCost, 500},
		{"LaborCost", bd.LaborCost, 3600},
		{"TransportCost", bd.TransportCost, 0},
		{"Subtotal", bd.Subtotal, 62485.5},
		{"Profit", bd.Profit, 9372.825},
		{"TaxAmount", bd.TaxAmount, 8622.999},
		{"TotalCost", bd.TotalCost, 80481.324},
		{"FinalCostPerSqm", bd.FinalCostPerSqm, 804.81324},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.expect) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.expect)
		}
	}
}

func TestComputeBreakdownBaseOnly(t *testing.T) {
	bd, err := ComputeBreakdown(BudgetInput{AreaSqm: 80, CostPerSqm: 1800})
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if !almostEqual(bd.BaseCost, 144000) {
		t.Errorf("BaseCost = %v, want 144000", bd.BaseCost)
	}
	if !almostEqual(bd.TotalCost, 144000) {
		t.Errorf("TotalCost = %v, want 144000 with all percentages zero", bd.TotalCost)
	}
	if !almostEqual(bd.FinalCostPerSqm, 1800) {
		t.Errorf("FinalCostPerSqm = %v, want 1800", bd.FinalCostPerSqm)
	}
}

func TestComputeBreakdownInvalidArea(t *testing.T) {
	for _, area := range []float64{0, -10} {
		_, err := ComputeBreakdown(BudgetInput{AreaSqm: area, CostPerSqm: 500})
		if !errors.Is(err, ErrInvalidArea) {
			t.Errorf("area %v: expected ErrInvalidArea, got %v", area, err)
		}
	}
}

func TestComputeBreakdownTransport(t *testing.T) {
	tests := []struct {
		name      string
		transport TransportParams
		expect    float64
	}{
		{
			name: "round trip fuel plus tolls",
			transport: TransportParams{
				DistanceKm:           30,
				FuelEfficiencyKmPerL: 10,
				FuelPricePerL:        6,
				TripsPerWeek:         5,
				DurationWeeks:        4,
				Tolls:                120,
			},
			// (30*2/10) L per trip * 20 trips * 6/L = 720, plus tolls
			expect: 840,
		},
		{
			name:      "no transport",
			transport: TransportParams{},
			expect:    0,
		},
		{
			name:      "tolls only",
			transport: TransportParams{Tolls: 75},
			expect:    75,
		},
		{
			name: "zero efficiency contributes no fuel cost",
			transport: TransportParams{
				DistanceKm: 50, FuelPricePerL: 6, TripsPerWeek: 3,
				DurationWeeks: 2, Tolls: 40,
			},
			expect: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd, err := ComputeBreakdown(BudgetInput{
				AreaSqm: 100, CostPerSqm: 0, Transport: tt.transport,
			})
			if err != nil {
				t.Fatalf("ComputeBreakdown returned error: %v", err)
			}
			if !almostEqual(bd.TransportCost, tt.expect) {
				t.Errorf("TransportCost = %v, want %v", bd.TransportCost, tt.expect)
			}
		})
	}
}

func TestComputeBreakdownStagesAndExtras(t *testing.T) {
	bd, err := ComputeBreakdown(BudgetInput{
		AreaSqm:    50,
		CostPerSqm: 100,
		Stages: []Stage{
			{Name: "Foundation", PlannedCost: 2000},
			{Name: "Structure", PlannedCost: 3000},
		},
		Extras: []ExtraExpense{
			{Category: "permits", Amount: 400},
			{Category: "insurance", Amount: 600},
		},
	})
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if !almostEqual(bd.StagesCost, 5000) {
		t.Errorf("StagesCost = %v, want 5000", bd.StagesCost)
	}
	if !almostEqual(bd.ExtraExpensesCost, 1000) {
		t.Errorf("ExtraExpensesCost = %v, want 1000", bd.ExtraExpensesCost)
	}
	// 5000 base + 5000 stages + 1000 extras, no percentages
	if !almostEqual(bd.TotalCost, 11000) {
		t.Errorf("TotalCost = %v, want 11000", bd.TotalCost)
	}
}

func TestComputeBreakdownLaborBurden(t *testing.T) {
	bd, err := ComputeBreakdown(BudgetInput{
		AreaSqm:    10,
		CostPerSqm: 0,
		Labor: []LaborItem{
			{Role: "Electrician", Headcount: 3, DailyRate: 150, DurationDays: 10},
		},
		LaborBurdenPct: 40,
	})
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	// 3 * 150 * 10 = 4500 raw, * 1.4 burden
	if !almostEqual(bd.LaborCost, 6300) {
		t.Errorf("LaborCost = %v, want 6300", bd.LaborCost)
	}
}

// Compounding order matters: admin before contingency before profit, tax
// on subtotal plus profit. Flipping any percentage to zero must only ever
// lower the total.
func TestComputeBreakdownMonotonicPercentages(t *testing.T) {
	base := BudgetInput{
		AreaSqm:         100,
		CostPerSqm:      500,
		AdminMarginPct:  10,
		ContingencyPct:  5,
		ProfitMarginPct: 15,
		TaxPct:          12,
	}
	full, err := ComputeBreakdown(base)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}

	variants := []struct {
		name   string
		mutate func(*BudgetInput)
	}{
		{"no admin", func(in *BudgetInput) { in.AdminMarginPct = 0 }},
		{"no contingency", func(in *BudgetInput) { in.ContingencyPct = 0 }},
		{"no profit", func(in *BudgetInput) { in.ProfitMarginPct = 0 }},
		{"no tax", func(in *BudgetInput) { in.TaxPct = 0 }},
	}
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			in := base
			v.mutate(&in)
			bd, err := ComputeBreakdown(in)
			if err != nil {
				t.Fatalf("ComputeBreakdown returned error: %v", err)
			}
			if bd.TotalCost >= full.TotalCost {
				t.Errorf("TotalCost %v not below full-percentage total %v", bd.TotalCost, full.TotalCost)
			}
		})
	}
}

func TestComputeBreakdownDeterministic(t *testing.T) {
	in := BudgetInput{
		AreaSqm:    120,
		CostPerSqm: 2200,
		Materials: []MaterialItem{
			{Description: "Steel", Quantity: 3.5, UnitPrice: 412.73},
		},
		Labor: []LaborItem{
			{Role: "Welder", Headcount: 2, DailyRate: 310, DurationDays: 12.5},
		},
		LaborBurdenPct:  63.2,
		AdminMarginPct:  8.75,
		ContingencyPct:  3.1,
		ProfitMarginPct: 18,
		TaxPct:          11.25,
	}

	first, err := ComputeBreakdown(in)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ComputeBreakdown(in)
		if err != nil {
			t.Fatalf("ComputeBreakdown returned error: %v", err)
		}
		if again != first {
			t.Fatalf("run %d produced %+v, first run %+v", i, again, first)
		}
	}
}
