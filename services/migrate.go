package services

import (
	"fmt"
	"log"
	"math"

	"github.com/pocketbase/pocketbase/core"
)

// RecomputeStoredBreakdowns re-runs the cost aggregator over every stored
// budget and repairs any record whose breakdown no longer matches its
// input fields (e.g. rows written by an older formula). Safe to call on
// every startup -- budgets that already match are not rewritten.
func RecomputeStoredBreakdowns(app core.App) error {
	budgets, err := app.FindRecordsByFilter("budgets", "id != ''", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate: could not query budgets: %w", err)
	}

	repaired := 0
	for _, budget := range budgets {
		in, err := BudgetInputFromRecord(app, budget)
		if err != nil {
			log.Printf("migrate: could not load items for budget %s: %v\n", budget.Id, err)
			continue
		}

		bd, err := ComputeBreakdown(in)
		if err != nil {
			log.Printf("migrate: budget %s does not aggregate: %v\n", budget.Id, err)
			continue
		}

		stored := BreakdownFromRecord(budget)
		if breakdownsMatch(stored, bd) {
			continue
		}

		applyBreakdown(budget, bd)
		if err := app.Save(budget); err != nil {
			log.Printf("migrate: could not save budget %s: %v\n", budget.Id, err)
			continue
		}
		repaired++
	}

	if repaired > 0 {
		log.Printf("migrate: repaired %d drifted breakdown(s)\n", repaired)
	}
	return nil
}

func breakdownsMatch(a, b CostBreakdown) bool {
	const tol = 1e-6
	return math.Abs(a.TotalCost-b.TotalCost) < tol &&
		math.Abs(a.Subtotal-b.Subtotal) < tol &&
		math.Abs(a.FinalCostPerSqm-b.FinalCostPerSqm) < tol
}
