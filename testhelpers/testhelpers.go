// Package testhelpers provides utilities for testing the PocketBase-backed
// budgeting engine.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test
// finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestBudget creates a draft budget record with sane header defaults.
// Records are written directly, bypassing the lifecycle services, so this
// package stays import-cycle free; tests that need a seeded breakdown call
// the recompute themselves.
func CreateTestBudget(t *testing.T, app *pocketbase.PocketBase, projectName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("budgets")
	if err != nil {
		t.Fatalf("failed to find budgets collection: %v", err)
	}

	budget := core.NewRecord(col)
	budget.Set("project_name", projectName)
	budget.Set("construction_type", "residential")
	budget.Set("area_sqm", 100)
	budget.Set("cost_per_sqm", 1800)
	budget.Set("location", "Belo Horizonte")
	budget.Set("technical_lead", "Eng. Souza")
	budget.Set("issue_date", "2026-01-15")
	budget.Set("status", "draft")

	if err := app.Save(budget); err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// AddTestMaterial appends a material line record to a budget.
func AddTestMaterial(t *testing.T, app *pocketbase.PocketBase, budgetID, description string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_items")
	if err != nil {
		t.Fatalf("failed to find material_items collection: %v", err)
	}

	item := core.NewRecord(col)
	item.Set("budget", budgetID)
	item.Set("sort_order", 1)
	item.Set("description", description)
	item.Set("unit", "un")
	item.Set("quantity", qty)
	item.Set("unit_price", unitPrice)

	if err := app.Save(item); err != nil {
		t.Fatalf("failed to add test material: %v", err)
	}
	return item
}

// AddTestLabor appends a labor line record to a budget.
func AddTestLabor(t *testing.T, app *pocketbase.PocketBase, budgetID, role string, headcount, dailyRate, days float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("labor_items")
	if err != nil {
		t.Fatalf("failed to find labor_items collection: %v", err)
	}

	item := core.NewRecord(col)
	item.Set("budget", budgetID)
	item.Set("sort_order", 1)
	item.Set("role", role)
	item.Set("headcount", headcount)
	item.Set("daily_rate", dailyRate)
	item.Set("duration_days", days)

	if err := app.Save(item); err != nil {
		t.Fatalf("failed to add test labor item: %v", err)
	}
	return item
}

// AddTestStage appends a stage record to a budget.
func AddTestStage(t *testing.T, app *pocketbase.PocketBase, budgetID, name string, plannedCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("budget_stages")
	if err != nil {
		t.Fatalf("failed to find budget_stages collection: %v", err)
	}

	stage := core.NewRecord(col)
	stage.Set("budget", budgetID)
	stage.Set("sort_order", 1)
	stage.Set("name", name)
	stage.Set("planned_cost", plannedCost)

	if err := app.Save(stage); err != nil {
		t.Fatalf("failed to add test stage: %v", err)
	}
	return stage
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
