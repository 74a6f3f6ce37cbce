// Package collections creates and seeds the PocketBase collections backing
// the budgeting engine.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures every collection the engine
// needs: projects, budgets with their four line-item collections, the
// provisioned project manifest collections and the rate settings.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.TextField{Name: "technical_lead", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"planned", "in_progress", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "source_budget", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	budgets := ensureCollection(app, "budgets", func(c *core.Collection) {
		// Drafts may be incomplete; approval is the completeness gate.
		c.Fields.Add(&core.TextField{Name: "project_name", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "construction_type",
			Required:  false,
			Values:    []string{"residential", "commercial", "industrial", "renovation", "infrastructure"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "area_sqm", Required: false})
		c.Fields.Add(&core.NumberField{Name: "cost_per_sqm", Required: false})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.TextField{Name: "technical_lead", Required: false})
		c.Fields.Add(&core.TextField{Name: "issue_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "technical_notes", Required: false})

		c.Fields.Add(&core.NumberField{Name: "labor_burden_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "admin_margin_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "contingency_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit_margin_pct", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax_pct", Required: false})

		// Transport parameters (at most one set per budget).
		c.Fields.Add(&core.NumberField{Name: "transport_distance_km", Required: false})
		c.Fields.Add(&core.NumberField{Name: "transport_fuel_efficiency", Required: false})
		c.Fields.Add(&core.NumberField{Name: "transport_fuel_price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "transport_trips_per_week", Required: false})
		c.Fields.Add(&core.NumberField{Name: "transport_duration_weeks", Required: false})
		c.Fields.Add(&core.NumberField{Name: "transport_tolls", Required: false})

		// Derived breakdown, recomputed on every accepted mutation.
		c.Fields.Add(&core.NumberField{Name: "base_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "materials_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "transport_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "stages_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "extra_expenses_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "subtotal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "final_cost_per_sqm", Required: false})

		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "approved", "revision"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "linked_project",
			Required:     false,
			CollectionId: projects.Id,
			MaxSelect:    1,
		})
		// Self-reference to the approved budget a revision was cloned from.
		c.Fields.Add(&core.TextField{Name: "revision_of", Required: false})

		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	budgetStages := ensureCollection(app, "budget_stages", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "budget",
			Required:      true,
			CollectionId:  budgets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "planned_cost", Required: false})
		c.Fields.Add(&core.TextField{Name: "start_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "end_date", Required: false})
	})

	ensureCollection(app, "material_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "budget",
			Required:      true,
			CollectionId:  budgets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
		c.Fields.Add(&core.TextField{Name: "supplier", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "stage",
			Required:     false,
			CollectionId: budgetStages.Id,
			MaxSelect:    1,
		})
	})

	ensureCollection(app, "labor_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "budget",
			Required:      true,
			CollectionId:  budgets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "role", Required: true})
		c.Fields.Add(&core.NumberField{Name: "headcount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "daily_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "duration_days", Required: false})
	})

	ensureCollection(app, "extra_expenses", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "budget",
			Required:      true,
			CollectionId:  budgets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "category", Required: true})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
	})

	projectStages := ensureCollection(app, "project_stages", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "planned_cost", Required: false})
	})

	ensureCollection(app, "project_materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
		c.Fields.Add(&core.TextField{Name: "supplier", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity_used", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "stage",
			Required:     false,
			CollectionId: projectStages.Id,
			MaxSelect:    1,
		})
	})

	ensureCollection(app, "rate_settings", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "construction_type",
			Required:  true,
			Values:    []string{"residential", "commercial", "industrial", "renovation", "infrastructure"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "cost_per_sqm", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it
// does, the existing collection is returned. Otherwise a new base
// collection is created, the addFields callback populates its fields, and
// the collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
