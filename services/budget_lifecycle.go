package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// BudgetParams carries the header fields for creating a budget draft.
// CostPerSqm nil means "use the rate table default for the construction
// type".
type BudgetParams struct {
	ProjectName      string
	ConstructionType string
	AreaSqm          float64
	CostPerSqm       *float64
	Location         string
	TechnicalLead    string
	IssueDate        string
	TechnicalNotes   string
	LaborBurdenPct   float64
	AdminMarginPct   float64
	ContingencyPct   float64
	ProfitMarginPct  float64
	TaxPct           float64
}

// BudgetPatch is a partial header update; nil fields are left untouched.
type BudgetPatch struct {
	ProjectName      *string
	ConstructionType *string
	AreaSqm          *float64
	CostPerSqm       *float64
	Location         *string
	TechnicalLead    *string
	IssueDate        *string
	TechnicalNotes   *string
	LaborBurdenPct   *float64
	AdminMarginPct   *float64
	ContingencyPct   *float64
	ProfitMarginPct  *float64
	TaxPct           *float64
}

// CreateBudget validates the params, resolves the default cost per sqm
// from the injected rate table when no override is given, creates the
// budget in draft status and seeds its breakdown with one aggregator run.
func CreateBudget(app core.App, rates RateTable, p BudgetParams) (*core.Record, error) {
	costPerSqm := 0.0
	if p.CostPerSqm != nil {
		costPerSqm = *p.CostPerSqm
	} else if p.ConstructionType != "" {
		rate, err := rates.Lookup(p.ConstructionType)
		if err != nil {
			return nil, err
		}
		costPerSqm = rate
	}

	fields := BudgetFields{
		ProjectName:      p.ProjectName,
		ConstructionType: p.ConstructionType,
		AreaSqm:          p.AreaSqm,
		CostPerSqm:       costPerSqm,
		LaborBurdenPct:   p.LaborBurdenPct,
		AdminMarginPct:   p.AdminMarginPct,
		ContingencyPct:   p.ContingencyPct,
		ProfitMarginPct:  p.ProfitMarginPct,
		TaxPct:           p.TaxPct,
	}
	if err := ValidateBudgetFields(fields); err != nil {
		return nil, err
	}

	var budget *core.Record
	err := app.RunInTransaction(func(tx core.App) error {
		col, err := tx.FindCollectionByNameOrId("budgets")
		if err != nil {
			return fmt.Errorf("find budgets collection: %w", err)
		}

		budget = core.NewRecord(col)
		budget.Set("project_name", p.ProjectName)
		budget.Set("construction_type", p.ConstructionType)
		budget.Set("area_sqm", p.AreaSqm)
		budget.Set("cost_per_sqm", costPerSqm)
		budget.Set("location", p.Location)
		budget.Set("technical_lead", p.TechnicalLead)
		budget.Set("issue_date", p.IssueDate)
		budget.Set("technical_notes", p.TechnicalNotes)
		budget.Set("labor_burden_pct", p.LaborBurdenPct)
		budget.Set("admin_margin_pct", p.AdminMarginPct)
		budget.Set("contingency_pct", p.ContingencyPct)
		budget.Set("profit_margin_pct", p.ProfitMarginPct)
		budget.Set("tax_pct", p.TaxPct)
		budget.Set("status", StatusDraft)

		if err := RecomputeBreakdown(tx, budget); err != nil {
			return err
		}
		return tx.Save(budget)
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// LoadBudget fetches a budget record by id.
func LoadBudget(app core.App, budgetID string) (*core.Record, error) {
	budget, err := app.FindRecordById("budgets", budgetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBudgetNotFound, budgetID)
	}
	return budget, nil
}

// MutateBudget runs fn against the budget inside one transaction, then
// recomputes the breakdown and saves, so no reader ever observes a stored
// breakdown that does not match the stored fields. Approved budgets are
// rejected before fn runs.
func MutateBudget(app core.App, budgetID string, fn func(tx core.App, budget *core.Record) error) (*core.Record, error) {
	var budget *core.Record
	err := app.RunInTransaction(func(tx core.App) error {
		var err error
		budget, err = LoadBudget(tx, budgetID)
		if err != nil {
			return err
		}
		if budget.GetString("status") == StatusApproved {
			return ErrImmutableBudget
		}
		if err := fn(tx, budget); err != nil {
			return err
		}
		if err := RecomputeBreakdown(tx, budget); err != nil {
			return err
		}
		if err := tx.Save(budget); err != nil {
			return fmt.Errorf("save budget %s: %w", budgetID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// UpdateBudget merges a partial header update, revalidates the resulting
// fields and recomputes the breakdown. Legal only in draft or revision.
func UpdateBudget(app core.App, budgetID string, patch BudgetPatch) (*core.Record, error) {
	return MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		merged := budgetFieldsFromRecord(budget)

		if patch.ProjectName != nil {
			merged.ProjectName = *patch.ProjectName
		}
		if patch.ConstructionType != nil {
			merged.ConstructionType = *patch.ConstructionType
		}
		if patch.AreaSqm != nil {
			merged.AreaSqm = *patch.AreaSqm
		}
		if patch.CostPerSqm != nil {
			merged.CostPerSqm = *patch.CostPerSqm
		}
		if patch.Location != nil {
			merged.Location = *patch.Location
		}
		if patch.TechnicalLead != nil {
			merged.TechnicalLead = *patch.TechnicalLead
		}
		if patch.IssueDate != nil {
			merged.IssueDate = *patch.IssueDate
		}
		if patch.TechnicalNotes != nil {
			merged.TechnicalNotes = *patch.TechnicalNotes
		}
		if patch.LaborBurdenPct != nil {
			merged.LaborBurdenPct = *patch.LaborBurdenPct
		}
		if patch.AdminMarginPct != nil {
			merged.AdminMarginPct = *patch.AdminMarginPct
		}
		if patch.ContingencyPct != nil {
			merged.ContingencyPct = *patch.ContingencyPct
		}
		if patch.ProfitMarginPct != nil {
			merged.ProfitMarginPct = *patch.ProfitMarginPct
		}
		if patch.TaxPct != nil {
			merged.TaxPct = *patch.TaxPct
		}

		if err := ValidateBudgetFields(merged); err != nil {
			return err
		}

		budget.Set("project_name", merged.ProjectName)
		budget.Set("construction_type", merged.ConstructionType)
		budget.Set("area_sqm", merged.AreaSqm)
		budget.Set("cost_per_sqm", merged.CostPerSqm)
		budget.Set("location", merged.Location)
		budget.Set("technical_lead", merged.TechnicalLead)
		budget.Set("issue_date", merged.IssueDate)
		budget.Set("technical_notes", merged.TechnicalNotes)
		budget.Set("labor_burden_pct", merged.LaborBurdenPct)
		budget.Set("admin_margin_pct", merged.AdminMarginPct)
		budget.Set("contingency_pct", merged.ContingencyPct)
		budget.Set("profit_margin_pct", merged.ProfitMarginPct)
		budget.Set("tax_pct", merged.TaxPct)
		return nil
	})
}

// UpdateTransport replaces the budget's transport parameters.
func UpdateTransport(app core.App, budgetID string, t TransportParams) (*core.Record, error) {
	if err := ValidateTransport(t); err != nil {
		return nil, err
	}
	return MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		budget.Set("transport_distance_km", t.DistanceKm)
		budget.Set("transport_fuel_efficiency", t.FuelEfficiencyKmPerL)
		budget.Set("transport_fuel_price", t.FuelPricePerL)
		budget.Set("transport_trips_per_week", t.TripsPerWeek)
		budget.Set("transport_duration_weeks", t.DurationWeeks)
		budget.Set("transport_tolls", t.Tolls)
		return nil
	})
}

// ApproveBudget transitions draft or revision to approved, after checking
// the required fields are present. The breakdown is whatever was last
// computed; approval changes no fields.
func ApproveBudget(app core.App, budgetID string) (*core.Record, error) {
	var budget *core.Record
	err := app.RunInTransaction(func(tx core.App) error {
		var err error
		budget, err = LoadBudget(tx, budgetID)
		if err != nil {
			return err
		}

		status := budget.GetString("status")
		if status != StatusDraft && status != StatusRevision {
			return fmt.Errorf("%w: cannot approve from %q", ErrInvalidTransition, status)
		}

		missing := approvalMissing(
			budget.GetString("project_name"),
			budget.GetString("construction_type"),
			budget.GetFloat("area_sqm"),
		)
		if len(missing) > 0 {
			return &IncompleteBudgetError{Missing: missing}
		}

		budget.Set("status", StatusApproved)
		return tx.Save(budget)
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// budgetHeaderFields are the fields copied verbatim when a revision is
// cloned from an approved budget.
var budgetHeaderFields = []string{
	"project_name", "construction_type", "area_sqm", "cost_per_sqm",
	"location", "technical_lead", "issue_date", "technical_notes",
	"labor_burden_pct", "admin_margin_pct", "contingency_pct",
	"profit_margin_pct", "tax_pct",
	"transport_distance_km", "transport_fuel_efficiency",
	"transport_fuel_price", "transport_trips_per_week",
	"transport_duration_weeks", "transport_tolls",
	"base_cost", "materials_cost", "labor_cost", "transport_cost",
	"stages_cost", "extra_expenses_cost", "subtotal", "profit",
	"tax_amount", "total_cost", "final_cost_per_sqm",
	"linked_project",
}

// CreateRevision clones an approved budget (header, breakdown and every
// line item) into a new mutable record with status revision. The approved
// original is kept untouched as the audit snapshot, so callers can diff
// the revision against it. The linked project, if any, carries over: a
// budget family provisions at most one project.
func CreateRevision(app core.App, budgetID string) (*core.Record, error) {
	var clone *core.Record
	err := app.RunInTransaction(func(tx core.App) error {
		original, err := LoadBudget(tx, budgetID)
		if err != nil {
			return err
		}
		if original.GetString("status") != StatusApproved {
			return fmt.Errorf("%w: only approved budgets can be revised", ErrBudgetNotApproved)
		}

		col, err := tx.FindCollectionByNameOrId("budgets")
		if err != nil {
			return fmt.Errorf("find budgets collection: %w", err)
		}

		clone = core.NewRecord(col)
		for _, f := range budgetHeaderFields {
			clone.Set(f, original.Get(f))
		}
		clone.Set("status", StatusRevision)
		clone.Set("revision_of", original.Id)
		if err := tx.Save(clone); err != nil {
			return fmt.Errorf("save revision: %w", err)
		}

		stageIDMap, err := cloneStages(tx, original.Id, clone.Id)
		if err != nil {
			return err
		}
		if err := cloneMaterialItems(tx, original.Id, clone.Id, stageIDMap); err != nil {
			return err
		}
		if err := cloneChildRecords(tx, "labor_items", original.Id, clone.Id,
			[]string{"sort_order", "role", "headcount", "daily_rate", "duration_days"}); err != nil {
			return err
		}
		return cloneChildRecords(tx, "extra_expenses", original.Id, clone.Id,
			[]string{"sort_order", "category", "amount", "notes"})
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

// cloneStages copies the budget's stages to the clone and returns the
// old-to-new stage id mapping so material items can be re-pointed.
func cloneStages(tx core.App, fromBudgetID, toBudgetID string) (map[string]string, error) {
	stages, err := childRecords(tx, "budget_stages", fromBudgetID)
	if err != nil {
		return nil, err
	}
	col, err := tx.FindCollectionByNameOrId("budget_stages")
	if err != nil {
		return nil, fmt.Errorf("find budget_stages collection: %w", err)
	}

	idMap := make(map[string]string, len(stages))
	for _, s := range stages {
		c := core.NewRecord(col)
		c.Set("budget", toBudgetID)
		for _, f := range []string{"sort_order", "name", "description", "planned_cost", "start_date", "end_date"} {
			c.Set(f, s.Get(f))
		}
		if err := tx.Save(c); err != nil {
			return nil, fmt.Errorf("clone stage %s: %w", s.Id, err)
		}
		idMap[s.Id] = c.Id
	}
	return idMap, nil
}

func cloneMaterialItems(tx core.App, fromBudgetID, toBudgetID string, stageIDMap map[string]string) error {
	items, err := childRecords(tx, "material_items", fromBudgetID)
	if err != nil {
		return err
	}
	col, err := tx.FindCollectionByNameOrId("material_items")
	if err != nil {
		return fmt.Errorf("find material_items collection: %w", err)
	}

	for _, m := range items {
		c := core.NewRecord(col)
		c.Set("budget", toBudgetID)
		for _, f := range []string{"sort_order", "description", "unit", "quantity", "unit_price", "supplier"} {
			c.Set(f, m.Get(f))
		}
		if oldStage := m.GetString("stage"); oldStage != "" {
			c.Set("stage", stageIDMap[oldStage])
		}
		if err := tx.Save(c); err != nil {
			return fmt.Errorf("clone material item %s: %w", m.Id, err)
		}
	}
	return nil
}

func cloneChildRecords(tx core.App, collection, fromBudgetID, toBudgetID string, fields []string) error {
	records, err := childRecords(tx, collection, fromBudgetID)
	if err != nil {
		return err
	}
	col, err := tx.FindCollectionByNameOrId(collection)
	if err != nil {
		return fmt.Errorf("find %s collection: %w", collection, err)
	}

	for _, r := range records {
		c := core.NewRecord(col)
		c.Set("budget", toBudgetID)
		for _, f := range fields {
			c.Set(f, r.Get(f))
		}
		if err := tx.Save(c); err != nil {
			return fmt.Errorf("clone %s record %s: %w", collection, r.Id, err)
		}
	}
	return nil
}

// DeleteBudget removes a budget and (via cascade) its line items, from any
// status. A linked project is left alone; past provisioning the two have
// independent lifecycles.
func DeleteBudget(app core.App, budgetID string) error {
	budget, err := LoadBudget(app, budgetID)
	if err != nil {
		return err
	}
	if err := app.Delete(budget); err != nil {
		return fmt.Errorf("delete budget %s: %w", budgetID, err)
	}
	return nil
}

// childRecords loads a budget's child records of one collection, ordered
// by insertion.
func childRecords(app core.App, collection, budgetID string) ([]*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		collection,
		"budget = {:budget}",
		"sort_order",
		0, 0,
		map[string]any{"budget": budgetID},
	)
	if err != nil {
		return nil, fmt.Errorf("load %s for budget %s: %w", collection, budgetID, err)
	}
	return records, nil
}

// nextSortOrder returns the next insertion position for a budget's child
// collection.
func nextSortOrder(app core.App, collection, budgetID string) (int, error) {
	records, err := childRecords(app, collection, budgetID)
	if err != nil {
		return 0, err
	}
	return len(records) + 1, nil
}

func budgetFieldsFromRecord(budget *core.Record) BudgetFields {
	return BudgetFields{
		ProjectName:      budget.GetString("project_name"),
		ConstructionType: budget.GetString("construction_type"),
		AreaSqm:          budget.GetFloat("area_sqm"),
		CostPerSqm:       budget.GetFloat("cost_per_sqm"),
		Location:         budget.GetString("location"),
		TechnicalLead:    budget.GetString("technical_lead"),
		IssueDate:        budget.GetString("issue_date"),
		TechnicalNotes:   budget.GetString("technical_notes"),
		LaborBurdenPct:   budget.GetFloat("labor_burden_pct"),
		AdminMarginPct:   budget.GetFloat("admin_margin_pct"),
		ContingencyPct:   budget.GetFloat("contingency_pct"),
		ProfitMarginPct:  budget.GetFloat("profit_margin_pct"),
		TaxPct:           budget.GetFloat("tax_pct"),
	}
}

// TransportFromRecord reads the transport parameters off a budget record.
func TransportFromRecord(budget *core.Record) TransportParams {
	return TransportParams{
		DistanceKm:           budget.GetFloat("transport_distance_km"),
		FuelEfficiencyKmPerL: budget.GetFloat("transport_fuel_efficiency"),
		FuelPricePerL:        budget.GetFloat("transport_fuel_price"),
		TripsPerWeek:         budget.GetFloat("transport_trips_per_week"),
		DurationWeeks:        budget.GetFloat("transport_duration_weeks"),
		Tolls:                budget.GetFloat("transport_tolls"),
	}
}

// BudgetInputFromRecord assembles the aggregator input from a budget
// record and its stored line items.
func BudgetInputFromRecord(app core.App, budget *core.Record) (BudgetInput, error) {
	in := BudgetInput{
		AreaSqm:         budget.GetFloat("area_sqm"),
		CostPerSqm:      budget.GetFloat("cost_per_sqm"),
		Transport:       TransportFromRecord(budget),
		LaborBurdenPct:  budget.GetFloat("labor_burden_pct"),
		AdminMarginPct:  budget.GetFloat("admin_margin_pct"),
		ContingencyPct:  budget.GetFloat("contingency_pct"),
		ProfitMarginPct: budget.GetFloat("profit_margin_pct"),
		TaxPct:          budget.GetFloat("tax_pct"),
	}

	materials, err := childRecords(app, "material_items", budget.Id)
	if err != nil {
		return in, err
	}
	for _, m := range materials {
		in.Materials = append(in.Materials, MaterialItem{
			ID:          m.Id,
			Description: m.GetString("description"),
			Unit:        m.GetString("unit"),
			Quantity:    m.GetFloat("quantity"),
			UnitPrice:   m.GetFloat("unit_price"),
			Supplier:    m.GetString("supplier"),
			StageID:     m.GetString("stage"),
		})
	}

	labor, err := childRecords(app, "labor_items", budget.Id)
	if err != nil {
		return in, err
	}
	for _, l := range labor {
		in.Labor = append(in.Labor, LaborItem{
			ID:           l.Id,
			Role:         l.GetString("role"),
			Headcount:    l.GetFloat("headcount"),
			DailyRate:    l.GetFloat("daily_rate"),
			DurationDays: l.GetFloat("duration_days"),
		})
	}

	stages, err := childRecords(app, "budget_stages", budget.Id)
	if err != nil {
		return in, err
	}
	for _, s := range stages {
		in.Stages = append(in.Stages, Stage{
			ID:          s.Id,
			Name:        s.GetString("name"),
			Description: s.GetString("description"),
			PlannedCost: s.GetFloat("planned_cost"),
			Order:       s.GetInt("sort_order"),
			StartDate:   s.GetString("start_date"),
			EndDate:     s.GetString("end_date"),
		})
	}

	extras, err := childRecords(app, "extra_expenses", budget.Id)
	if err != nil {
		return in, err
	}
	for _, x := range extras {
		in.Extras = append(in.Extras, ExtraExpense{
			ID:       x.Id,
			Category: x.GetString("category"),
			Amount:   x.GetFloat("amount"),
			Notes:    x.GetString("notes"),
		})
	}

	return in, nil
}

// RecomputeBreakdown runs the aggregator over the budget's current fields
// and writes the result onto the record. The caller saves.
func RecomputeBreakdown(app core.App, budget *core.Record) error {
	in, err := BudgetInputFromRecord(app, budget)
	if err != nil {
		return err
	}
	bd, err := ComputeBreakdown(in)
	if err != nil {
		return err
	}
	applyBreakdown(budget, bd)
	return nil
}

func applyBreakdown(budget *core.Record, bd CostBreakdown) {
	budget.Set("base_cost", bd.BaseCost)
	budget.Set("materials_cost", bd.MaterialsCost)
	budget.Set("labor_cost", bd.LaborCost)
	budget.Set("transport_cost", bd.TransportCost)
	budget.Set("stages_cost", bd.StagesCost)
	budget.Set("extra_expenses_cost", bd.ExtraExpensesCost)
	budget.Set("subtotal", bd.Subtotal)
	budget.Set("profit", bd.Profit)
	budget.Set("tax_amount", bd.TaxAmount)
	budget.Set("total_cost", bd.TotalCost)
	budget.Set("final_cost_per_sqm", bd.FinalCostPerSqm)
}

// BreakdownFromRecord reads the stored breakdown off a budget record.
func BreakdownFromRecord(budget *core.Record) CostBreakdown {
	return CostBreakdown{
		BaseCost:          budget.GetFloat("base_cost"),
		MaterialsCost:     budget.GetFloat("materials_cost"),
		LaborCost:         budget.GetFloat("labor_cost"),
		TransportCost:     budget.GetFloat("transport_cost"),
		StagesCost:        budget.GetFloat("stages_cost"),
		ExtraExpensesCost: budget.GetFloat("extra_expenses_cost"),
		Subtotal:          budget.GetFloat("subtotal"),
		Profit:            budget.GetFloat("profit"),
		TaxAmount:         budget.GetFloat("tax_amount"),
		TotalCost:         budget.GetFloat("total_cost"),
		FinalCostPerSqm:   budget.GetFloat("final_cost_per_sqm"),
	}
}
