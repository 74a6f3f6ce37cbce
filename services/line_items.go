package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// Line-item mutations. Each runs inside MutateBudget, so the guard against
// editing approved budgets and the synchronous breakdown recompute apply
// uniformly.

// AddMaterialItem appends a material line to the budget.
func AddMaterialItem(app core.App, budgetID string, m MaterialItem) (*core.Record, error) {
	if err := ValidateMaterialItem(m); err != nil {
		return nil, err
	}
	var item *core.Record
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		col, err := tx.FindCollectionByNameOrId("material_items")
		if err != nil {
			return fmt.Errorf("find material_items collection: %w", err)
		}
		order, err := nextSortOrder(tx, "material_items", budget.Id)
		if err != nil {
			return err
		}
		if m.StageID != "" {
			if err := assertStageOfBudget(tx, m.StageID, budget.Id); err != nil {
				return err
			}
		}

		item = core.NewRecord(col)
		item.Set("budget", budget.Id)
		item.Set("sort_order", order)
		setMaterialFields(item, m)
		return tx.Save(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMaterialItem replaces the fields of an existing material line.
func UpdateMaterialItem(app core.App, budgetID, itemID string, m MaterialItem) (*core.Record, error) {
	if err := ValidateMaterialItem(m); err != nil {
		return nil, err
	}
	var item *core.Record
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		var err error
		item, err = loadChildItem(tx, "material_items", itemID, budget.Id)
		if err != nil {
			return err
		}
		if m.StageID != "" {
			if err := assertStageOfBudget(tx, m.StageID, budget.Id); err != nil {
				return err
			}
		}
		setMaterialFields(item, m)
		return tx.Save(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMaterialItem removes a material line.
func DeleteMaterialItem(app core.App, budgetID, itemID string) error {
	return deleteChildItem(app, "material_items", budgetID, itemID)
}

// AddLaborItem appends a labor line to the budget.
func AddLaborItem(app core.App, budgetID string, l LaborItem) (*core.Record, error) {
	if err := ValidateLaborItem(l); err != nil {
		return nil, err
	}
	var item *core.Record
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		col, err := tx.FindCollectionByNameOrId("labor_items")
		if err != nil {
			return fmt.Errorf("find labor_items collection: %w", err)
		}
		order, err := nextSortOrder(tx, "labor_items", budget.Id)
		if err != nil {
			return err
		}

		item = core.NewRecord(col)
		item.Set("budget", budget.Id)
		item.Set("sort_order", order)
		setLaborFields(item, l)
		return tx.Save(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateLaborItem replaces the fields of an existing labor line.
func UpdateLaborItem(app core.App, budgetID, itemID string, l LaborItem) (*core.Record, error) {
	if err := ValidateLaborItem(l); err != nil {
		return nil, err
	}
	var item *core.Record
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		var err error
		item, err = loadChildItem(tx, "labor_items", itemID, budget.Id)
		if err != nil {
			return err
		}
		setLaborFields(item, l)
		return tx.Save(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteLaborItem removes a labor line.
func DeleteLaborItem(app core.App, budgetID, itemID string) error {
	return deleteChildItem(app, "labor_items", budgetID, itemID)
}

// AddStage appends a stage to the budget.
func AddStage(app core.App, budgetID string, s Stage) (*core.Record, error) {
	if err := ValidateStage(s); err != nil {
		return nil, err
	}
	var stage *core.Record
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		col, err := tx.FindCollectionByNameOrId("budget_stages")
		if err != nil {
			return fmt.Errorf("find budget_stages collection: %w", err)
		}
		order := s.Order
		if order == 0 {
			order, err = nextSortOrder(tx, "budget_stages", budget.Id)
			if err != nil {
				return err
			}
		}

		stage = core.NewRecord(col)
		stage.Set("budget", budget.Id)
		stage.Set("sort_order", order)
		setStageFields(stage, s)
		return tx.Save(stage)
	})
	if err != nil {
		return nil, err
	}
	return stage, nil
}

// UpdateStage replaces the fields of an existing stage.
func UpdateStage(app core.App, budgetID, stageID string, s Stage) (*core.Record, error) {
	if err := ValidateStage(s); err != nil {
		return nil, err
	}
	var stage *core.Record
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		var err error
		stage, err = loadChildItem(tx, "budget_stages", stageID, budget.Id)
		if err != nil {
			return err
		}
		if s.Order != 0 {
			stage.Set("sort_order", s.Order)
		}
		setStageFields(stage, s)
		return tx.Save(stage)
	})
	if err != nil {
		return nil, err
	}
	return stage, nil
}

// DeleteStage removes a stage. Material items pointing at it fall back to
// unassociated.
func DeleteStage(app core.App, budgetID, stageID string) error {
	return deleteChildItem(app, "budget_stages", budgetID, stageID)
}

// AddExtraExpense appends a one-off expense to the budget.
func AddExtraExpense(app core.App, budgetID string, x ExtraExpense) (*core.Record, error) {
	if err := ValidateExtraExpense(x); err != nil {
		return nil, err
	}
	var expense *core.Record
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		col, err := tx.FindCollectionByNameOrId("extra_expenses")
		if err != nil {
			return fmt.Errorf("find extra_expenses collection: %w", err)
		}
		order, err := nextSortOrder(tx, "extra_expenses", budget.Id)
		if err != nil {
			return err
		}

		expense = core.NewRecord(col)
		expense.Set("budget", budget.Id)
		expense.Set("sort_order", order)
		setExtraExpenseFields(expense, x)
		return tx.Save(expense)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExtraExpense replaces the fields of an existing expense line.
func UpdateExtraExpense(app core.App, budgetID, expenseID string, x ExtraExpense) (*core.Record, error) {
	if err := ValidateExtraExpense(x); err != nil {
		return nil, err
	}
	var expense *core.Record
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		var err error
		expense, err = loadChildItem(tx, "extra_expenses", expenseID, budget.Id)
		if err != nil {
			return err
		}
		setExtraExpenseFields(expense, x)
		return tx.Save(expense)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExtraExpense removes an expense line.
func DeleteExtraExpense(app core.App, budgetID, expenseID string) error {
	return deleteChildItem(app, "extra_expenses", budgetID, expenseID)
}

func setMaterialFields(r *core.Record, m MaterialItem) {
	r.Set("description", m.Description)
	r.Set("unit", m.Unit)
	r.Set("quantity", m.Quantity)
	r.Set("unit_price", m.UnitPrice)
	r.Set("supplier", m.Supplier)
	r.Set("stage", m.StageID)
}

func setLaborFields(r *core.Record, l LaborItem) {
	r.Set("role", l.Role)
	r.Set("headcount", l.Headcount)
	r.Set("daily_rate", l.DailyRate)
	r.Set("duration_days", l.DurationDays)
}

func setStageFields(r *core.Record, s Stage) {
	r.Set("name", s.Name)
	r.Set("description", s.Description)
	r.Set("planned_cost", s.PlannedCost)
	r.Set("start_date", s.StartDate)
	r.Set("end_date", s.EndDate)
}

func setExtraExpenseFields(r *core.Record, x ExtraExpense) {
	r.Set("category", x.Category)
	r.Set("amount", x.Amount)
	r.Set("notes", x.Notes)
}

// loadChildItem fetches a line item and checks it belongs to the budget.
func loadChildItem(app core.App, collection, itemID, budgetID string) (*core.Record, error) {
	item, err := app.FindRecordById(collection, itemID)
	if err != nil || item.GetString("budget") != budgetID {
		return nil, fmt.Errorf("%w: %s item %s", ErrBudgetNotFound, collection, itemID)
	}
	return item, nil
}

func deleteChildItem(app core.App, collection, budgetID, itemID string) error {
	_, err := MutateBudget(app, budgetID, func(tx core.App, budget *core.Record) error {
		item, err := loadChildItem(tx, collection, itemID, budget.Id)
		if err != nil {
			return err
		}
		return tx.Delete(item)
	})
	return err
}

func assertStageOfBudget(app core.App, stageID, budgetID string) error {
	_, err := loadChildItem(app, "budget_stages", stageID, budgetID)
	return err
}
