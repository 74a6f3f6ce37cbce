package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// Line-item handlers. Each mutation recomputes the breakdown inside the
// service call, so the response always carries a breakdown consistent
// with the stored line items.

// HandleMaterialAdd appends a material line to the budget.
func HandleMaterialAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		var m services.MaterialItem
		if err := e.BindBody(&m); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if _, err := services.AddMaterialItem(app, budgetID, m); err != nil {
			return writeServiceError(e, "material_add", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusCreated)
	}
}

// HandleMaterialUpdate replaces the fields of a material line.
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		var m services.MaterialItem
		if err := e.BindBody(&m); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if _, err := services.UpdateMaterialItem(app, budgetID, itemID, m); err != nil {
			return writeServiceError(e, "material_update", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusOK)
	}
}

// HandleMaterialDelete removes a material line.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		if err := services.DeleteMaterialItem(app, budgetID, itemID); err != nil {
			return writeServiceError(e, "material_delete", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusOK)
	}
}

// HandleLaborAdd appends a labor line to the budget.
func HandleLaborAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		var l services.LaborItem
		if err := e.BindBody(&l); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if _, err := services.AddLaborItem(app, budgetID, l); err != nil {
			return writeServiceError(e, "labor_add", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusCreated)
	}
}

// HandleLaborUpdate replaces the fields of a labor line.
func HandleLaborUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		var l services.LaborItem
		if err := e.BindBody(&l); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if _, err := services.UpdateLaborItem(app, budgetID, itemID, l); err != nil {
			return writeServiceError(e, "labor_update", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusOK)
	}
}

// HandleLaborDelete removes a labor line.
func HandleLaborDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		if err := services.DeleteLaborItem(app, budgetID, itemID); err != nil {
			return writeServiceError(e, "labor_delete", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusOK)
	}
}

// HandleStageAdd appends a stage to the budget.
func HandleStageAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		var s services.Stage
		if err := e.BindBody(&s); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if _, err := services.AddStage(app, budgetID, s); err != nil {
			return writeServiceError(e, "stage_add", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusCreated)
	}
}

// HandleStageUpdate replaces the fields of a stage.
func HandleStageUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		stageID := e.Request.PathValue("itemId")

		var s services.Stage
		if err := e.BindBody(&s); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if _, err := services.UpdateStage(app, budgetID, stageID, s); err != nil {
			return writeServiceError(e, "stage_update", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusOK)
	}
}

// HandleStageDelete removes a stage.
func HandleStageDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		stageID := e.Request.PathValue("itemId")

		if err := services.DeleteStage(app, budgetID, stageID); err != nil {
			return writeServiceError(e, "stage_delete", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusOK)
	}
}

// HandleExtraExpenseAdd appends a one-off expense to the budget.
func HandleExtraExpenseAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		var x services.ExtraExpense
		if err := e.BindBody(&x); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if _, err := services.AddExtraExpense(app, budgetID, x); err != nil {
			return writeServiceError(e, "extra_expense_add", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusCreated)
	}
}

// HandleExtraExpenseUpdate replaces the fields of an expense line.
func HandleExtraExpenseUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		expenseID := e.Request.PathValue("itemId")

		var x services.ExtraExpense
		if err := e.BindBody(&x); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		}

		if _, err := services.UpdateExtraExpense(app, budgetID, expenseID, x); err != nil {
			return writeServiceError(e, "extra_expense_update", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusOK)
	}
}

// HandleExtraExpenseDelete removes an expense line.
func HandleExtraExpenseDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")
		expenseID := e.Request.PathValue("itemId")

		if err := services.DeleteExtraExpense(app, budgetID, expenseID); err != nil {
			return writeServiceError(e, "extra_expense_delete", err)
		}
		return respondWithBudget(e, app, budgetID, http.StatusOK)
	}
}
