package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/collections"
	"obralis/handlers"
	"obralis/services"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed default rates and repair drifted
	// breakdowns on startup.
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: rate seeding failed: %v", err)
		}
		if err := services.RecomputeStoredBreakdowns(app); err != nil {
			log.Printf("Warning: breakdown recompute failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Budget CRUD ──────────────────────────────────────────
		se.Router.GET("/budgets", handlers.HandleBudgetList(app))
		se.Router.POST("/budgets", handlers.HandleBudgetCreate(app))
		se.Router.GET("/budgets/{id}", handlers.HandleBudgetView(app))
		se.Router.POST("/budgets/{id}/save", handlers.HandleBudgetUpdate(app))
		se.Router.DELETE("/budgets/{id}", handlers.HandleBudgetDelete(app))

		// ── Transport parameters (singleton per budget) ──────────
		se.Router.POST("/budgets/{id}/transport", handlers.HandleTransportUpdate(app))

		// ── Line items ───────────────────────────────────────────
		se.Router.POST("/budgets/{id}/materials", handlers.HandleMaterialAdd(app))
		se.Router.PATCH("/budgets/{id}/materials/{itemId}", handlers.HandleMaterialUpdate(app))
		se.Router.DELETE("/budgets/{id}/materials/{itemId}", handlers.HandleMaterialDelete(app))

		se.Router.POST("/budgets/{id}/labor-items", handlers.HandleLaborAdd(app))
		se.Router.PATCH("/budgets/{id}/labor-items/{itemId}", handlers.HandleLaborUpdate(app))
		se.Router.DELETE("/budgets/{id}/labor-items/{itemId}", handlers.HandleLaborDelete(app))

		se.Router.POST("/budgets/{id}/stages", handlers.HandleStageAdd(app))
		se.Router.PATCH("/budgets/{id}/stages/{itemId}", handlers.HandleStageUpdate(app))
		se.Router.DELETE("/budgets/{id}/stages/{itemId}", handlers.HandleStageDelete(app))

		se.Router.POST("/budgets/{id}/extra-expenses", handlers.HandleExtraExpenseAdd(app))
		se.Router.PATCH("/budgets/{id}/extra-expenses/{itemId}", handlers.HandleExtraExpenseUpdate(app))
		se.Router.DELETE("/budgets/{id}/extra-expenses/{itemId}", handlers.HandleExtraExpenseDelete(app))

		// ── Lifecycle ────────────────────────────────────────────
		se.Router.POST("/budgets/{id}/approve", handlers.HandleBudgetApprove(app))
		se.Router.POST("/budgets/{id}/revision", handlers.HandleBudgetRevision(app))
		se.Router.POST("/budgets/{id}/send-to-project", handlers.HandleBudgetSendToProject(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/budgets/{id}/export", handlers.HandleBudgetExportJSON(app))
		se.Router.GET("/budgets/{id}/export/pdf", handlers.HandleBudgetExportPDF(app))
		se.Router.GET("/budgets/{id}/export/excel", handlers.HandleBudgetExportExcel(app))

		// ── Provisioned projects (manifest handoff) ──────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app))

		// ── Rate settings ────────────────────────────────────────
		se.Router.GET("/settings/rates", handlers.HandleRateList(app))
		se.Router.POST("/settings/rates", handlers.HandleRateUpdate(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
