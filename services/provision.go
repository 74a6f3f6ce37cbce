package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// SendToProject converts an approved budget into a live project record
// with its stage and material manifest, and links the budget to it.
//
// The operation is idempotent: a budget whose linked_project is already
// set returns that id without creating anything, so retries and
// double-clicks never produce duplicate projects. The whole provisioning
// runs in one transaction; on failure nothing is linked and the call is
// safe to retry. Concurrent calls serialize on the write transaction, and
// the in-transaction re-read of linked_project makes the loser observe
// the winner's project instead of creating a second one.
func SendToProject(app core.App, budgetID string) (string, error) {
	budget, err := LoadBudget(app, budgetID)
	if err != nil {
		return "", err
	}
	if status := budget.GetString("status"); status != StatusApproved {
		return "", fmt.Errorf("%w: status is %q", ErrBudgetNotApproved, status)
	}
	if existing := budget.GetString("linked_project"); existing != "" {
		return existing, nil
	}

	var projectID string
	err = app.RunInTransaction(func(tx core.App) error {
		fresh, err := LoadBudget(tx, budgetID)
		if err != nil {
			return err
		}
		if existing := fresh.GetString("linked_project"); existing != "" {
			projectID = existing
			return nil
		}

		project, err := createProjectSeed(tx, fresh)
		if err != nil {
			return err
		}

		stageIDMap, err := provisionStages(tx, fresh.Id, project.Id)
		if err != nil {
			return err
		}
		if err := provisionMaterials(tx, fresh.Id, project.Id, stageIDMap); err != nil {
			return err
		}

		fresh.Set("linked_project", project.Id)
		if err := tx.Save(fresh); err != nil {
			return fmt.Errorf("link budget to project: %w", err)
		}
		projectID = project.Id
		return nil
	})
	if err != nil {
		return "", &ProvisionError{BudgetID: budgetID, Err: err}
	}

	log.Printf("provision: budget %s -> project %s\n", budgetID, projectID)
	return projectID, nil
}

func createProjectSeed(tx core.App, budget *core.Record) (*core.Record, error) {
	col, err := tx.FindCollectionByNameOrId("projects")
	if err != nil {
		return nil, fmt.Errorf("find projects collection: %w", err)
	}

	project := core.NewRecord(col)
	project.Set("name", budget.GetString("project_name"))
	project.Set("location", budget.GetString("location"))
	project.Set("technical_lead", budget.GetString("technical_lead"))
	project.Set("status", ProjectStatusPlanned)
	project.Set("source_budget", budget.Id)
	if err := tx.Save(project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// provisionStages copies the budget's stages into project stages and
// returns the budget-stage to project-stage id mapping.
func provisionStages(tx core.App, budgetID, projectID string) (map[string]string, error) {
	stages, err := childRecords(tx, "budget_stages", budgetID)
	if err != nil {
		return nil, err
	}
	col, err := tx.FindCollectionByNameOrId("project_stages")
	if err != nil {
		return nil, fmt.Errorf("find project_stages collection: %w", err)
	}

	idMap := make(map[string]string, len(stages))
	for _, s := range stages {
		ps := core.NewRecord(col)
		ps.Set("project", projectID)
		ps.Set("sort_order", s.GetInt("sort_order"))
		ps.Set("name", s.GetString("name"))
		ps.Set("description", s.GetString("description"))
		ps.Set("planned_cost", s.GetFloat("planned_cost"))
		if err := tx.Save(ps); err != nil {
			return nil, fmt.Errorf("create project stage from %s: %w", s.Id, err)
		}
		idMap[s.Id] = ps.Id
	}
	return idMap, nil
}

// provisionMaterials copies the budget's material items into project
// material requisitions with nothing consumed yet. Items tied to a budget
// stage keep the association via the mapped project stage.
func provisionMaterials(tx core.App, budgetID, projectID string, stageIDMap map[string]string) error {
	items, err := childRecords(tx, "material_items", budgetID)
	if err != nil {
		return err
	}
	col, err := tx.FindCollectionByNameOrId("project_materials")
	if err != nil {
		return fmt.Errorf("find project_materials collection: %w", err)
	}

	for _, m := range items {
		pm := core.NewRecord(col)
		pm.Set("project", projectID)
		pm.Set("sort_order", m.GetInt("sort_order"))
		pm.Set("description", m.GetString("description"))
		pm.Set("unit", m.GetString("unit"))
		pm.Set("quantity", m.GetFloat("quantity"))
		pm.Set("unit_price", m.GetFloat("unit_price"))
		pm.Set("supplier", m.GetString("supplier"))
		pm.Set("quantity_used", 0)
		if budgetStage := m.GetString("stage"); budgetStage != "" {
			pm.Set("stage", stageIDMap[budgetStage])
		}
		if err := tx.Save(pm); err != nil {
			return fmt.Errorf("create project material from %s: %w", m.Id, err)
		}
	}
	return nil
}
