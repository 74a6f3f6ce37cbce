package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// HandleProjectList returns a handler that lists provisioned projects.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projects, err := app.FindRecordsByFilter("projects", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			return writeServiceError(e, "project_list", err)
		}

		out := make([]map[string]any, 0, len(projects))
		for _, p := range projects {
			out = append(out, projectSummary(p))
		}
		return e.JSON(http.StatusOK, map[string]any{"projects": out})
	}
}

// HandleProjectView returns a handler that responds with a project and
// its provisioned stage/material manifest, the handoff record for the
// tracking subsystem.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")

		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return writeServiceError(e, "project_view", services.ErrProjectNotFound)
		}

		stages, err := app.FindRecordsByFilter(
			"project_stages", "project = {:project}", "sort_order", 0, 0,
			map[string]any{"project": projectID})
		if err != nil {
			return writeServiceError(e, "project_view", err)
		}
		materials, err := app.FindRecordsByFilter(
			"project_materials", "project = {:project}", "sort_order", 0, 0,
			map[string]any{"project": projectID})
		if err != nil {
			return writeServiceError(e, "project_view", err)
		}

		stageOut := make([]map[string]any, 0, len(stages))
		for _, s := range stages {
			stageOut = append(stageOut, map[string]any{
				"id":           s.Id,
				"order":        s.GetInt("sort_order"),
				"name":         s.GetString("name"),
				"description":  s.GetString("description"),
				"planned_cost": s.GetFloat("planned_cost"),
			})
		}

		materialOut := make([]map[string]any, 0, len(materials))
		for _, m := range materials {
			materialOut = append(materialOut, map[string]any{
				"id":            m.Id,
				"description":   m.GetString("description"),
				"unit":          m.GetString("unit"),
				"quantity":      m.GetFloat("quantity"),
				"unit_price":    m.GetFloat("unit_price"),
				"supplier":      m.GetString("supplier"),
				"quantity_used": m.GetFloat("quantity_used"),
				"stage_id":      m.GetString("stage"),
			})
		}

		out := projectSummary(project)
		out["stages"] = stageOut
		out["materials"] = materialOut
		return e.JSON(http.StatusOK, out)
	}
}

func projectSummary(p *core.Record) map[string]any {
	return map[string]any{
		"id":             p.Id,
		"name":           p.GetString("name"),
		"location":       p.GetString("location"),
		"technical_lead": p.GetString("technical_lead"),
		"status":         p.GetString("status"),
		"source_budget":  p.GetString("source_budget"),
	}
}
