package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// HandleBudgetExportJSON returns the flat renderer-facing record as JSON.
func HandleBudgetExportJSON(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.BuildExportData(app, e.Request.PathValue("id"))
		if err != nil {
			return writeServiceError(e, "budget_export", err)
		}
		return e.JSON(http.StatusOK, data)
	}
}

// HandleBudgetExportPDF streams the budget document as a PDF download.
func HandleBudgetExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.BuildExportData(app, e.Request.PathValue("id"))
		if err != nil {
			return writeServiceError(e, "budget_export_pdf", err)
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			return writeServiceError(e, "budget_export_pdf", err)
		}

		filename := fmt.Sprintf("budget-%s.pdf", data.BudgetID)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		return e.Blob(http.StatusOK, "application/pdf", pdfBytes)
	}
}

// HandleBudgetExportExcel streams the budget workbook as an Excel
// download.
func HandleBudgetExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.BuildExportData(app, e.Request.PathValue("id"))
		if err != nil {
			return writeServiceError(e, "budget_export_excel", err)
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			return writeServiceError(e, "budget_export_excel", err)
		}

		filename := fmt.Sprintf("budget-%s.xlsx", data.BudgetID)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		return e.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsxBytes)
	}
}
