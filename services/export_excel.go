package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel workbook from the budget export record
// and returns the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet name (max 31 chars).
	sheetName := data.ProjectName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Budget"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := []float64{30, 14, 12, 16, 16, 18}
	cols := []string{"A", "B", "C", "D", "E", "F"}
	for i, c := range cols {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"212529"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}

	set := func(cell string, value any) error {
		return f.SetCellValue(sheetName, cell, value)
	}

	// ── Header block ────────────────────────────────────────────────────
	if err := set("A1", data.ProjectName); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}

	headerPairs := [][2]any{
		{"Construction type", data.ConstructionType},
		{"Location", data.Location},
		{"Technical lead", data.TechnicalLead},
		{"Issue date", data.IssueDate},
		{"Area (sqm)", data.AreaSqm},
		{"Cost per sqm", data.CostPerSqm},
		{"Status", data.Status},
	}
	rowIdx := 3
	for _, p := range headerPairs {
		if err := set(fmt.Sprintf("A%d", rowIdx), p[0]); err != nil {
			return nil, err
		}
		if err := set(fmt.Sprintf("B%d", rowIdx), p[1]); err != nil {
			return nil, err
		}
		rowIdx++
	}
	rowIdx++

	writeSection := func(title string, header []string, rows [][]any) error {
		if len(rows) == 0 {
			return nil
		}
		if err := set(fmt.Sprintf("A%d", rowIdx), title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("A%d", rowIdx), boldStyle); err != nil {
			return err
		}
		rowIdx++

		for i, h := range header {
			cell := fmt.Sprintf("%s%d", cols[i], rowIdx)
			if err := set(cell, h); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheetName,
			fmt.Sprintf("A%d", rowIdx),
			fmt.Sprintf("%s%d", cols[len(header)-1], rowIdx),
			headerStyle); err != nil {
			return err
		}
		rowIdx++

		for _, r := range rows {
			for i, v := range r {
				if err := set(fmt.Sprintf("%s%d", cols[i], rowIdx), v); err != nil {
					return err
				}
			}
			rowIdx++
		}
		rowIdx++
		return nil
	}

	// ── Line item sections ─────────────────────────────────────────────
	materialRows := make([][]any, 0, len(data.Materials))
	for _, m := range data.Materials {
		materialRows = append(materialRows, []any{
			m.Description, m.Unit, m.Quantity, m.UnitPrice, m.Quantity * m.UnitPrice, m.Supplier,
		})
	}
	if err := writeSection("Materials",
		[]string{"Description", "Unit", "Qty", "Unit Price", "Total", "Supplier"},
		materialRows); err != nil {
		return nil, err
	}

	laborRows := make([][]any, 0, len(data.Labor))
	for _, l := range data.Labor {
		laborRows = append(laborRows, []any{
			l.Role, l.Headcount, l.DurationDays, l.DailyRate, l.Headcount * l.DailyRate * l.DurationDays,
		})
	}
	if err := writeSection("Labor",
		[]string{"Role", "Headcount", "Days", "Daily Rate", "Raw Cost"},
		laborRows); err != nil {
		return nil, err
	}

	stageRows := make([][]any, 0, len(data.Stages))
	for _, s := range data.Stages {
		stageRows = append(stageRows, []any{
			s.Name, s.StartDate, s.EndDate, s.PlannedCost,
		})
	}
	if err := writeSection("Stages",
		[]string{"Stage", "Start", "End", "Planned Cost"},
		stageRows); err != nil {
		return nil, err
	}

	extraRows := make([][]any, 0, len(data.Extras))
	for _, x := range data.Extras {
		extraRows = append(extraRows, []any{x.Category, x.Notes, x.Amount})
	}
	if err := writeSection("Extra Expenses",
		[]string{"Category", "Notes", "Amount"},
		extraRows); err != nil {
		return nil, err
	}

	// ── Breakdown summary ──────────────────────────────────────────────
	bd := data.Breakdown
	summary := [][2]any{
		{"Base Cost", bd.BaseCost},
		{"Materials Cost", bd.MaterialsCost},
		{"Labor Cost", bd.LaborCost},
		{"Transport Cost", bd.TransportCost},
		{"Stages Cost", bd.StagesCost},
		{"Extra Expenses Cost", bd.ExtraExpensesCost},
		{"Subtotal", bd.Subtotal},
		{"Profit", bd.Profit},
		{"Tax", bd.TaxAmount},
		{"Total Cost", bd.TotalCost},
		{"Final Cost / sqm", bd.FinalCostPerSqm},
	}
	if err := set(fmt.Sprintf("A%d", rowIdx), "Cost Breakdown"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("A%d", rowIdx), boldStyle); err != nil {
		return nil, err
	}
	rowIdx++
	for _, p := range summary {
		if err := set(fmt.Sprintf("A%d", rowIdx), p[0]); err != nil {
			return nil, err
		}
		if err := set(fmt.Sprintf("B%d", rowIdx), p[1]); err != nil {
			return nil, err
		}
		rowIdx++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
