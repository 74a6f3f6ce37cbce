package services

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders a budget document from the flat export record using
// maroto/v2. It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)

	if len(data.Materials) > 0 {
		addSectionTitle(m, "Materials")
		addMaterialsTable(m, data)
	}
	if len(data.Labor) > 0 {
		addSectionTitle(m, "Labor")
		addLaborTable(m, data)
	}
	if len(data.Stages) > 0 {
		addSectionTitle(m, "Stages")
		addStagesTable(m, data)
	}
	if len(data.Extras) > 0 {
		addSectionTitle(m, "Extra Expenses")
		addExtrasTable(m, data)
	}
	if data.Breakdown.TransportCost > 0 {
		addTransportLine(m, data)
	}

	addSummary(m, data)
	addFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the project name and the identification block.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.ProjectName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	meta := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	metaRight := meta
	metaRight.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Type: %s", data.ConstructionType), meta)),
			col.New(6).Add(text.New(fmt.Sprintf("Issue date: %s", data.IssueDate), metaRight)),
		),
		row.New(6).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Location: %s", data.Location), meta)),
			col.New(6).Add(text.New(fmt.Sprintf("Technical lead: %s", data.TechnicalLead), metaRight)),
		),
		row.New(6).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Area: %s sqm", formatQty(data.AreaSqm)), meta)),
			col.New(6).Add(text.New(fmt.Sprintf("Base rate: %s/sqm", FormatBRL(data.CostPerSqm)), metaRight)),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

func addSectionTitle(m core.Maroto, title string) {
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
}

var tableHeaderBg = &props.Color{Red: 33, Green: 37, Blue: 41}

func tableHeaderText() props.Text {
	return props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
}

func tableBodyText() props.Text {
	return props.Text{
		Size:  8,
		Align: align.Center,
	}
}

func addMaterialsTable(m core.Maroto, data ExportData) {
	ht := tableHeaderText()
	htLeft := ht
	htLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: tableHeaderBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", ht)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Description", htLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", ht)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", ht)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", ht)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", ht)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Supplier", ht)).WithStyle(&headerCell),
		),
	)

	bt := tableBodyText()
	left := bt
	left.Align = align.Left
	right := bt
	right.Align = align.Right

	for i, mi := range data.Materials {
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), bt)),
				col.New(4).Add(text.New(mi.Description, left)),
				col.New(1).Add(text.New(mi.Unit, bt)),
				col.New(1).Add(text.New(formatQty(mi.Quantity), right)),
				col.New(2).Add(text.New(FormatBRL(mi.UnitPrice), right)),
				col.New(2).Add(text.New(FormatBRL(mi.Quantity*mi.UnitPrice), right)),
				col.New(1).Add(text.New(mi.Supplier, left)),
			),
		)
	}
	m.AddRows(row.New(3))
}

func addLaborTable(m core.Maroto, data ExportData) {
	ht := tableHeaderText()
	htLeft := ht
	htLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: tableHeaderBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", ht)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Role", htLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Headcount", ht)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Daily Rate", ht)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Days", ht)).WithStyle(&headerCell),
		),
	)

	bt := tableBodyText()
	left := bt
	left.Align = align.Left
	right := bt
	right.Align = align.Right

	for i, l := range data.Labor {
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), bt)),
				col.New(5).Add(text.New(l.Role, left)),
				col.New(2).Add(text.New(formatQty(l.Headcount), right)),
				col.New(2).Add(text.New(FormatBRL(l.DailyRate), right)),
				col.New(2).Add(text.New(formatQty(l.DurationDays), right)),
			),
		)
	}
	m.AddRows(row.New(3))
}

func addStagesTable(m core.Maroto, data ExportData) {
	ht := tableHeaderText()
	htLeft := ht
	htLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: tableHeaderBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", ht)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Stage", htLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Start", ht)).WithStyle(&headerCell),
			col.New(2).Add(text.New("End", ht)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Planned Cost", ht)).WithStyle(&headerCell),
		),
	)

	bt := tableBodyText()
	left := bt
	left.Align = align.Left
	right := bt
	right.Align = align.Right

	for _, s := range data.Stages {
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", s.Order), bt)),
				col.New(5).Add(text.New(s.Name, left)),
				col.New(2).Add(text.New(s.StartDate, bt)),
				col.New(2).Add(text.New(s.EndDate, bt)),
				col.New(2).Add(text.New(FormatBRL(s.PlannedCost), right)),
			),
		)
	}
	m.AddRows(row.New(3))
}

func addExtrasTable(m core.Maroto, data ExportData) {
	ht := tableHeaderText()
	htLeft := ht
	htLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: tableHeaderBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", ht)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Category", htLeft)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Notes", htLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", ht)).WithStyle(&headerCell),
		),
	)

	bt := tableBodyText()
	left := bt
	left.Align = align.Left
	right := bt
	right.Align = align.Right

	for i, x := range data.Extras {
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), bt)),
				col.New(5).Add(text.New(x.Category, left)),
				col.New(4).Add(text.New(x.Notes, left)),
				col.New(2).Add(text.New(FormatBRL(x.Amount), right)),
			),
		)
	}
	m.AddRows(row.New(3))
}

func addTransportLine(m core.Maroto, data ExportData) {
	t := data.Transport
	detail := fmt.Sprintf("Transport: %s km round-trips, %s trips/week for %s weeks, tolls %s",
		formatQty(t.DistanceKm), formatQty(t.TripsPerWeek), formatQty(t.DurationWeeks), FormatBRL(t.Tolls))

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(detail, props.Text{
				Size:  8,
				Align: align.Left,
				Color: &props.Color{Red: 80, Green: 80, Blue: 80},
			})),
		),
		row.New(3),
	)
}

// addSummary renders the cost breakdown ladder at the bottom of the
// document, in formula order.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	bd := data.Breakdown
	lines := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Base Cost", bd.BaseCost, false},
		{"Materials", bd.MaterialsCost, false},
		{fmt.Sprintf("Labor (burden %s)", FormatPercent(data.LaborBurdenPct)), bd.LaborCost, false},
		{"Transport", bd.TransportCost, false},
		{"Stages", bd.StagesCost, false},
		{"Extra Expenses", bd.ExtraExpensesCost, false},
		{fmt.Sprintf("Subtotal (margin %s, contingency %s)", FormatPercent(data.AdminMarginPct), FormatPercent(data.ContingencyPct)), bd.Subtotal, true},
		{fmt.Sprintf("Profit (%s)", FormatPercent(data.ProfitMarginPct)), bd.Profit, false},
		{fmt.Sprintf("Tax (%s)", FormatPercent(data.TaxPct)), bd.TaxAmount, false},
		{"TOTAL", bd.TotalCost, true},
		{"Final Cost / sqm", bd.FinalCostPerSqm, true},
	}

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	for _, line := range lines {
		style := fontstyle.Normal
		if line.bold {
			style = fontstyle.Bold
		}
		labelText := props.Text{Size: 9, Style: style, Align: align.Right}
		valueText := props.Text{Size: 9, Style: style, Align: align.Right}

		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(text.New(line.label, labelText)).WithStyle(summaryCell),
				col.New(4).Add(text.New(FormatBRL(line.value), valueText)).WithStyle(summaryCell),
			),
		)
	}
}

func addFooter(m core.Maroto) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Generated on %s", time.Now().Format("2006-01-02 15:04")), props.Text{
					Size:  7,
					Align: align.Left,
					Color: &props.Color{Red: 120, Green: 120, Blue: 120},
				}),
			),
		),
	)
}

// formatQty renders a quantity as a whole number when it has no
// fractional part, otherwise with 2 decimals.
func formatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
