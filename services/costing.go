package services

// ComputeBreakdown derives the full cost breakdown from a budget's fields.
// Pure and deterministic: no I/O, no stored state. Callers validate inputs
// before this runs; the only check here is the final division guard.
//
// The compounding order is fixed: admin margin, then contingency, then
// profit on the compounded subtotal, then tax on subtotal plus profit.
// Nothing is rounded mid-pipeline; rounding happens at presentation time.
func ComputeBreakdown(in BudgetInput) (CostBreakdown, error) {
	if in.AreaSqm <= 0 {
		return CostBreakdown{}, ErrInvalidArea
	}

	var bd CostBreakdown

	bd.BaseCost = in.AreaSqm * in.CostPerSqm

	for _, m := range in.Materials {
		bd.MaterialsCost += m.Quantity * m.UnitPrice
	}

	var rawLabor float64
	for _, l := range in.Labor {
		rawLabor += l.Headcount * l.DailyRate * l.DurationDays
	}
	bd.LaborCost = rawLabor * (1 + in.LaborBurdenPct/100)

	bd.TransportCost = transportCost(in.Transport)

	for _, s := range in.Stages {
		bd.StagesCost += s.PlannedCost
	}

	for _, e := range in.Extras {
		bd.ExtraExpensesCost += e.Amount
	}

	rawSubtotal := bd.BaseCost + bd.MaterialsCost + bd.LaborCost +
		bd.TransportCost + bd.StagesCost + bd.ExtraExpensesCost

	bd.Subtotal = rawSubtotal * (1 + in.AdminMarginPct/100) * (1 + in.ContingencyPct/100)
	bd.Profit = bd.Subtotal * in.ProfitMarginPct / 100
	bd.TaxAmount = (bd.Subtotal + bd.Profit) * in.TaxPct / 100
	bd.TotalCost = bd.Subtotal + bd.Profit + bd.TaxAmount
	bd.FinalCostPerSqm = bd.TotalCost / in.AreaSqm

	return bd, nil
}

// transportCost computes round-trip fuel cost plus tolls. Tolls are a flat
// total, not per-trip. A zero fuel efficiency contributes no fuel cost
// rather than dividing by zero; validation requires efficiency > 0
// whenever a distance is set, so this only covers budgets with no
// transport at all.
func transportCost(t TransportParams) float64 {
	var fuelCost float64
	if t.FuelEfficiencyKmPerL > 0 {
		liters := (t.DistanceKm * 2 / t.FuelEfficiencyKmPerL) * (t.TripsPerWeek * t.DurationWeeks)
		fuelCost = liters * t.FuelPricePerL
	}
	return fuelCost + t.Tolls
}
