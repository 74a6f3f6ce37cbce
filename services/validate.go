package services

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Mutation-boundary validation. Invalid input is rejected here, with the
// offending fields named, before the aggregator ever runs.

func constructionTypeValues() []interface{} {
	vals := make([]interface{}, len(ConstructionTypes))
	for i, t := range ConstructionTypes {
		vals[i] = t
	}
	return vals
}

func percentRules() []validation.Rule {
	return []validation.Rule{
		validation.Min(0.0).Error("must be between 0 and 100"),
		validation.Max(100.0).Error("must be between 0 and 100"),
	}
}

func nonNegative() validation.Rule {
	return validation.Min(0.0).Error("must not be negative")
}

// BudgetFields is the validatable header of a budget: everything except
// the line-item collections.
type BudgetFields struct {
	ProjectName      string  `json:"project_name"`
	ConstructionType string  `json:"construction_type"`
	AreaSqm          float64 `json:"area_sqm"`
	CostPerSqm       float64 `json:"cost_per_sqm"`
	Location         string  `json:"location"`
	TechnicalLead    string  `json:"technical_lead"`
	IssueDate        string  `json:"issue_date"`
	TechnicalNotes   string  `json:"technical_notes"`
	LaborBurdenPct   float64 `json:"labor_burden_pct"`
	AdminMarginPct   float64 `json:"admin_margin_pct"`
	ContingencyPct   float64 `json:"contingency_pct"`
	ProfitMarginPct  float64 `json:"profit_margin_pct"`
	TaxPct           float64 `json:"tax_pct"`
}

// ValidateBudgetFields checks the numeric bounds of a budget header.
// Values outside range are rejected, never silently clamped.
func ValidateBudgetFields(f BudgetFields) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ConstructionType,
			validation.In(constructionTypeValues()...).Error("unknown construction type")),
		validation.Field(&f.AreaSqm,
			validation.Min(0.0).Exclusive().Error("must be greater than zero")),
		validation.Field(&f.CostPerSqm, nonNegative()),
		validation.Field(&f.LaborBurdenPct, percentRules()...),
		validation.Field(&f.AdminMarginPct, percentRules()...),
		validation.Field(&f.ContingencyPct, percentRules()...),
		validation.Field(&f.ProfitMarginPct, percentRules()...),
		validation.Field(&f.TaxPct, percentRules()...),
	)
}

// ValidateMaterialItem checks a material line item.
func ValidateMaterialItem(m MaterialItem) error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Description, validation.Required.Error("description is required")),
		validation.Field(&m.Quantity, nonNegative()),
		validation.Field(&m.UnitPrice, nonNegative()),
	)
}

// ValidateLaborItem checks a labor line item.
func ValidateLaborItem(l LaborItem) error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Role, validation.Required.Error("role is required")),
		validation.Field(&l.Headcount, nonNegative()),
		validation.Field(&l.DailyRate, nonNegative()),
		validation.Field(&l.DurationDays, nonNegative()),
	)
}

// ValidateTransport checks transport parameters. Fuel efficiency must be
// strictly positive once a distance is set; an all-zero transport block is
// a budget without transport and is fine.
func ValidateTransport(t TransportParams) error {
	rules := []*validation.FieldRules{
		validation.Field(&t.DistanceKm, nonNegative()),
		validation.Field(&t.FuelPricePerL, nonNegative()),
		validation.Field(&t.TripsPerWeek, nonNegative()),
		validation.Field(&t.DurationWeeks, nonNegative()),
		validation.Field(&t.Tolls, nonNegative()),
	}
	if t.DistanceKm > 0 {
		rules = append(rules, validation.Field(&t.FuelEfficiencyKmPerL,
			validation.Min(0.0).Exclusive().Error("must be greater than zero")))
	} else {
		rules = append(rules, validation.Field(&t.FuelEfficiencyKmPerL, nonNegative()))
	}
	return validation.ValidateStruct(&t, rules...)
}

// ValidateStage checks a stage line item.
func ValidateStage(s Stage) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required.Error("name is required")),
		validation.Field(&s.PlannedCost, nonNegative()),
	)
}

// ValidateExtraExpense checks a one-off expense line item.
func ValidateExtraExpense(x ExtraExpense) error {
	return validation.ValidateStruct(&x,
		validation.Field(&x.Category, validation.Required.Error("category is required")),
		validation.Field(&x.Amount, nonNegative()),
	)
}

// approvalMissing lists the required fields a budget must carry before it
// can be approved.
func approvalMissing(projectName, constructionType string, areaSqm float64) []string {
	var missing []string
	if projectName == "" {
		missing = append(missing, "project_name")
	}
	if areaSqm <= 0 {
		missing = append(missing, "area_sqm")
	}
	if constructionType == "" {
		missing = append(missing, "construction_type")
	}
	return missing
}
