// Package services holds the cost-estimation engine: the rate table, the
// pure cost aggregator, boundary validation, the budget lifecycle and the
// project provisioner.
package services

// Budget lifecycle statuses.
const (
	StatusDraft    = "draft"
	StatusApproved = "approved"
	StatusRevision = "revision"
)

// Project statuses after provisioning. Day-to-day tracking (progress,
// comments, incidents) is owned by the obra subsystem, not this engine.
const (
	ProjectStatusPlanned    = "planned"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
)

// ConstructionTypes lists the supported construction categories.
var ConstructionTypes = []string{
	"residential",
	"commercial",
	"industrial",
	"renovation",
	"infrastructure",
}

// MaterialItem is a single material line on a budget. StageID optionally
// ties the material to one of the budget's stages.
type MaterialItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Supplier    string  `json:"supplier"`
	StageID     string  `json:"stage_id"`
}

// LaborItem is a crew line: headcount at a daily rate for a duration.
type LaborItem struct {
	ID           string  `json:"id"`
	Role         string  `json:"role"`
	Headcount    float64 `json:"headcount"`
	DailyRate    float64 `json:"daily_rate"`
	DurationDays float64 `json:"duration_days"`
}

// TransportParams describe the logistics of moving crew and material to
// site. At most one set per budget.
type TransportParams struct {
	DistanceKm           float64 `json:"distance_km"`
	FuelEfficiencyKmPerL float64 `json:"fuel_efficiency_km_per_l"`
	FuelPricePerL        float64 `json:"fuel_price_per_l"`
	TripsPerWeek         float64 `json:"trips_per_week"`
	DurationWeeks        float64 `json:"duration_weeks"`
	Tolls                float64 `json:"tolls"`
}

// Stage is a coarse project phase with its own predicted cost.
type Stage struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PlannedCost float64 `json:"planned_cost"`
	Order       int     `json:"order"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

// ExtraExpense is a one-off expense outside materials/labor/transport.
type ExtraExpense struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes"`
}

// BudgetInput is everything the cost aggregator needs. It is assembled
// from a stored budget record plus its child line items, or constructed
// directly in tests.
type BudgetInput struct {
	AreaSqm    float64 `json:"area_sqm"`
	CostPerSqm float64 `json:"cost_per_sqm"`

	Materials []MaterialItem `json:"materials"`
	Labor     []LaborItem    `json:"labor"`
	Transport TransportParams `json:"transport"`
	Stages    []Stage         `json:"stages"`
	Extras    []ExtraExpense  `json:"extra_expenses"`

	LaborBurdenPct  float64 `json:"labor_burden_pct"`
	AdminMarginPct  float64 `json:"admin_margin_pct"`
	ContingencyPct  float64 `json:"contingency_pct"`
	ProfitMarginPct float64 `json:"profit_margin_pct"`
	TaxPct          float64 `json:"tax_pct"`
}

// CostBreakdown is the derived cost record. It is recomputed from the
// budget's fields on every accepted mutation and never hand-edited.
type CostBreakdown struct {
	BaseCost          float64 `json:"base_cost"`
	MaterialsCost     float64 `json:"materials_cost"`
	LaborCost         float64 `json:"labor_cost"`
	TransportCost     float64 `json:"transport_cost"`
	StagesCost        float64 `json:"stages_cost"`
	ExtraExpensesCost float64 `json:"extra_expenses_cost"`
	Subtotal          float64 `json:"subtotal"`
	Profit            float64 `json:"profit"`
	TaxAmount         float64 `json:"tax_amount"`
	TotalCost         float64 `json:"total_cost"`
	FinalCostPerSqm   float64 `json:"final_cost_per_sqm"`
}

// IsConstructionType reports whether t is one of the supported categories.
func IsConstructionType(t string) bool {
	for _, ct := range ConstructionTypes {
		if t == ct {
			return true
		}
	}
	return false
}
