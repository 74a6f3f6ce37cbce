package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the budget lifecycle and cost engine. Handlers map
// these to HTTP statuses; callers match with errors.Is / errors.As.
var (
	// ErrUnknownCategory is returned by RateTable.Lookup when the
	// construction type has no configured rate. Callers must supply an
	// explicit cost per sqm in that case.
	ErrUnknownCategory = errors.New("unknown construction category")

	// ErrInvalidArea is returned by ComputeBreakdown when the area is not
	// strictly positive, instead of dividing by zero.
	ErrInvalidArea = errors.New("area must be greater than zero")

	// ErrImmutableBudget rejects mutations on an approved budget. A new
	// revision must be created first.
	ErrImmutableBudget = errors.New("approved budget is read-only")

	// ErrBudgetNotApproved rejects revision/provisioning requests on a
	// budget that is not in the approved state.
	ErrBudgetNotApproved = errors.New("budget is not approved")

	// ErrInvalidTransition rejects a lifecycle transition that the state
	// machine does not define (e.g. approving an approved budget).
	ErrInvalidTransition = errors.New("invalid budget status transition")

	ErrBudgetNotFound  = errors.New("budget not found")
	ErrProjectNotFound = errors.New("project not found")
)

// IncompleteBudgetError reports the required fields missing at approval
// time (project name, area, construction type).
type IncompleteBudgetError struct {
	Missing []string
}

func (e *IncompleteBudgetError) Error() string {
	return fmt.Sprintf("budget is incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// ProvisionError wraps a failure while materializing a project from an
// approved budget. The transaction is rolled back, nothing is linked, and
// the operation is safe to retry.
type ProvisionError struct {
	BudgetID string
	Err      error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provisioning budget %s failed: %v", e.BudgetID, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }
