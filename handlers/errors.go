// Package handlers exposes the budgeting engine over PocketBase's router.
// Handlers parse and respond; every rule lives in services.
package handlers

import (
	"errors"
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"

	"obralis/services"
)

// writeServiceError maps a services error to a JSON error response.
// Validation failures name the offending fields; provisioning failures are
// flagged retryable.
func writeServiceError(e *core.RequestEvent, op string, err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return e.JSON(http.StatusBadRequest, map[string]any{
			"error":  "invalid input",
			"fields": fieldErrs,
		})
	}

	var incomplete *services.IncompleteBudgetError
	if errors.As(err, &incomplete) {
		return e.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":   "budget is incomplete",
			"missing": incomplete.Missing,
		})
	}

	var provision *services.ProvisionError
	if errors.As(err, &provision) {
		log.Printf("%s: provisioning failed: %v", op, err)
		return e.JSON(http.StatusConflict, map[string]any{
			"error":     provision.Error(),
			"retryable": true,
		})
	}

	switch {
	case errors.Is(err, services.ErrBudgetNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		return e.JSON(http.StatusNotFound, map[string]any{"error": err.Error()})

	case errors.Is(err, services.ErrImmutableBudget),
		errors.Is(err, services.ErrBudgetNotApproved),
		errors.Is(err, services.ErrInvalidTransition):
		return e.JSON(http.StatusConflict, map[string]any{"error": err.Error()})

	case errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrInvalidArea):
		return e.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	log.Printf("%s: %v", op, err)
	return e.JSON(http.StatusInternalServerError, map[string]any{
		"error": "Something went wrong. Please try again.",
	})
}
