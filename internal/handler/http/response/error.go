package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/user"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		Fail(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, tenant.ErrTenantMissing):
		Unauthorized(w, "Tenant missing from token")
	case errors.Is(err, jwt.ErrInvalidClaims):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrInvalidRole), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Worker directory
	case errors.Is(err, worker.ErrWorkerNotFound):
		Fail(w, http.StatusNotFound, "NOT_FOUND", "Worker not found", nil)

	// Salary request errors
	case errors.Is(err, salary.ErrInvalidCategory),
		errors.Is(err, salary.ErrUnknownEmployeeType),
		errors.Is(err, salary.ErrInvalidPeriod),
		errors.Is(err, salary.ErrInvalidSlipStatus):
		BadRequest(w, err.Error(), nil)

	// Salary calculation errors
	case errors.Is(err, salary.ErrMissingRate),
		errors.Is(err, salary.ErrInvalidSubRole),
		errors.Is(err, salary.ErrInvalidStandardDays):
		Fail(w, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", err.Error(), nil)

	case errors.Is(err, salary.ErrActiveSettingsExists):
		Fail(w, http.StatusConflict, "CONFLICT", "Salary settings were changed concurrently, retry", nil)
	case errors.Is(err, salary.ErrSlipNotFound):
		Fail(w, http.StatusNotFound, "NOT_FOUND", "Salary slip not found", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		Fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil)
	}
}
