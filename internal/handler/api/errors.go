package api

import (
	"net/http"

	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// respondError maps the error class marked by the use case layer to an HTTP status.
func respondError(c *gin.Context, err error, msg string) {
	switch {
	case errs.Is(err, shared.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, gin.H{"reason": err.Error()})
	case errs.Is(err, shared.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errs.Is(err, shared.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Schedule conflict", conflictDetail(err))
	case errs.Is(err, shared.ErrAlreadyCompleted):
		httperr.AbortWithError(c, http.StatusConflict, err, "Appointment is no longer active", nil)
	case errs.Is(err, shared.ErrConcurrency):
		httperr.AbortWithError(c, http.StatusConflict, err, "Modified concurrently, reload and retry", nil)
	case errs.Is(err, shared.ErrPartialCommit):
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout outcome unknown", partialCommitDetail(err))
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}

func conflictDetail(err error) any {
	var ce *shared.ConflictError
	if !errs.As(err, &ce) {
		return nil
	}
	detail := gin.H{"holiday": ce.Holiday}
	if ce.AppointmentID != nil {
		detail["conflict_with"] = ce.AppointmentID.String()
	}
	return detail
}

func partialCommitDetail(err error) any {
	var pe *shared.PartialCommitError
	if !errs.As(err, &pe) {
		return nil
	}
	return gin.H{"sale_id": pe.SaleID.String(), "steps": pe.Steps}
}

func invalidParam(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}
