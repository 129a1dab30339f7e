package shared

import (
	"fmt"
	"strings"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/bulletin"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/sale"
	"salon-scheduler/internal/domain/tax"
	"salon-scheduler/internal/domain/timegrid"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

// Error classes every command and query result is marked with.
var (
	ErrValidation       = errs.New("validation failed")
	ErrNotFound         = errs.New("not found")
	ErrConflict         = errs.New("schedule conflict")
	ErrAlreadyCompleted = errs.New("appointment already completed")
	ErrConcurrency      = errs.New("concurrent modification")
	ErrPartialCommit    = errs.New("checkout outcome unknown")
	ErrTxCommit         = errs.New("failed to commit transaction")
)

// ConflictError names the appointment blocking a placement, or reports a holiday.
type ConflictError struct {
	AppointmentID *uuid.UUID
	Holiday       bool
}

func (e *ConflictError) Error() string {
	if e.Holiday {
		return "staff is on holiday"
	}
	if e.AppointmentID != nil {
		return fmt.Sprintf("overlaps appointment %s", e.AppointmentID)
	}
	return "schedule conflict"
}

func NewConflictError(appointmentID *uuid.UUID, holiday bool) error {
	return errs.Mark(&ConflictError{AppointmentID: appointmentID, Holiday: holiday}, ErrConflict)
}

// PartialCommitError is returned when a checkout commit may or may not have been applied.
type PartialCommitError struct {
	SaleID uuid.UUID
	Steps  []string
	Err    error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("checkout for sale %s in unknown state after [%s]: %v", e.SaleID, strings.Join(e.Steps, ", "), e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}

func NewPartialCommitError(saleID uuid.UUID, steps []string, cause error) error {
	return errs.Mark(&PartialCommitError{SaleID: saleID, Steps: steps, Err: cause}, ErrPartialCommit)
}

var domainValidationErrors = []error{
	appointment.ErrInvalidTimeSlot,
	appointment.ErrInvalidDuration,
	appointment.ErrInvalidStatus,
	appointment.ErrShopRequired,
	appointment.ErrStaffRequired,
	appointment.ErrServiceRequired,
	appointment.ErrCustomerRequired,
	appointment.ErrCustomerNameLong,
	catalog.ErrNameRequired,
	catalog.ErrNegativePrice,
	catalog.ErrInvalidDuration,
	catalog.ErrNegativeStock,
	catalog.ErrInvalidQuantity,
	catalog.ErrInvalidItemType,
	catalog.ErrNameTooLong,
	catalog.ErrPriceTooHigh,
	catalog.ErrStockTooHigh,
	bulletin.ErrEmptyNote,
	bulletin.ErrNoteTooLong,
	bulletin.ErrDateRequired,
	sale.ErrEmptyCart,
	sale.ErrInvalidLine,
	sale.ErrInvalidPayment,
	sale.ErrAppointmentRequired,
	sale.ErrMemoTooLong,
	tax.ErrNegativeRate,
	tax.ErrNegativeAmount,
	tax.ErrInvalidRate,
	tax.ErrAmountOverflow,
	timegrid.ErrInvalidBusinessHours,
}

// Classify marks err with the error class callers branch on. Errors already
// carrying a class are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errs.IsAny(err, ErrValidation, ErrNotFound, ErrConflict, ErrAlreadyCompleted, ErrConcurrency, ErrPartialCommit) {
		return err
	}
	switch {
	case errs.IsAny(err, domainValidationErrors...):
		return errs.Mark(err, ErrValidation)
	case errs.Is(err, appointment.ErrNotActive):
		return errs.Mark(err, ErrAlreadyCompleted)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrConcurrency)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, ErrValidation)
	}
	return err
}

func ValidationErrorf(format string, args ...any) error {
	return errs.Mark(errs.Newf(format, args...), ErrValidation)
}

func NotFoundErrorf(format string, args ...any) error {
	return errs.Mark(errs.Newf(format, args...), ErrNotFound)
}
