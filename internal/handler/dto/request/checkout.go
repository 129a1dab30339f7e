package request

import (
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutLineRequest struct {
	Type      string    `json:"type" binding:"required"`
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	UnitPrice *int64    `json:"unit_price,omitempty"`
	Quantity  int       `json:"quantity" binding:"required"`
}

type CheckoutRequest struct {
	Lines         []CheckoutLineRequest `json:"lines" binding:"required,dive"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	Memo          string                `json:"memo"`
}

// ToParams leaves line and payment validation to the checkout command.
func (r CheckoutRequest) ToParams(appointmentID uuid.UUID) commands.CheckoutParams {
	lines := make([]commands.CheckoutLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = commands.CheckoutLine{
			Type:      catalog.ItemType(l.Type),
			ItemID:    l.ItemID,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	return commands.CheckoutParams{
		AppointmentID: appointmentID,
		Lines:         lines,
		PaymentMethod: r.PaymentMethod,
		Memo:          r.Memo,
	}
}
