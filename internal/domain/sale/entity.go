package sale

import (
	"math"
	"strings"
	"time"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/tax"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart           = errs.New("cart must contain at least one line")
	ErrInvalidLine         = errs.New("invalid cart line")
	ErrInvalidPayment      = errs.New("invalid payment method")
	ErrAppointmentRequired = errs.New("sale must reference an appointment")
	ErrMemoTooLong         = errs.New("memo is too long")
)

const (
	MaxMemoRunes      = 1000
	menuNameSeparator = ", "

	// MaxUnitPrice and MaxQuantity keep every line total well inside int64.
	MaxUnitPrice = catalog.MaxPrice
	MaxQuantity  = 10_000
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentQR    PaymentMethod = "qr"
	PaymentOther PaymentMethod = "other"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	case PaymentQR:
		return PaymentQR, nil
	case PaymentOther:
		return PaymentOther, nil
	default:
		return "", errs.Wrapf(ErrInvalidPayment, "method=%q", s)
	}
}

// CartLine is a resolved, transient line assembled during one checkout.
type CartLine struct {
	ItemType  catalog.ItemType
	ItemID    uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
	TaxRate   tax.Rate
}

// Subtotal is UnitPrice * Quantity, rejected when the product leaves int64.
func (l CartLine) Subtotal() (int64, error) {
	qty := int64(l.Quantity)
	if l.UnitPrice < 0 || qty < 0 {
		return 0, errs.Wrapf(ErrInvalidLine, "%s: negative price or quantity", l.Name)
	}
	if qty != 0 && l.UnitPrice > math.MaxInt64/qty {
		return 0, errs.Wrapf(ErrInvalidLine, "%s: %d x %d overflows", l.Name, l.UnitPrice, qty)
	}
	return l.UnitPrice * qty, nil
}

func (l CartLine) Validate() error {
	switch {
	case l.ItemType != catalog.ItemService && l.ItemType != catalog.ItemProduct:
		return errs.Wrapf(ErrInvalidLine, "item type %q", l.ItemType)
	case l.ItemID == uuid.Nil:
		return errs.Wrap(ErrInvalidLine, "item id is required")
	case strings.TrimSpace(l.Name) == "":
		return errs.Wrap(ErrInvalidLine, "item name is required")
	case l.Quantity <= 0 || l.Quantity > MaxQuantity:
		return errs.Wrapf(ErrInvalidLine, "%s: quantity %d", l.Name, l.Quantity)
	case l.UnitPrice < 0 || l.UnitPrice > MaxUnitPrice:
		return errs.Wrapf(ErrInvalidLine, "%s: unit price %d", l.Name, l.UnitPrice)
	}
	return nil
}

type Cart []CartLine

func (c Cart) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCart
	}
	for i, l := range c {
		if err := l.Validate(); err != nil {
			return errs.Wrapf(err, "line %d", i+1)
		}
	}
	return nil
}

// Totals sums the cart and backs tax out per rate group.
func (c Cart) Totals() (tax.Breakdown, error) {
	portions := make([]tax.Portion, len(c))
	for i, l := range c {
		amount, err := l.Subtotal()
		if err != nil {
			return tax.Breakdown{}, errs.Wrapf(err, "line %d", i+1)
		}
		portions[i] = tax.Portion{Rate: l.TaxRate, Amount: amount}
	}
	sum, _, err := tax.SplitPortions(portions)
	if errs.Is(err, tax.ErrAmountOverflow) {
		return tax.Breakdown{}, errs.Mark(err, ErrInvalidLine)
	}
	return sum, err
}

// ProductLines returns the lines that move inventory.
func (c Cart) ProductLines() []CartLine {
	var out []CartLine
	for _, l := range c {
		if l.ItemType == catalog.ItemProduct {
			out = append(out, l)
		}
	}
	return out
}

// MenuName joins service names for display, falling back to every line name.
func (c Cart) MenuName() string {
	var names []string
	for _, l := range c {
		if l.ItemType == catalog.ItemService {
			names = append(names, l.Name)
		}
	}
	if len(names) == 0 {
		for _, l := range c {
			names = append(names, l.Name)
		}
	}
	return strings.Join(names, menuNameSeparator)
}

type LineItem struct {
	ID        uuid.UUID
	ItemType  catalog.ItemType
	ItemID    uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
	TaxRate   tax.Rate
	LineTotal int64
}

// Sale is append-only once persisted.
type Sale struct {
	id            uuid.UUID
	shopID        uuid.UUID
	appointmentID uuid.UUID
	customerID    *uuid.UUID
	customerName  string
	staffID       uuid.UUID
	menuName      string
	amounts       tax.Breakdown
	paymentMethod PaymentMethod
	memo          string
	lines         []LineItem
	createdAt     time.Time
}

type NewParams struct {
	ShopID        uuid.UUID
	AppointmentID uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	StaffID       uuid.UUID
	PaymentMethod PaymentMethod
	Memo          string
}

func New(p NewParams, cart Cart, now time.Time) (*Sale, error) {
	if p.AppointmentID == uuid.Nil {
		return nil, ErrAppointmentRequired
	}
	if _, err := ParsePaymentMethod(string(p.PaymentMethod)); err != nil {
		return nil, err
	}
	memo := strings.TrimSpace(p.Memo)
	if len([]rune(memo)) > MaxMemoRunes {
		return nil, ErrMemoTooLong
	}
	if err := cart.Validate(); err != nil {
		return nil, err
	}
	amounts, err := cart.Totals()
	if err != nil {
		return nil, err
	}

	saleID := uuid.New()
	lines := make([]LineItem, len(cart))
	for i, l := range cart {
		// Totals already proved every subtotal fits.
		lineTotal, _ := l.Subtotal()
		lines[i] = LineItem{
			ID:        uuid.New(),
			ItemType:  l.ItemType,
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			TaxRate:   l.TaxRate,
			LineTotal: lineTotal,
		}
	}

	return &Sale{
		id:            saleID,
		shopID:        p.ShopID,
		appointmentID: p.AppointmentID,
		customerID:    p.CustomerID,
		customerName:  p.CustomerName,
		staffID:       p.StaffID,
		menuName:      cart.MenuName(),
		amounts:       amounts,
		paymentMethod: p.PaymentMethod,
		memo:          memo,
		lines:         lines,
		createdAt:     now,
	}, nil
}

func (s *Sale) ID() uuid.UUID {
	return s.id
}

func (s *Sale) ShopID() uuid.UUID {
	return s.shopID
}

func (s *Sale) AppointmentID() uuid.UUID {
	return s.appointmentID
}

func (s *Sale) CustomerID() *uuid.UUID {
	return s.customerID
}

func (s *Sale) CustomerName() string {
	return s.customerName
}

func (s *Sale) StaffID() uuid.UUID {
	return s.staffID
}

func (s *Sale) MenuName() string {
	return s.menuName
}

func (s *Sale) Amounts() tax.Breakdown {
	return s.amounts
}

func (s *Sale) PaymentMethod() PaymentMethod {
	return s.paymentMethod
}

func (s *Sale) Memo() string {
	return s.memo
}

func (s *Sale) Lines() []LineItem {
	return s.lines
}

func (s *Sale) CreatedAt() time.Time {
	return s.createdAt
}
