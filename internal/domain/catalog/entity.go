package catalog

import (
	"math"
	"strings"
	"time"

	"salon-scheduler/internal/domain/tax"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNameRequired    = errs.New("catalog item name is required")
	ErrNegativePrice   = errs.New("price must not be negative")
	ErrInvalidDuration = errs.New("service duration must be positive")
	ErrNegativeStock   = errs.New("stock must not be negative")
	ErrInvalidQuantity = errs.New("quantity must be positive")
	ErrInvalidItemType = errs.New("invalid item type")
	ErrNameTooLong     = errs.New("catalog item name is too long")
	ErrPriceTooHigh    = errs.New("price exceeds the supported maximum")
	ErrStockTooHigh    = errs.New("stock exceeds the supported maximum")
)

const (
	MaxNameRunes = 100
	// MaxPrice bounds catalog prices and checkout overrides, in minor units.
	MaxPrice int64 = 100_000_000_000
	// MaxStock is the largest value the int4 stock column holds.
	MaxStock         = math.MaxInt32
	DefaultStaffRole = "stylist"
)

type ItemType string

const (
	ItemService ItemType = "service"
	ItemProduct ItemType = "product"
)

func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemService, ItemProduct:
		return ItemType(s), nil
	default:
		return "", errs.Wrapf(ErrInvalidItemType, "type=%q", s)
	}
}

type Staff struct {
	ID     uuid.UUID
	ShopID uuid.UUID
	Name   string
	Role   string
}

func NewStaff(id, shopID uuid.UUID, name, role string) (*Staff, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultStaffRole
	}
	return &Staff{ID: id, ShopID: shopID, Name: name, Role: role}, nil
}

func (s *Staff) Rename(name string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	s.Name = name
	return nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if len([]rune(name)) > MaxNameRunes {
		return "", errs.Wrapf(ErrNameTooLong, "%d runes", len([]rune(name)))
	}
	return name, nil
}

func validPrice(kind, name string, price int64) error {
	if price < 0 {
		return errs.Wrapf(ErrNegativePrice, "%s %q", kind, name)
	}
	if price > MaxPrice {
		return errs.Wrapf(ErrPriceTooHigh, "%s %q price=%d", kind, name, price)
	}
	return nil
}

// Service is a bookable menu item. Price is tax inclusive, in minor units.
type Service struct {
	id              uuid.UUID
	shopID          uuid.UUID
	name            string
	price           int64
	durationMinutes int
	taxRate         tax.Rate
}

func NewService(id, shopID uuid.UUID, name string, price int64, durationMinutes int, rate tax.Rate) (*Service, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	if err := validPrice("service", name, price); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		return nil, errs.Wrapf(ErrInvalidDuration, "service %q duration=%d", name, durationMinutes)
	}
	return &Service{id: id, shopID: shopID, name: name, price: price, durationMinutes: durationMinutes, taxRate: rate}, nil
}

func (s *Service) ID() uuid.UUID {
	return s.id
}

func (s *Service) ShopID() uuid.UUID {
	return s.shopID
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) Price() int64 {
	return s.price
}

func (s *Service) DurationMinutes() int {
	return s.durationMinutes
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.durationMinutes) * time.Minute
}

func (s *Service) TaxRate() tax.Rate {
	return s.taxRate
}

// Product is a retail item with an integer stock that never drops below zero.
type Product struct {
	id       uuid.UUID
	shopID   uuid.UUID
	name     string
	price    int64
	taxRate  tax.Rate
	stock    int
	category string
}

func NewProduct(id, shopID uuid.UUID, name string, price int64, rate tax.Rate, stock int, category string) (*Product, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	if err := validPrice("product", name, price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, errs.Wrapf(ErrNegativeStock, "product %q stock=%d", name, stock)
	}
	if stock > MaxStock {
		return nil, errs.Wrapf(ErrStockTooHigh, "product %q stock=%d", name, stock)
	}
	return &Product{id: id, shopID: shopID, name: name, price: price, taxRate: rate, stock: stock, category: strings.TrimSpace(category)}, nil
}

func (p *Product) ID() uuid.UUID {
	return p.id
}

func (p *Product) ShopID() uuid.UUID {
	return p.shopID
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() int64 {
	return p.price
}

func (p *Product) TaxRate() tax.Rate {
	return p.taxRate
}

func (p *Product) Stock() int {
	return p.stock
}

func (p *Product) Category() string {
	return p.category
}

// StockChange records one stock movement. Requested is the quantity asked to be
// removed and is negative for a restock. Truncated is set when less than Requested
// was removed.
type StockChange struct {
	ProductID uuid.UUID
	Requested int
	Before    int
	After     int
}

func (c StockChange) Removed() int {
	return c.Before - c.After
}

func (c StockChange) Truncated() bool {
	return c.Removed() < c.Requested
}

// Decrement removes qty units, flooring at zero.
func (p *Product) Decrement(qty int) (StockChange, error) {
	if qty <= 0 {
		return StockChange{}, errs.Wrapf(ErrInvalidQuantity, "qty=%d", qty)
	}
	change := StockChange{ProductID: p.id, Requested: qty, Before: p.stock}
	p.stock = FloorStock(p.stock, qty)
	change.After = p.stock
	return change, nil
}

// Restock adds qty units.
func (p *Product) Restock(qty int) (StockChange, error) {
	if qty <= 0 {
		return StockChange{}, errs.Wrapf(ErrInvalidQuantity, "qty=%d", qty)
	}
	if qty > MaxStock-p.stock {
		return StockChange{}, errs.Wrapf(ErrStockTooHigh, "stock=%d qty=%d", p.stock, qty)
	}
	change := StockChange{ProductID: p.id, Requested: -qty, Before: p.stock}
	p.stock += qty
	change.After = p.stock
	return change, nil
}

// Adjust applies a signed manual correction: negative deltas decrement with the
// zero floor, positive ones restock.
func (p *Product) Adjust(delta int) (StockChange, error) {
	switch {
	case delta < 0:
		return p.Decrement(-delta)
	case delta > 0:
		return p.Restock(delta)
	default:
		return StockChange{}, errs.Wrap(ErrInvalidQuantity, "delta must not be zero")
	}
}

// FloorStock is the stock left after removing qty from current, never below zero.
func FloorStock(current, qty int) int {
	if qty >= current {
		return 0
	}
	return current - qty
}
