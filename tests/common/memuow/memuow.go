//go:build unit || e2e

// Package memuow is an in-memory shared.UnitOfWork. Every Within call works on a
// snapshot that is discarded when the callback fails.
package memuow

import (
	"context"
	"sort"
	"sync"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/bulletin"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/sale"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// Operation names accepted by FailOn.
const (
	OpAppointmentCreate = "appointments.create"
	OpAppointmentUpdate = "appointments.update"
	OpSaleInsert        = "sales.insert"
	OpSaleLines         = "sales.insert_line_items"
	OpDecrementStock    = "catalog.decrement_stock"
	OpOutbox            = "outbox.enqueue"
	OpHolidayMark       = "holidays.mark"
	OpSetStock          = "catalog.set_stock"
	OpCatalogWrite      = "catalog.write"
	OpNotePost          = "bulletin.post"
)

type Event struct {
	ShopID  uuid.UUID
	Kind    string
	Payload []byte
	RunAt   time.Time
}

type customer struct {
	shopID uuid.UUID
	name   string
}

type state struct {
	appointments map[uuid.UUID]appointment.Appointment
	holidays     map[string]bool
	staff        map[uuid.UUID]catalog.Staff
	services     map[uuid.UUID]*catalog.Service
	products     map[uuid.UUID]catalog.Product
	customers    map[uuid.UUID]customer
	sales        map[uuid.UUID]*sale.Sale
	lines        map[uuid.UUID][]sale.LineItem
	notes        []*bulletin.Note
	events       []Event
}

func newState() state {
	return state{
		appointments: map[uuid.UUID]appointment.Appointment{},
		holidays:     map[string]bool{},
		staff:        map[uuid.UUID]catalog.Staff{},
		services:     map[uuid.UUID]*catalog.Service{},
		products:     map[uuid.UUID]catalog.Product{},
		customers:    map[uuid.UUID]customer{},
		sales:        map[uuid.UUID]*sale.Sale{},
		lines:        map[uuid.UUID][]sale.LineItem{},
	}
}

func (s state) clone() state {
	c := newState()
	c.notes = append([]*bulletin.Note(nil), s.notes...)
	c.events = append([]Event(nil), s.events...)
	for k, v := range s.staff {
		c.staff[k] = v
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	for k, v := range s.holidays {
		c.holidays[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = v
	}
	return c
}

type UoW struct {
	mu sync.Mutex
	st state

	// FailOn makes the named operation fail with the queued errors, one per call.
	FailOn map[string][]error
	// CommitErr is returned, marked as a commit failure, after a successful callback.
	CommitErr error
	// BeforeCommit runs after the callback succeeded and before state is published.
	BeforeCommit func()

	Commits   int
	Rollbacks int
	Locks     []string
}

func New() *UoW {
	return &UoW{
		st:     newState(),
		FailOn: map[string][]error{},
	}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	work := u.st.clone()
	t := &tx{u: u, st: &work}
	if err := fn(ctx, t); err != nil {
		u.Rollbacks++
		return err
	}
	if u.BeforeCommit != nil {
		u.BeforeCommit()
	}
	if u.CommitErr != nil {
		err := u.CommitErr
		u.CommitErr = nil
		u.Rollbacks++
		return errs.Mark(err, shared.ErrTxCommit)
	}
	u.st = work
	u.Commits++
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UoW) AddStaff(s catalog.Staff) {
	u.st.staff[s.ID] = s
}

func (u *UoW) AddService(s *catalog.Service) {
	u.st.services[s.ID()] = s
}

func (u *UoW) AddCustomer(shopID uuid.UUID, name string) uuid.UUID {
	id := uuid.New()
	u.st.customers[id] = customer{shopID: shopID, name: name}
	return id
}

func (u *UoW) Staff(id uuid.UUID) (catalog.Staff, bool) {
	s, ok := u.st.staff[id]
	return s, ok
}

func (u *UoW) Service(id uuid.UUID) (*catalog.Service, bool) {
	s, ok := u.st.services[id]
	return s, ok
}

func (u *UoW) Notes() []*bulletin.Note {
	return u.st.notes
}

func (u *UoW) AddProduct(p *catalog.Product) {
	u.st.products[p.ID()] = *p
}

func (u *UoW) AddAppointment(a *appointment.Appointment) {
	u.st.appointments[a.ID()] = *a
}

func (u *UoW) SetHoliday(shopID, staffID uuid.UUID, date string) {
	u.st.holidays[holidayKey(shopID, staffID, date)] = true
}

func (u *UoW) Appointment(id uuid.UUID) (*appointment.Appointment, bool) {
	a, ok := u.st.appointments[id]
	return &a, ok
}

func (u *UoW) Appointments() []*appointment.Appointment {
	out := make([]*appointment.Appointment, 0, len(u.st.appointments))
	for _, a := range u.st.appointments {
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot().Start().Before(out[j].Slot().Start()) })
	return out
}

func (u *UoW) Product(id uuid.UUID) *catalog.Product {
	p := u.st.products[id]
	return &p
}

// Customers maps every stored customer to its name, across shops.
func (u *UoW) Customers() map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(u.st.customers))
	for id, c := range u.st.customers {
		out[id] = c.name
	}
	return out
}

func (u *UoW) Sales() []*sale.Sale {
	out := make([]*sale.Sale, 0, len(u.st.sales))
	for _, s := range u.st.sales {
		out = append(out, s)
	}
	return out
}

func (u *UoW) LineItems(saleID uuid.UUID) []sale.LineItem {
	return u.st.lines[saleID]
}

func (u *UoW) Events() []Event {
	return u.st.events
}

func (u *UoW) IsHoliday(shopID, staffID uuid.UUID, date string) bool {
	return u.st.holidays[holidayKey(shopID, staffID, date)]
}

func (u *UoW) fail(op string) error {
	queue := u.FailOn[op]
	if len(queue) == 0 {
		return nil
	}
	u.FailOn[op] = queue[1:]
	return queue[0]
}

func holidayKey(shopID, staffID uuid.UUID, date string) string {
	return shopID.String() + "|" + staffID.String() + "|" + date
}

type tx struct {
	u  *UoW
	st *state
}

func (t *tx) Appointments() shared.AppointmentRepository { return appointmentRepo{t} }
func (t *tx) Holidays() shared.HolidayRepository { return holidayRepo{t} }
func (t *tx) Catalog() shared.CatalogRepository { return catalogRepo{t} }
func (t *tx) Customers() shared.CustomerRepository { return customerRepo{t} }
func (t *tx) Sales() shared.SaleRepository { return saleRepo{t} }
func (t *tx) Outbox() shared.OutboxRepository { return outboxRepo{t} }
func (t *tx) Bulletin() shared.BulletinRepository { return bulletinRepo{t} }
func (t *tx) Locks() shared.ScheduleLocker { return lockRepo{t} }
func (t *tx) DB() db.DBTX { return nil }

type appointmentRepo struct{ t *tx }

func (r appointmentRepo) Create(_ context.Context, _ db.DBTX, a *appointment.Appointment) error {
	if err := r.t.u.fail(OpAppointmentCreate); err != nil {
		return err
	}
	if err := r.exclusion(a); err != nil {
		return err
	}
	r.t.st.appointments[a.ID()] = *a
	return nil
}

func (r appointmentRepo) FindByIDForUpdate(_ context.Context, _ db.DBTX, shopID, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.t.st.appointments[id]
	if !ok || a.ShopID() != shopID {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return &a, nil
}

func (r appointmentRepo) ListActiveForStaffDay(_ context.Context, _ db.DBTX, shopID, staffID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range r.t.st.appointments {
		if a.ShopID() != shopID || a.StaffID() != staffID || !a.IsActive() {
			continue
		}
		if a.Slot().Start().Before(to) && a.Slot().End().After(from) {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot().Start().Before(out[j].Slot().Start()) })
	return out, nil
}

func (r appointmentRepo) Update(_ context.Context, _ db.DBTX, a *appointment.Appointment, expectedVersion int) error {
	if err := r.t.u.fail(OpAppointmentUpdate); err != nil {
		return err
	}
	stored, ok := r.t.st.appointments[a.ID()]
	if !ok || stored.Version() != expectedVersion || !stored.IsActive() {
		return infra.WrapRepoErr("appointment changed concurrently", nil, infra.KindConflict)
	}
	if err := r.exclusion(a); err != nil {
		return err
	}
	r.t.st.appointments[a.ID()] = *appointment.Reconstruct(
		a.ID(), a.ShopID(), a.StaffID(), a.CustomerID(), a.CustomerName(), a.ServiceID(), a.MenuName(),
		a.Slot(), a.Status(), a.Override(), expectedVersion+1, a.CreatedAt(), a.UpdatedAt(),
	)
	return nil
}

// exclusion mirrors the database exclusion constraint on active, non-override rows.
func (r appointmentRepo) exclusion(a *appointment.Appointment) error {
	if !a.IsActive() || a.Override() {
		return nil
	}
	for id, other := range r.t.st.appointments {
		if id == a.ID() || !other.IsActive() || other.Override() || other.StaffID() != a.StaffID() {
			continue
		}
		if other.Slot().Overlaps(a.Slot()) {
			return infra.WrapRepoErr("appointment overlaps", nil, infra.KindConflict)
		}
	}
	return nil
}

type holidayRepo struct{ t *tx }

func (r holidayRepo) IsHoliday(_ context.Context, _ db.DBTX, shopID, staffID uuid.UUID, date string) (bool, error) {
	return r.t.st.holidays[holidayKey(shopID, staffID, date)], nil
}

func (r holidayRepo) Mark(_ context.Context, _ db.DBTX, shopID, staffID uuid.UUID, date string) error {
	if err := r.t.u.fail(OpHolidayMark); err != nil {
		return err
	}
	r.t.st.holidays[holidayKey(shopID, staffID, date)] = true
	return nil
}

func (r holidayRepo) Clear(_ context.Context, _ db.DBTX, shopID, staffID uuid.UUID, date string) error {
	delete(r.t.st.holidays, holidayKey(shopID, staffID, date))
	return nil
}

type catalogRepo struct{ t *tx }

func (r catalogRepo) StaffByID(_ context.Context, _ db.DBTX, shopID, id uuid.UUID) (*catalog.Staff, error) {
	s, ok := r.t.st.staff[id]
	if !ok || s.ShopID != shopID {
		return nil, infra.WrapRepoErr("staff not found", nil, infra.KindNotFound)
	}
	return &s, nil
}

func (r catalogRepo) ServiceByID(_ context.Context, _ db.DBTX, shopID, id uuid.UUID) (*catalog.Service, error) {
	s, ok := r.t.st.services[id]
	if !ok || s.ShopID() != shopID {
		return nil, infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return s, nil
}

func (r catalogRepo) ProductByIDForUpdate(ctx context.Context, db db.DBTX, shopID, id uuid.UUID) (*catalog.Product, error) {
	return r.ProductByID(ctx, db, shopID, id)
}

func (r catalogRepo) SetStock(_ context.Context, _ db.DBTX, shopID, productID uuid.UUID, stock int) error {
	if err := r.t.u.fail(OpSetStock); err != nil {
		return err
	}
	p, ok := r.t.st.products[productID]
	if !ok || p.ShopID() != shopID {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	updated, err := catalog.NewProduct(p.ID(), p.ShopID(), p.Name(), p.Price(), p.TaxRate(), stock, p.Category())
	if err != nil {
		return infra.WrapRepoErr("stock violates check constraint", err, infra.KindDBFailure)
	}
	r.t.st.products[productID] = *updated
	return nil
}

func (r catalogRepo) CreateStaff(_ context.Context, _ db.DBTX, s *catalog.Staff) error {
	if err := r.t.u.fail(OpCatalogWrite); err != nil {
		return err
	}
	r.t.st.staff[s.ID] = *s
	return nil
}

func (r catalogRepo) UpdateStaff(_ context.Context, _ db.DBTX, s *catalog.Staff) error {
	if err := r.t.u.fail(OpCatalogWrite); err != nil {
		return err
	}
	stored, ok := r.t.st.staff[s.ID]
	if !ok || stored.ShopID != s.ShopID {
		return infra.WrapRepoErr("staff not found", nil, infra.KindNotFound)
	}
	r.t.st.staff[s.ID] = *s
	return nil
}

func (r catalogRepo) CreateService(_ context.Context, _ db.DBTX, s *catalog.Service) error {
	if err := r.t.u.fail(OpCatalogWrite); err != nil {
		return err
	}
	r.t.st.services[s.ID()] = s
	return nil
}

func (r catalogRepo) CreateProduct(_ context.Context, _ db.DBTX, p *catalog.Product) error {
	if err := r.t.u.fail(OpCatalogWrite); err != nil {
		return err
	}
	r.t.st.products[p.ID()] = *p
	return nil
}

func (r catalogRepo) ProductByID(_ context.Context, _ db.DBTX, shopID, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.t.st.products[id]
	if !ok || p.ShopID() != shopID {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return &p, nil
}

func (r catalogRepo) DecrementStock(_ context.Context, _ db.DBTX, shopID, productID uuid.UUID, qty int) (catalog.StockChange, error) {
	if err := r.t.u.fail(OpDecrementStock); err != nil {
		return catalog.StockChange{}, err
	}
	p, ok := r.t.st.products[productID]
	if !ok || p.ShopID() != shopID {
		return catalog.StockChange{}, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	change, err := p.Decrement(qty)
	if err != nil {
		return catalog.StockChange{}, err
	}
	r.t.st.products[productID] = p
	return change, nil
}

type customerRepo struct{ t *tx }

func (r customerRepo) Create(_ context.Context, _ db.DBTX, shopID uuid.UUID, name string) (uuid.UUID, error) {
	id := uuid.New()
	r.t.st.customers[id] = customer{shopID: shopID, name: name}
	return id, nil
}

func (r customerRepo) Exists(_ context.Context, _ db.DBTX, shopID, id uuid.UUID) (bool, error) {
	c, ok := r.t.st.customers[id]
	return ok && c.shopID == shopID, nil
}

type saleRepo struct{ t *tx }

func (r saleRepo) Insert(_ context.Context, _ db.DBTX, s *sale.Sale) error {
	if err := r.t.u.fail(OpSaleInsert); err != nil {
		return err
	}
	for _, existing := range r.t.st.sales {
		if existing.AppointmentID() == s.AppointmentID() {
			return infra.WrapRepoErr("sale already exists for appointment", nil, infra.KindDuplicateKey)
		}
	}
	r.t.st.sales[s.ID()] = s
	return nil
}

func (r saleRepo) InsertLineItems(_ context.Context, _ db.DBTX, saleID uuid.UUID, lines []sale.LineItem) error {
	if err := r.t.u.fail(OpSaleLines); err != nil {
		return err
	}
	r.t.st.lines[saleID] = append([]sale.LineItem(nil), lines...)
	return nil
}

type outboxRepo struct{ t *tx }

func (r outboxRepo) Enqueue(_ context.Context, _ db.DBTX, shopID uuid.UUID, kind, _ string, payload []byte, runAt time.Time) error {
	if err := r.t.u.fail(OpOutbox); err != nil {
		return err
	}
	r.t.st.events = append(r.t.st.events, Event{ShopID: shopID, Kind: kind, Payload: payload, RunAt: runAt})
	return nil
}

type bulletinRepo struct{ t *tx }

func (r bulletinRepo) Post(_ context.Context, _ db.DBTX, n *bulletin.Note) error {
	if err := r.t.u.fail(OpNotePost); err != nil {
		return err
	}
	r.t.st.notes = append(r.t.st.notes, n)
	return nil
}

type lockRepo struct{ t *tx }

func (r lockRepo) LockStaffDay(_ context.Context, _ db.DBTX, shopID, staffID uuid.UUID, date string) error {
	r.t.u.Locks = append(r.t.u.Locks, shopID.String()+":"+staffID.String()+":"+date)
	return nil
}

// CatalogReads serves snapshots straight from the store and records invalidations.
type CatalogReads struct {
	u           *UoW
	Invalidated []uuid.UUID
}

func (u *UoW) CatalogReads() *CatalogReads {
	return &CatalogReads{u: u}
}

func (c *CatalogReads) ServiceSnapshot(_ context.Context, shopID, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	s, ok := c.u.st.services[id]
	if !ok || s.ShopID() != shopID {
		return nil, infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return shared.ServiceSnapshotOf(s), nil
}

func (c *CatalogReads) ProductSnapshot(_ context.Context, shopID, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := c.u.st.products[id]
	if !ok || p.ShopID() != shopID {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return shared.ProductSnapshotOf(&p), nil
}

func (c *CatalogReads) InvalidateProduct(_ context.Context, _, id uuid.UUID) error {
	c.Invalidated = append(c.Invalidated, id)
	return nil
}
