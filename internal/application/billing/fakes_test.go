package billing_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/repository"
	"github.com/guidefari/invoicing/internal/infrastructure/document"

	"github.com/shopspring/decimal"
)

// ─── Repositorios en memoria ──────────────────────────────────────────────────

type memInvoices struct {
	mu      sync.Mutex
	byID    map[int64]*entity.Invoice
	nextID  int64
	creates int
	// dupNext hace que los próximos N inserts fallen como duplicado.
	dupNext int
}

func newMemInvoices() *memInvoices {
	return &memInvoices{byID: map[int64]*entity.Invoice{}}
}

func (m *memInvoices) ListInvoiceNumbers(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, inv := range m.byID {
		if len(inv.InvoiceNumber) >= len(prefix) && inv.InvoiceNumber[:len(prefix)] == prefix {
			out = append(out, inv.InvoiceNumber)
		}
	}
	return out, nil
}

func (m *memInvoices) CreateWithLineItems(_ context.Context, inv *entity.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.dupNext > 0 {
		m.dupNext--
		return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
	}
	for _, existing := range m.byID {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
	}
	m.nextID++
	inv.ID = m.nextID
	for i := range inv.LineItems {
		inv.LineItems[i].ID = int64(i + 1)
		inv.LineItems[i].InvoiceID = inv.ID
	}
	cp := *inv
	cp.LineItems = append([]entity.InvoiceLineItem(nil), inv.LineItems...)
	m.byID[inv.ID] = &cp
	return nil
}

func (m *memInvoices) GetWithLineItems(_ context.Context, id int64) (*entity.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvoices) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range m.byID {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memInvoices) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// memTx ejecuta fn directamente sobre el repo en memoria.
type memTx struct {
	repo  repository.InvoiceRepository
	calls int
}

func (t *memTx) RunInvoice(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	t.calls++
	return fn(t.repo)
}

type memCustomers struct {
	byID   map[int64]*entity.Customer
	nextID int64
	// getErr hace fallar todas las lecturas por ID.
	getErr error
}

func newMemCustomers(list ...*entity.Customer) *memCustomers {
	m := &memCustomers{byID: map[int64]*entity.Customer{}}
	for _, c := range list {
		m.byID[c.ID] = c
		if c.ID > m.nextID {
			m.nextID = c.ID
		}
	}
	return m
}

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	m.nextID++
	c.ID = m.nextID
	m.byID[c.ID] = c
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.byID[id], nil
}

func (m *memCustomers) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range m.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memProducts struct {
	byID  map[int64]*entity.Product
	reads int
}

func newMemProducts(list ...*entity.Product) *memProducts {
	m := &memProducts{byID: map[int64]*entity.Product{}}
	for _, p := range list {
		m.byID[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	p.ID = int64(len(m.byID) + 1)
	m.byID[p.ID] = p
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	m.reads++
	return m.byID[id], nil
}

func (m *memProducts) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

type memProfile struct {
	profile *entity.BusinessProfile
}

func (m *memProfile) Get(context.Context) (*entity.BusinessProfile, error) {
	if m.profile == nil {
		return nil, nil
	}
	cp := *m.profile
	return &cp, nil
}

func (m *memProfile) Save(_ context.Context, p *entity.BusinessProfile) error {
	cp := *p
	m.profile = &cp
	return nil
}

// ─── Dobles del flujo PDF ─────────────────────────────────────────────────────

type fakeEngine struct {
	calls int
	err   error
	doc   *document.Rendered
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) Render(_ context.Context, doc *document.Rendered, _ document.PageOptions) ([]byte, error) {
	e.calls++
	e.doc = doc
	if e.err != nil {
		return nil, e.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type failingLogos struct{ calls int }

func (l *failingLogos) Load(path string) (*document.Logo, error) {
	l.calls++
	return nil, fmt.Errorf("abrir %s: no existe", path)
}

type countingMetrics struct {
	created    int
	collisions int
	rendered   int
	renderErrs int
}

func (m *countingMetrics) InvoiceCreated()         { m.created++ }
func (m *countingMetrics) InvoiceNumberCollision() { m.collisions++ }
func (m *countingMetrics) PDFRendered(_ string, err error, _ time.Duration) {
	m.rendered++
	if err != nil {
		m.renderErrs++
	}
}

// ─── Datos ────────────────────────────────────────────────────────────────────

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleProfile() *entity.BusinessProfile {
	return &entity.BusinessProfile{
		CompanyName:       "Fari Digital",
		StreetAddress:     "12 Long Street",
		City:              "Cape Town",
		PostalCode:        "8001",
		Country:           "South Africa",
		VATNumber:         "4123456789",
		Email:             "billing@fari.dev",
		Phone:             "+27 21 555 0100",
		AccountHolderName: "Fari Digital (Pty) Ltd",
		BankName:          "FNB",
		AccountNumber:     "62812345678",
		BranchCode:        "250655",
		DefaultVATRate:    ptr(dec("15")),
	}
}

func sampleCustomer() *entity.Customer {
	return &entity.Customer{ID: 1, Name: "Acme Corp", City: "Johannesburg", Country: "South Africa"}
}
