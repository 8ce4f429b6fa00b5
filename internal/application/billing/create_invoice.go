package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/invoicing"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InvoiceOptions parámetros opcionales del caso de uso.
type InvoiceOptions struct {
	NumberAttempts int
	Now            func() time.Time
}

// InvoiceUseCase crea y consulta facturas.
// Una factura se persiste completa (cabecera, líneas y número) o no se persiste.
type InvoiceUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	profileRepo  repository.BusinessProfileRepository
	resolver     *LineItemResolver
	allocator    *NumberAllocator
	metrics      Metrics
	log          zerolog.Logger
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	profileRepo repository.BusinessProfileRepository,
	metrics Metrics,
	log zerolog.Logger,
	opts InvoiceOptions,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		profileRepo:  profileRepo,
		resolver:     NewLineItemResolver(productRepo),
		allocator:    NewNumberAllocator(txRunner, opts.NumberAttempts, metrics, log),
		metrics:      metrics,
		log:          log,
		now:          now,
	}
}

// CreateInvoice valida la solicitud, resuelve las líneas, calcula totales, asigna el
// número INV-NNN y guarda todo en una sola transacción.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID <= 0 {
		return nil, &domain.ValidationError{Field: "customer_id", Reason: "requerido"}
	}
	if strings.TrimSpace(in.DueDate) == "" {
		return nil, &domain.ValidationError{Field: "due_date", Reason: "requerida"}
	}
	dueDate, err := time.Parse(dto.DateLayout, in.DueDate)
	if err != nil {
		return nil, &domain.ValidationError{Field: "due_date", Reason: "formato esperado YYYY-MM-DD"}
	}
	if in.VATRate != nil && in.VATRate.IsNegative() {
		return nil, &domain.ValidationError{Field: "vat_rate", Reason: "no puede ser negativa"}
	}
	if len(in.LineItems) == 0 {
		return nil, &domain.ValidationError{Field: "line_items", Reason: "se requiere al menos una línea"}
	}

	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("crear factura: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Entity: "customer", ID: strconv.FormatInt(in.CustomerID, 10)}
	}

	items, err := uc.resolver.Resolve(ctx, in.LineItems)
	if err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}

	vatRate, err := uc.effectiveVATRate(ctx, in.VATRate)
	if err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}
	totals := invoicing.CalculateTotals(items, &vatRate)

	inv := &entity.Invoice{
		CustomerID: in.CustomerID,
		CreatedAt:  uc.now().UTC(),
		DueDate:    dueDate,
		VATRate:    &vatRate,
		Notes:      nonBlank(in.Notes),
		Subtotal:   totals.Subtotal,
		VATAmount:  totals.VATAmount,
		Total:      totals.Total,
		LineItems:  items,
	}
	if err := uc.allocator.Persist(ctx, inv); err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}

	uc.metrics.InvoiceCreated()
	uc.log.Info().
		Int64("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Int64("customer_id", inv.CustomerID).
		Str("total", inv.Total.String()).
		Msg("factura creada")

	return toInvoiceResponse(inv, customer.Name), nil
}

// effectiveVATRate usa la tasa de la solicitud, si no la del perfil, si no cero.
func (uc *InvoiceUseCase) effectiveVATRate(ctx context.Context, requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested != nil {
		return *requested, nil
	}
	profile, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("obtener perfil del emisor: %w", err)
	}
	if profile == nil || profile.DefaultVATRate == nil {
		return decimal.Zero, nil
	}
	return *profile.DefaultVATRate, nil
}

// GetInvoice devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetWithLineItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "invoice", ID: strconv.FormatInt(id, 10)}
	}
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: obtener cliente: %w", err)
	}
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	return toInvoiceResponse(inv, customerName), nil
}

// ListInvoices lista facturas (más recientes primero) sin sus líneas.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceSummaryResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, inv := range list {
		out.Items = append(out.Items, dto.InvoiceSummaryResponse{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerID:    inv.CustomerID,
			CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
			DueDate:       inv.DueDate.Format(dto.DateLayout),
			Total:         inv.Total,
		})
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice, customerName string) *dto.InvoiceResponse {
	lines := make([]dto.InvoiceLineResponse, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		lines = append(lines, dto.InvoiceLineResponse{
			ID:          li.ID,
			ProductID:   li.ProductID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			LineTotal:   li.LineTotal,
			Notes:       li.Notes,
		})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
		DueDate:       inv.DueDate.Format(dto.DateLayout),
		VATRate:       inv.VATRate,
		Notes:         inv.Notes,
		Subtotal:      inv.Subtotal,
		VATAmount:     inv.VATAmount,
		Total:         inv.Total,
		LineItems:     lines,
	}
}
