package billing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/repository"
	"github.com/guidefari/invoicing/internal/infrastructure/document"

	"github.com/rs/zerolog"
)

// PDFUseCase genera el PDF de una factura: carga datos, renderiza el documento
// y delega la conversión al motor configurado.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	profileRepo  repository.BusinessProfileRepository
	renderer     DocumentRenderer
	engine       PDFEngine
	logos        LogoLoader
	page         document.PageOptions
	metrics      Metrics
	log          zerolog.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
// logos puede ser nil: la factura se genera sin logo.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	profileRepo repository.BusinessProfileRepository,
	renderer DocumentRenderer,
	engine PDFEngine,
	logos LogoLoader,
	page document.PageOptions,
	metrics Metrics,
	log zerolog.Logger,
) *PDFUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		profileRepo:  profileRepo,
		renderer:     renderer,
		engine:       engine,
		logos:        logos,
		page:         page,
		metrics:      metrics,
		log:          log,
	}
}

// DownloadInvoicePDF devuelve los bytes del PDF y el nombre sugerido invoice-<número>.pdf.
//
// Retorna:
//   - *domain.NotFoundError      si falta la factura, el cliente o el perfil del emisor
//     (en ese caso el motor nunca se inicia).
//   - *domain.RenderEngineError  si el motor falla en alguna etapa.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID int64) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetWithLineItems(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", &domain.NotFoundError{Entity: "invoice", ID: strconv.FormatInt(invoiceID, 10)}
	}

	// ── 2. Cargar cliente ─────────────────────────────────────────────────────
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", &domain.NotFoundError{Entity: "customer", ID: strconv.FormatInt(inv.CustomerID, 10)}
	}

	// ── 3. Cargar perfil del emisor ───────────────────────────────────────────
	profile, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener perfil del emisor: %w", err)
	}
	if profile == nil {
		return nil, "", &domain.NotFoundError{Entity: "business_profile"}
	}

	// ── 4. Logo (opcional; un fallo no detiene la generación) ─────────────────
	var logo *document.Logo
	if uc.logos != nil && profile.LogoPath != nil && *profile.LogoPath != "" {
		logo, err = uc.logos.Load(*profile.LogoPath)
		if err != nil {
			uc.log.Warn().Err(err).Str("logo_path", *profile.LogoPath).Msg("no se pudo cargar el logo, se genera sin él")
			logo = nil
		}
	}

	// ── 5. Renderizar documento ───────────────────────────────────────────────
	rendered, err := uc.renderer.Render(document.Snapshot{
		Invoice:  inv,
		Customer: customer,
		Profile:  profile,
		Logo:     logo,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: renderizar documento: %w", err)
	}

	// ── 6. Generar PDF ────────────────────────────────────────────────────────
	start := time.Now()
	pdfBytes, err = uc.engine.Render(ctx, rendered, uc.page)
	uc.metrics.PDFRendered(uc.engine.Name(), err, time.Since(start))
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	uc.log.Info().
		Int64("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("engine", uc.engine.Name()).
		Int("bytes", len(pdfBytes)).
		Dur("elapsed", time.Since(start)).
		Msg("pdf generado")

	return pdfBytes, fmt.Sprintf("invoice-%s.pdf", inv.InvoiceNumber), nil
}
