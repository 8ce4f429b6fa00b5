package billing

import (
	"context"
	"time"

	"github.com/guidefari/invoicing/internal/domain/repository"
	"github.com/guidefari/invoicing/internal/infrastructure/document"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con el repositorio de facturas.
// Si fn retorna error se hace rollback; en caso contrario, commit.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// DocumentRenderer convierte la foto de una factura en HTML autocontenido más la vista formateada.
type DocumentRenderer interface {
	Render(snapshot document.Snapshot) (*document.Rendered, error)
}

// PDFEngine convierte un documento renderizado en bytes PDF.
// Los fallos se reportan como *domain.RenderEngineError con la etapa alcanzada.
type PDFEngine interface {
	Name() string
	Render(ctx context.Context, doc *document.Rendered, opts document.PageOptions) ([]byte, error)
}

// LogoLoader carga el logo del emisor a partir de la ruta guardada en el perfil.
type LogoLoader interface {
	Load(path string) (*document.Logo, error)
}

// Metrics registra eventos del flujo de facturación.
type Metrics interface {
	InvoiceCreated()
	InvoiceNumberCollision()
	PDFRendered(engine string, err error, elapsed time.Duration)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) InvoiceCreated() {}

func (NopMetrics) InvoiceNumberCollision() {}

func (NopMetrics) PDFRendered(string, error, time.Duration) {}
