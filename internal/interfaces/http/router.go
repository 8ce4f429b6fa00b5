package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/application/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC  *billing.InvoiceUseCase
	PDFUC      *billing.PDFUseCase
	CustomerUC *billing.CustomerUseCase
	ProductUC  *usecase.ProductUseCase
	ProfileUC  *billing.BusinessProfileUseCase
	// Gatherer si no es nil publica /metrics.
	Gatherer prometheus.Gatherer
	Service  string
	Log      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Service})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.Log)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Perfil del emisor (registro único)
	profileHandler := NewBusinessProfileHandler(deps.ProfileUC, deps.Log)
	api.Get("/business-profile", profileHandler.Get)
	api.Put("/business-profile", profileHandler.Put)
}
