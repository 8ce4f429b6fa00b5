package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/application/usecase"
	"github.com/guidefari/invoicing/internal/infrastructure/document"
	"github.com/guidefari/invoicing/internal/infrastructure/metrics"
	infrapdf "github.com/guidefari/invoicing/internal/infrastructure/pdf"
	"github.com/guidefari/invoicing/internal/infrastructure/storage"
	httpRouter "github.com/guidefari/invoicing/internal/interfaces/http"
	"github.com/guidefari/invoicing/pkg/config"
	"github.com/guidefari/invoicing/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Str("pdf_engine", cfg.PDF.Engine).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg.DB, log.Named("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}
	defer repos.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.New(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas")
	}

	renderer, err := document.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar plantilla de factura")
	}
	engine, err := infrapdf.NewEngine(cfg.PDF, log.Named("pdf"))
	if err != nil {
		log.Fatal().Err(err).Msg("motor de PDF")
	}

	invoiceUC := billing.NewInvoiceUseCase(
		repos.TxRunner, repos.Invoices, repos.Customers, repos.Products, repos.BusinessProfile,
		recorder, log.Named("invoices"),
		billing.InvoiceOptions{NumberAttempts: cfg.Billing.NumberAttempts},
	)
	pdfUC := billing.NewPDFUseCase(
		repos.Invoices, repos.Customers, repos.BusinessProfile,
		renderer, engine, document.FileLogoLoader{BaseDir: cfg.PDF.AssetsDir},
		infrapdf.PageOptions(cfg.PDF), recorder, log.Named("pdf"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.PDF.RenderTimeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Invoicing API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:  invoiceUC,
		PDFUC:      pdfUC,
		CustomerUC: billing.NewCustomerUseCase(repos.Customers),
		ProductUC:  usecase.NewProductUseCase(repos.Products),
		ProfileUC:  billing.NewBusinessProfileUseCase(repos.BusinessProfile),
		Gatherer:   reg,
		Service:    cfg.App.Name,
		Log:        log.Named("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
