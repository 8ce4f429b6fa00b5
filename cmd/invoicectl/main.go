// invoicectl herramienta de línea de comandos sobre el mismo almacén que la API.
//
//	invoicectl next-number
//	invoicectl pdf --id 7 --out factura.pdf
//	invoicectl import-products --file productos.csv [--latin1]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/application/usecase"
	"github.com/guidefari/invoicing/internal/domain/numbering"
	"github.com/guidefari/invoicing/internal/infrastructure/document"
	infrapdf "github.com/guidefari/invoicing/internal/infrastructure/pdf"
	"github.com/guidefari/invoicing/internal/infrastructure/storage"
	"github.com/guidefari/invoicing/pkg/config"
	"github.com/guidefari/invoicing/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "invoicectl",
		Usage: "operaciones de facturación sin pasar por la API HTTP",
		Commands: []*cli.Command{
			{
				Name:   "next-number",
				Usage:  "muestra el próximo número de factura",
				Action: nextNumber,
			},
			{
				Name:  "pdf",
				Usage: "genera el PDF de una factura",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true, Usage: "ID de la factura"},
					&cli.StringFlag{Name: "out", Usage: "archivo de salida (por defecto invoice-<número>.pdf)"},
				},
				Action: generatePDF,
			},
			{
				Name:  "import-products",
				Usage: "carga productos desde un CSV name,default_price[,description]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Required: true, Usage: "ruta del CSV"},
					&cli.BoolFlag{Name: "latin1", Usage: "el CSV está en ISO-8859-1"},
				},
				Action: importProducts,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "invoicectl: %v\n", err)
		os.Exit(1)
	}
}

type env struct {
	cfg   *config.Config
	log   *logger.Logger
	repos *storage.Repositories
}

func open(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "invoicectl", Out: os.Stderr})
	repos, err := storage.Open(ctx, cfg.DB, log.Named("storage"))
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, repos: repos}, nil
}

func nextNumber(c *cli.Context) error {
	e, err := open(c.Context)
	if err != nil {
		return err
	}
	defer e.repos.Close()

	numbers, err := e.repos.Invoices.ListInvoiceNumbers(c.Context, numbering.Prefix)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, numbering.Next(numbers))
	return nil
}

func generatePDF(c *cli.Context) error {
	e, err := open(c.Context)
	if err != nil {
		return err
	}
	defer e.repos.Close()

	renderer, err := document.NewRenderer()
	if err != nil {
		return err
	}
	engine, err := infrapdf.NewEngine(e.cfg.PDF, e.log.Named("pdf"))
	if err != nil {
		return err
	}
	uc := billing.NewPDFUseCase(
		e.repos.Invoices, e.repos.Customers, e.repos.BusinessProfile,
		renderer, engine, document.FileLogoLoader{BaseDir: e.cfg.PDF.AssetsDir},
		infrapdf.PageOptions(e.cfg.PDF), nil, e.log.Named("pdf"),
	)
	data, filename, err := uc.DownloadInvoicePDF(c.Context, c.Int64("id"))
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = filename
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	fmt.Fprintf(c.App.Writer, "%s (%d bytes)\n", out, len(data))
	return nil
}

func importProducts(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	rows, err := parseProducts(f, c.Bool("latin1"))
	if err != nil {
		return err
	}

	e, err := open(c.Context)
	if err != nil {
		return err
	}
	defer e.repos.Close()

	uc := usecase.NewProductUseCase(e.repos.Products)
	for i, row := range rows {
		p, err := uc.Create(c.Context, row)
		if err != nil {
			return fmt.Errorf("fila %d (%s): %w", i+2, row.Name, err)
		}
		fmt.Fprintf(c.App.Writer, "%d\t%s\t%s\n", p.ID, p.Name, p.DefaultPrice.StringFixed(2))
	}
	e.log.Info().Int("productos", len(rows)).Msg("importación terminada")
	return nil
}
