package pdf

import (
	"fmt"
	"strings"

	appbilling "github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/infrastructure/document"
	"github.com/guidefari/invoicing/pkg/config"

	"github.com/rs/zerolog"
)

var (
	_ appbilling.PDFEngine = (*ChromiumEngine)(nil)
	_ appbilling.PDFEngine = (*MarotoEngine)(nil)
)

// NewEngine elige el motor según PDF_ENGINE (chromium | maroto).
func NewEngine(cfg config.PDFConfig, log zerolog.Logger) (appbilling.PDFEngine, error) {
	switch strings.ToLower(cfg.Engine) {
	case "", "chromium":
		launcher := ChromeLauncher{ExecPath: cfg.ChromePath, NoSandbox: cfg.NoSandbox, Log: log}
		return NewChromiumEngine(launcher, ChromiumOptions{
			RenderTimeout:  cfg.RenderTimeout,
			ContentTimeout: cfg.ContentTimeout,
		}, log), nil
	case "maroto":
		return NewMarotoEngine(), nil
	default:
		return nil, fmt.Errorf("motor de PDF desconocido %q (use chromium o maroto)", cfg.Engine)
	}
}

// PageOptions traduce la configuración a opciones de página.
func PageOptions(cfg config.PDFConfig) document.PageOptions {
	opts := document.DefaultPageOptions()
	if cfg.Format != "" {
		opts.Format = cfg.Format
	}
	opts.PrintBackground = cfg.PrintBackground
	return opts
}
