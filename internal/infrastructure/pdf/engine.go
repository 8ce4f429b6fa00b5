// Package pdf convierte documentos HTML de factura en PDF.
//
// ChromiumEngine maneja un navegador headless externo como una máquina de estados
// (ver Stage): cada llamada a Render lanza su propio proceso, abre una página, carga
// el contenido, imprime y cierra. El cierre ocurre siempre, también ante errores o
// cancelación del contexto. MarotoEngine dibuja la misma vista sin proceso externo.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/infrastructure/document"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyDocument = errors.New("documento HTML vacío")
	ErrEmptyOutput   = errors.New("el motor devolvió un PDF vacío")
)

// Launcher inicia un proceso de navegador.
type Launcher interface {
	Launch(ctx context.Context) (Browser, error)
}

// Browser proceso de navegador en ejecución. Close termina el proceso y es idempotente.
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page pestaña del navegador.
type Page interface {
	// SetContent carga el HTML y espera a que el documento y sus recursos estén listos.
	SetContent(ctx context.Context, html string) error
	PrintToPDF(ctx context.Context, opts document.PageOptions) ([]byte, error)
}

// ChromiumOptions límites de tiempo de una sesión; cero significa sin límite propio.
type ChromiumOptions struct {
	RenderTimeout  time.Duration // sesión completa
	ContentTimeout time.Duration // espera de carga del contenido
}

// ChromiumEngine implementa billing.PDFEngine sobre un navegador headless.
// No comparte estado entre llamadas: es seguro usarlo de forma concurrente.
type ChromiumEngine struct {
	launcher Launcher
	opts     ChromiumOptions
	log      zerolog.Logger
}

// NewChromiumEngine construye el motor.
func NewChromiumEngine(launcher Launcher, opts ChromiumOptions, log zerolog.Logger) *ChromiumEngine {
	return &ChromiumEngine{launcher: launcher, opts: opts, log: log.With().Str("engine", "chromium").Logger()}
}

// Name identifica el motor en logs y métricas.
func (e *ChromiumEngine) Name() string { return "chromium" }

// Render ejecuta la sesión completa. Los errores son *domain.RenderEngineError con la
// etapa en la que falló; si el contexto expiró, la causa incluye context.DeadlineExceeded.
func (e *ChromiumEngine) Render(ctx context.Context, doc *document.Rendered, opts document.PageOptions) ([]byte, error) {
	if doc == nil || doc.HTML == "" {
		return nil, &domain.RenderEngineError{Stage: string(StageIdle), Err: ErrEmptyDocument}
	}
	if e.opts.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.RenderTimeout)
		defer cancel()
	}

	s := &session{
		lc:  newLifecycle(),
		log: e.log.With().Str("render_id", uuid.NewString()).Logger(),
	}
	start := time.Now()
	out, err := s.run(ctx, e.launcher, doc.HTML, opts, e.opts.ContentTimeout)
	if err != nil {
		s.log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("falló la generación del PDF")
		return nil, err
	}
	s.log.Debug().Int("bytes", len(out)).Dur("elapsed", time.Since(start)).Msg("PDF generado")
	return out, nil
}

// session una ejecución del ciclo de vida.
type session struct {
	lc      *lifecycle
	browser Browser
	log     zerolog.Logger
}

func (s *session) run(ctx context.Context, launcher Launcher, html string, opts document.PageOptions, contentTimeout time.Duration) ([]byte, error) {
	defer s.close()

	// ── Launching ─────────────────────────────────────────────────────────────
	if err := s.enter(StageLaunching); err != nil {
		return nil, err
	}
	browser, err := launcher.Launch(ctx)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.browser = browser

	// ── PageOpen ──────────────────────────────────────────────────────────────
	if err := s.enter(StagePageOpen); err != nil {
		return nil, err
	}
	page, err := browser.NewPage(ctx)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	// ── ContentSet ────────────────────────────────────────────────────────────
	if err := s.enter(StageContentSet); err != nil {
		return nil, err
	}
	contentCtx := ctx
	if contentTimeout > 0 {
		var cancel context.CancelFunc
		contentCtx, cancel = context.WithTimeout(ctx, contentTimeout)
		defer cancel()
	}
	if err := page.SetContent(contentCtx, html); err != nil {
		return nil, s.fail(contentCtx, err)
	}

	// ── Rendering ─────────────────────────────────────────────────────────────
	if err := s.enter(StageRendering); err != nil {
		return nil, err
	}
	out, err := page.PrintToPDF(ctx, opts)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	if len(out) == 0 {
		return nil, s.fail(ctx, ErrEmptyOutput)
	}
	return out, nil
}

func (s *session) enter(stage Stage) error {
	if err := s.lc.advance(stage); err != nil {
		return &domain.RenderEngineError{Stage: string(s.lc.current()), Err: err}
	}
	s.log.Debug().Str("stage", string(stage)).Msg("etapa del motor")
	return nil
}

// fail envuelve err con la etapa actual; si el contexto expiró lo incluye como causa.
func (s *session) fail(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return &domain.RenderEngineError{Stage: string(s.lc.current()), Err: err}
}

// close libera el navegador. Un error al cerrar se registra y no reemplaza el resultado.
func (s *session) close() {
	_ = s.lc.advance(StageClosed)
	if s.browser == nil {
		return
	}
	if err := s.browser.Close(); err != nil {
		s.log.Warn().Err(err).Msg("error al cerrar el navegador (ignorado)")
	}
}
