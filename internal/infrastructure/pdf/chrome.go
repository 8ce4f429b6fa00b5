package pdf

import (
	"context"
	"errors"
	"sync"

	"github.com/guidefari/invoicing/internal/infrastructure/document"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// ChromeLauncher inicia Chrome/Chromium headless vía DevTools (chromedp).
type ChromeLauncher struct {
	ExecPath  string // vacío = buscar en el PATH
	NoSandbox bool   // necesario en contenedores sin user namespaces
	Log       zerolog.Logger
}

// Launch arranca el proceso. El proceso queda atado a ctx: si ctx se cancela, se termina.
func (l ChromeLauncher) Launch(ctx context.Context) (Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("font-render-hinting", "none"),
	)
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}
	if l.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(l.Log.Printf),
	)
	// Run sin acciones inicia el proceso y la primera pestaña.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}
	return &chromeBrowser{ctx: browserCtx, cancel: browserCancel, allocCancel: allocCancel}, nil
}

type chromeBrowser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	mu     sync.Mutex
	tabs   []context.CancelFunc
	closed bool
}

func (b *chromeBrowser) NewPage(ctx context.Context) (Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, errors.New("navegador cerrado")
	}
	tabCtx, cancel := chromedp.NewContext(b.ctx)
	b.tabs = append(b.tabs, cancel)

	// El primer Run debe ir sobre tabCtx: adjunta la pestaña y su bucle de mensajes vive con él.
	stop := context.AfterFunc(ctx, cancel)
	err := chromedp.Run(tabCtx)
	stop()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}

	p := &chromePage{ctx: tabCtx}
	if err := p.run(ctx, chromedp.Navigate("about:blank")); err != nil {
		return nil, err
	}
	return p, nil
}

// Close cierra pestañas y navegador; el cancel del allocator mata el proceso si sigue vivo.
func (b *chromeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, cancel := range b.tabs {
		cancel()
	}
	err := chromedp.Cancel(b.ctx)
	b.cancel()
	b.allocCancel()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

type chromePage struct {
	ctx context.Context
}

// run ejecuta acciones en la pestaña respetando también la cancelación de ctx.
func (p *chromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func (p *chromePage) SetContent(ctx context.Context, html string) error {
	return p.run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (p *chromePage) PrintToPDF(ctx context.Context, opts document.PageOptions) ([]byte, error) {
	width, height := opts.PaperSizeMM()
	var buf []byte
	err := p.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().
			WithPrintBackground(opts.PrintBackground).
			WithPaperWidth(document.MMToInches(width)).
			WithPaperHeight(document.MMToInches(height)).
			WithMarginTop(document.MMToInches(opts.MarginTop)).
			WithMarginRight(document.MMToInches(opts.MarginRight)).
			WithMarginBottom(document.MMToInches(opts.MarginBottom)).
			WithMarginLeft(document.MMToInches(opts.MarginLeft)).
			Do(ctx)
		return err
	}))
	return buf, err
}
