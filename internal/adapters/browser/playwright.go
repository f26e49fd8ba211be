package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// PlaywrightLauncher starts Chromium through playwright-go
type PlaywrightLauncher struct {
	actionTimeout time.Duration
}

var _ ports.BrowserLauncher = (*PlaywrightLauncher)(nil)

// NewPlaywrightLauncher creates a launcher whose element actions give up after actionTimeout
func NewPlaywrightLauncher(actionTimeout time.Duration) *PlaywrightLauncher {
	if actionTimeout <= 0 {
		actionTimeout = defaultActionTimeout
	}
	return &PlaywrightLauncher{actionTimeout: actionTimeout}
}

// InstallPlaywright downloads the driver and Chromium
func InstallPlaywright() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  true,
	})
}

// Launch implements ports.BrowserLauncher. A UserData directory keeps cookies
// between runs, so a manual login survives until the portal expires it.
func (l *PlaywrightLauncher) Launch(ctx context.Context, opts ports.BrowserOptions) (ports.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logging.Logger.Info("Starting playwright", "headless", opts.Headless, "user_data", opts.UserData)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright (run `frota browser install` first): %w", err)
	}

	bctx, err := pw.Chromium.LaunchPersistentContext(opts.UserData, playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(opts.SlowMo),
		Viewport: &playwright.Size{Width: 1440, Height: 900},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	return &playwrightBrowser{ctx: bctx, pw: pw, timeout: l.actionTimeout}, nil
}

type playwrightBrowser struct {
	ctx     playwright.BrowserContext
	pw      *playwright.Playwright
	timeout time.Duration
}

func (b *playwrightBrowser) NewPage(ctx context.Context) (ports.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// a persistent context opens with one blank tab already
	if pages := b.ctx.Pages(); len(pages) > 0 {
		return &playwrightPage{page: pages[0], timeout: b.timeout}, nil
	}
	page, err := b.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &playwrightPage{page: page, timeout: b.timeout}, nil
}

func (b *playwrightBrowser) Close() error {
	err := b.ctx.Close()
	if stopErr := b.pw.Stop(); err == nil {
		err = stopErr
	}
	return err
}

type playwrightPage struct {
	page    playwright.Page
	timeout time.Duration
}

func (p *playwrightPage) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (p *playwrightPage) Query(ctx context.Context, sel domain.Selector) ([]ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := p.page.QuerySelectorAll(sel.String())
	if err != nil {
		return nil, playwrightErr(err)
	}
	return wrapHandles(handles, p.timeout), nil
}

func (p *playwrightPage) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (p *playwrightPage) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
		Path:     playwright.String(path),
	})
	return err
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

type playwrightElement struct {
	handle  playwright.ElementHandle
	timeout time.Duration
}

func wrapHandles(handles []playwright.ElementHandle, timeout time.Duration) []ports.Element {
	els := make([]ports.Element, len(handles))
	for i, h := range handles {
		els[i] = &playwrightElement{handle: h, timeout: timeout}
	}
	return els
}

func (e *playwrightElement) ms() *float64 {
	return playwright.Float(float64(e.timeout.Milliseconds()))
}

func (e *playwrightElement) Checked(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	v, err := e.handle.IsChecked()
	return v, playwrightErr(err)
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return playwrightErr(e.handle.Click(playwright.ElementHandleClickOptions{Timeout: e.ms()}))
}

func (e *playwrightElement) Enabled(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	v, err := e.handle.IsEnabled()
	return v, playwrightErr(err)
}

func (e *playwrightElement) Fill(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return playwrightErr(e.handle.Fill(value, playwright.ElementHandleFillOptions{Timeout: e.ms()}))
}

func (e *playwrightElement) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return playwrightErr(e.handle.Press(key, playwright.ElementHandlePressOptions{Timeout: e.ms()}))
}

func (e *playwrightElement) Query(ctx context.Context, sel domain.Selector) ([]ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := e.handle.QuerySelectorAll(scoped(sel).String())
	if err != nil {
		return nil, playwrightErr(err)
	}
	return wrapHandles(handles, e.timeout), nil
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := e.handle.InnerText()
	return v, playwrightErr(err)
}

func (e *playwrightElement) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	v, err := e.handle.IsVisible()
	return v, playwrightErr(err)
}

// playwrightErr maps detached-handle errors to domain.ErrStaleReference
func playwrightErr(err error) error {
	if err == nil {
		return nil
	}
	if isStaleMessage(err.Error()) {
		return fmt.Errorf("%w: %v", domain.ErrStaleReference, err)
	}
	return err
}
