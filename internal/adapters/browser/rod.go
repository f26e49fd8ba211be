package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// RodLauncher starts Chromium over the DevTools protocol with go-rod
type RodLauncher struct {
	actionTimeout time.Duration
}

var _ ports.BrowserLauncher = (*RodLauncher)(nil)

// NewRodLauncher creates a launcher whose element actions give up after actionTimeout
func NewRodLauncher(actionTimeout time.Duration) *RodLauncher {
	if actionTimeout <= 0 {
		actionTimeout = defaultActionTimeout
	}
	return &RodLauncher{actionTimeout: actionTimeout}
}

// Launch implements ports.BrowserLauncher
func (l *RodLauncher) Launch(ctx context.Context, opts ports.BrowserOptions) (ports.Browser, error) {
	logging.Logger.Info("Starting rod", "headless", opts.Headless, "user_data", opts.UserData)

	lc := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		Set("window-size", "1440,900")
	if opts.UserData != "" {
		lc = lc.UserDataDir(opts.UserData)
	}

	u, err := lc.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	b := rod.New().ControlURL(u)
	if opts.SlowMo > 0 {
		b = b.SlowMotion(time.Duration(opts.SlowMo) * time.Millisecond)
	}
	if err := b.Connect(); err != nil {
		lc.Kill()
		return nil, fmt.Errorf("failed to connect to chromium: %w", err)
	}

	return &rodBrowser{
		browser:    b,
		launcher:   lc,
		persistent: opts.UserData != "",
		timeout:    l.actionTimeout,
	}, nil
}

type rodBrowser struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	persistent bool
	timeout    time.Duration
}

func (b *rodBrowser) NewPage(ctx context.Context) (ports.Page, error) {
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &rodPage{page: page, timeout: b.timeout}, nil
}

func (b *rodBrowser) Close() error {
	err := b.browser.Close()
	// Cleanup also removes the user data dir, which holds the saved login
	if !b.persistent {
		b.launcher.Cleanup()
	}
	return err
}

type rodPage struct {
	page    *rod.Page
	timeout time.Duration
}

func (p *rodPage) Goto(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

func (p *rodPage) Query(ctx context.Context, sel domain.Selector) ([]ports.Element, error) {
	page := p.page.Context(ctx)
	var (
		els rod.Elements
		err error
	)
	if sel.Engine == domain.EngineXPath {
		els, err = page.ElementsX(sel.Expr)
	} else {
		els, err = page.Elements(sel.Expr)
	}
	if err != nil {
		return nil, rodErr(err)
	}
	return wrapRod(els, p.timeout), nil
}

func (p *rodPage) Reload(ctx context.Context) error {
	page := p.page.Context(ctx)
	if err := page.Reload(); err != nil {
		return err
	}
	return page.WaitLoad()
}

func (p *rodPage) Screenshot(ctx context.Context, path string) error {
	data, err := p.page.Context(ctx).Screenshot(true, nil)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (p *rodPage) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

type rodElement struct {
	el      *rod.Element
	timeout time.Duration
}

func wrapRod(els rod.Elements, timeout time.Duration) []ports.Element {
	out := make([]ports.Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el, timeout: timeout}
	}
	return out
}

// bounded scopes one element call to ctx and the action timeout
func (e *rodElement) bounded(ctx context.Context) (*rod.Element, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	return e.el.Context(ctx), cancel
}

func (e *rodElement) Checked(ctx context.Context) (bool, error) {
	el, cancel := e.bounded(ctx)
	defer cancel()
	res, err := el.Eval(`() => !!this.checked`)
	if err != nil {
		return false, rodErr(err)
	}
	return res.Value.Bool(), nil
}

func (e *rodElement) Click(ctx context.Context) error {
	el, cancel := e.bounded(ctx)
	defer cancel()
	return rodErr(el.Click(proto.InputMouseButtonLeft, 1))
}

func (e *rodElement) Enabled(ctx context.Context) (bool, error) {
	el, cancel := e.bounded(ctx)
	defer cancel()
	disabled, err := el.Disabled()
	return !disabled, rodErr(err)
}

func (e *rodElement) Fill(ctx context.Context, value string) error {
	el, cancel := e.bounded(ctx)
	defer cancel()
	if err := el.SelectAllText(); err != nil {
		return rodErr(err)
	}
	if value == "" {
		return rodErr(el.Type(input.Backspace))
	}
	return rodErr(el.Input(value))
}

func (e *rodElement) Press(ctx context.Context, key string) error {
	k, ok := rodKeys[key]
	if !ok {
		return fmt.Errorf("%w: unsupported key %q", domain.ErrConfiguration, key)
	}
	el, cancel := e.bounded(ctx)
	defer cancel()
	return rodErr(el.Type(k))
}

func (e *rodElement) Query(ctx context.Context, sel domain.Selector) ([]ports.Element, error) {
	el := e.el.Context(ctx)
	var (
		els rod.Elements
		err error
	)
	if sel.Engine == domain.EngineXPath {
		els, err = el.ElementsX(scoped(sel).Expr)
	} else {
		els, err = el.Elements(sel.Expr)
	}
	if err != nil {
		return nil, rodErr(err)
	}
	return wrapRod(els, e.timeout), nil
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	el, cancel := e.bounded(ctx)
	defer cancel()
	v, err := el.Text()
	return v, rodErr(err)
}

func (e *rodElement) Visible(ctx context.Context) (bool, error) {
	el, cancel := e.bounded(ctx)
	defer cancel()
	v, err := el.Visible()
	return v, rodErr(err)
}

var rodKeys = map[string]input.Key{
	"Backspace": input.Backspace,
	"Enter":     input.Enter,
	"Escape":    input.Escape,
	"Tab":       input.Tab,
}

// rodErr maps removed-node errors to domain.ErrStaleReference
func rodErr(err error) error {
	if err == nil {
		return nil
	}
	var notFound *rod.ObjectNotFoundError
	if errors.As(err, &notFound) || isStaleMessage(err.Error()) {
		return fmt.Errorf("%w: %v", domain.ErrStaleReference, err)
	}
	return err
}
