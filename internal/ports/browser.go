package ports

import (
	"context"

	"frota/internal/domain"
)

// Element is a resolved handle to one UI element.
// Any method may return domain.ErrStaleReference once the element has been
// detached from the document.
type Element interface {
	Checked(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
	Enabled(ctx context.Context) (bool, error)
	Fill(ctx context.Context, value string) error
	Press(ctx context.Context, key string) error
	Query(ctx context.Context, sel domain.Selector) ([]Element, error)
	Text(ctx context.Context) (string, error)
	Visible(ctx context.Context) (bool, error)
}

// Page is the browser tab all workflows drive
type Page interface {
	Goto(ctx context.Context, url string) error
	Query(ctx context.Context, sel domain.Selector) ([]Element, error)
	Reload(ctx context.Context) error
	Screenshot(ctx context.Context, path string) error
	URL() string
}

// Browser owns the underlying browser process
type Browser interface {
	Close() error
	NewPage(ctx context.Context) (Page, error)
}

// BrowserOptions configures how a Browser is launched
type BrowserOptions struct {
	Headless bool
	SlowMo   float64
	UserData string
}

// BrowserLauncher starts a Browser for a given driver
type BrowserLauncher interface {
	Launch(ctx context.Context, opts BrowserOptions) (Browser, error)
}
