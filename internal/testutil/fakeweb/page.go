// Package fakeweb is an in-memory browser used by tests. Elements are
// registered under the compiled selector expression that finds them.
package fakeweb

import (
	"context"
	"fmt"
	"sync"

	"frota/internal/domain"
	"frota/internal/ports"
)

// Page is a scripted ports.Page
type Page struct {
	mu       sync.Mutex
	elements map[string][]*Element
	url      string

	// Actions records every interaction as "verb name[:arg]"
	Actions []string
	// GotoErr is returned by Goto when set
	GotoErr error
	// OnGoto runs after the URL changes
	OnGoto func(url string)
	// OnReload runs on Reload
	OnReload func()
	// Queries counts Query calls per expression
	Queries map[string]int
}

var _ ports.Page = (*Page)(nil)

// NewPage creates an empty page at url
func NewPage(url string) *Page {
	return &Page{
		elements: make(map[string][]*Element),
		Queries:  make(map[string]int),
		url:      url,
	}
}

// Set registers the elements a locator resolves to, replacing earlier ones.
// It panics on a locator that does not compile.
func (p *Page) Set(loc domain.Locator, els ...*Element) {
	sel, err := loc.Compile()
	if err != nil {
		panic(fmt.Sprintf("fakeweb: %v", err))
	}
	p.SetExpr(sel.Expr, els...)
}

// SetExpr registers elements under a raw selector expression
func (p *Page) SetExpr(expr string, els ...*Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, el := range els {
		el.attach(p)
	}
	if len(els) == 0 {
		delete(p.elements, expr)
		return
	}
	p.elements[expr] = els
}

// Clear removes everything a locator resolves to
func (p *Page) Clear(loc domain.Locator) {
	p.Set(loc)
}

// Navigate changes the URL without running OnGoto
func (p *Page) Navigate(url string) {
	p.mu.Lock()
	p.url = url
	p.mu.Unlock()
}

// Count returns how many recorded actions equal action
func (p *Page) Count(action string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, a := range p.Actions {
		if a == action {
			n++
		}
	}
	return n
}

func (p *Page) record(action string) {
	p.mu.Lock()
	p.Actions = append(p.Actions, action)
	p.mu.Unlock()
}

// Goto implements ports.Page
func (p *Page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.GotoErr != nil {
		return p.GotoErr
	}
	p.Navigate(url)
	p.record("goto " + url)
	if p.OnGoto != nil {
		p.OnGoto(url)
	}
	return nil
}

// Query implements ports.Page
func (p *Page) Query(ctx context.Context, sel domain.Selector) ([]ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Queries[sel.Expr]++
	return toPorts(p.elements[sel.Expr]), nil
}

// Reload implements ports.Page
func (p *Page) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.record("reload")
	if p.OnReload != nil {
		p.OnReload()
	}
	return nil
}

// Screenshot implements ports.Page
func (p *Page) Screenshot(_ context.Context, path string) error {
	p.record("screenshot " + path)
	return nil
}

// URL implements ports.Page
func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func toPorts(els []*Element) []ports.Element {
	out := make([]ports.Element, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out
}
