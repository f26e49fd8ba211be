package fakeweb

import (
	"context"
	"fmt"
	"sync"

	"frota/internal/domain"
	"frota/internal/ports"
)

// Element is a scripted ports.Element
type Element struct {
	mu       sync.Mutex
	children map[string][]*Element
	page     *Page

	Checkbox  bool
	IsChecked bool
	Disabled  bool
	Hidden    bool
	Name      string
	Value     string
	Label     string

	// ClickErr is returned by Click when set
	ClickErr error
	// StaleFor makes the next n calls fail with domain.ErrStaleReference
	StaleFor int
	// StaleOnUse is like StaleFor but only for Checked, Click, Fill and Press
	StaleOnUse int

	OnClick func()
	OnFill  func(value string)
	OnPress func(key string)
	// OnStale runs after a use failed because of StaleOnUse
	OnStale func()
}

var _ ports.Element = (*Element)(nil)

// NewElement creates a visible enabled element
func NewElement(name string) *Element {
	return &Element{Name: name, Label: name}
}

// NewCheckbox creates a checkbox in the given state
func NewCheckbox(name string, checked bool) *Element {
	return &Element{Name: name, Checkbox: true, IsChecked: checked}
}

// WithText sets the element's text content
func (e *Element) WithText(text string) *Element {
	e.Label = text
	return e
}

// Add registers a child element under a locator scoped to this element
func (e *Element) Add(loc domain.Locator, els ...*Element) *Element {
	sel, err := loc.Compile()
	if err != nil {
		panic(fmt.Sprintf("fakeweb: %v", err))
	}
	e.mu.Lock()
	if e.children == nil {
		e.children = make(map[string][]*Element)
	}
	e.children[sel.Expr] = els
	page := e.page
	e.mu.Unlock()
	for _, c := range els {
		c.attach(page)
	}
	return e
}

// attach links e and its children to the page that records their actions
func (e *Element) attach(p *Page) {
	e.mu.Lock()
	e.page = p
	children := make([]*Element, 0, len(e.children))
	for _, list := range e.children {
		children = append(children, list...)
	}
	e.mu.Unlock()
	for _, c := range children {
		c.attach(p)
	}
}

// Show makes the element visible
func (e *Element) Show() {
	e.mu.Lock()
	e.Hidden = false
	e.mu.Unlock()
}

// Hide makes the element invisible
func (e *Element) Hide() {
	e.mu.Lock()
	e.Hidden = true
	e.mu.Unlock()
}

// SetChecked changes the checkbox state
func (e *Element) SetChecked(v bool) {
	e.mu.Lock()
	e.IsChecked = v
	e.mu.Unlock()
}

func (e *Element) stale() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.StaleFor > 0 {
		e.StaleFor--
		return domain.ErrStaleReference
	}
	return nil
}

func (e *Element) staleUse() error {
	if err := e.stale(); err != nil {
		return err
	}
	e.mu.Lock()
	if e.StaleOnUse == 0 {
		e.mu.Unlock()
		return nil
	}
	e.StaleOnUse--
	onStale := e.OnStale
	e.mu.Unlock()
	if onStale != nil {
		onStale()
	}
	return domain.ErrStaleReference
}

func (e *Element) record(action string) {
	if e.page != nil {
		e.page.record(action)
	}
}

// Checked implements ports.Element
func (e *Element) Checked(context.Context) (bool, error) {
	if err := e.staleUse(); err != nil {
		return false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.IsChecked, nil
}

// Click implements ports.Element. Checkboxes toggle.
func (e *Element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.staleUse(); err != nil {
		return err
	}
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.mu.Lock()
	if e.Checkbox {
		e.IsChecked = !e.IsChecked
	}
	onClick := e.OnClick
	e.mu.Unlock()
	e.record("click " + e.Name)
	if onClick != nil {
		onClick()
	}
	return nil
}

// Enabled implements ports.Element
func (e *Element) Enabled(context.Context) (bool, error) {
	if err := e.stale(); err != nil {
		return false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.Disabled, nil
}

// Fill implements ports.Element
func (e *Element) Fill(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.staleUse(); err != nil {
		return err
	}
	e.mu.Lock()
	e.Value = value
	onFill := e.OnFill
	e.mu.Unlock()
	e.record("fill " + e.Name + ":" + value)
	if onFill != nil {
		onFill(value)
	}
	return nil
}

// Press implements ports.Element
func (e *Element) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.staleUse(); err != nil {
		return err
	}
	e.record("press " + e.Name + ":" + key)
	if e.OnPress != nil {
		e.OnPress(key)
	}
	return nil
}

// Query implements ports.Element
func (e *Element) Query(ctx context.Context, sel domain.Selector) ([]ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.stale(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return toPorts(e.children[sel.Expr]), nil
}

// Text implements ports.Element
func (e *Element) Text(context.Context) (string, error) {
	if err := e.stale(); err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Label, nil
}

// Visible implements ports.Element
func (e *Element) Visible(context.Context) (bool, error) {
	if err := e.stale(); err != nil {
		return false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.Hidden, nil
}
