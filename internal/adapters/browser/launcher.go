// Package browser drives a real Chromium through playwright-go or go-rod
package browser

import (
	"fmt"
	"strings"
	"time"

	"frota/internal/config"
	"frota/internal/domain"
	"frota/internal/ports"
)

const defaultActionTimeout = 10 * time.Second

// NewLauncher returns the launcher for the configured driver
func NewLauncher(driver string, actionTimeout time.Duration) (ports.BrowserLauncher, error) {
	switch driver {
	case config.DriverPlaywright:
		return NewPlaywrightLauncher(actionTimeout), nil
	case config.DriverRod, "":
		return NewRodLauncher(actionTimeout), nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", domain.ErrConfiguration, driver)
	}
}

var staleMessages = []string{
	"not attached to the dom",
	"element is not attached",
	"execution context was destroyed",
	"cannot find context with specified id",
	"could not find node with given id",
	"node with given id does not belong to the document",
	"object has been disposed",
	"jshandle is disposed",
}

func isStaleMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, s := range staleMessages {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// scoped makes an absolute XPath relative to the element it is queried from
func scoped(sel domain.Selector) domain.Selector {
	if sel.Engine == domain.EngineXPath && strings.HasPrefix(sel.Expr, "/") {
		sel.Expr = "." + sel.Expr
	}
	return sel
}
