package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Portal is the data half of a target web application: where it lives, how
// to log in and the locator candidate lists every workflow step uses.
type Portal struct {
	AppPrefix    string
	BaseURL      string
	Labels       map[string]string
	LoginMarkers []string
	LoginURL     string
	Locators     map[string][]Locator
	Name         string
	// Pages holds the URLs of portal screens workflows navigate to, by key
	Pages      map[string]string
	SuccessURL string
}

// Page returns the URL registered under key, falling back to BaseURL
func (p Portal) Page(key string) string {
	if u, ok := p.Pages[key]; ok && u != "" {
		return u
	}
	return p.BaseURL
}

// Candidates returns the fallback chain registered under key
func (p Portal) Candidates(key string) []Locator {
	return p.Locators[key]
}

// Label returns a UI label, or fallback when the profile does not override it
func (p Portal) Label(key, fallback string) string {
	if v, ok := p.Labels[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Require fails with ErrConfiguration naming every missing or invalid locator key
func (p Portal) Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		candidates := p.Locators[k]
		if len(candidates) == 0 {
			missing = append(missing, k)
			continue
		}
		for i, c := range candidates {
			// placeholders are bound per item, compile must still succeed on the template
			if _, err := c.Compile(); err != nil {
				return fmt.Errorf("portal %s: locator %s[%d]: %w", p.Name, k, i, err)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: portal %s is missing locators: %s", ErrConfiguration, p.Name, strings.Join(missing, ", "))
	}
	return nil
}

// HasLocators reports whether every key has at least one candidate
func (p Portal) HasLocators(keys ...string) bool {
	for _, k := range keys {
		if len(p.Locators[k]) == 0 {
			return false
		}
	}
	return true
}
