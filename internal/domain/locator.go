package domain

import (
	"fmt"
	"strings"
)

// LocatorKind names a strategy for finding one UI element
type LocatorKind string

const (
	LocatorAttribute LocatorKind = "attribute"
	LocatorCSS       LocatorKind = "css"
	LocatorID        LocatorKind = "id"
	LocatorRelative  LocatorKind = "relative"
	LocatorText      LocatorKind = "text"
	LocatorXPath     LocatorKind = "xpath"
)

// SelectorEngine is the query language a compiled locator is expressed in
type SelectorEngine string

const (
	EngineCSS   SelectorEngine = "css"
	EngineXPath SelectorEngine = "xpath"
)

// Selector is a locator compiled for a browser driver
type Selector struct {
	Engine SelectorEngine
	Expr   string
}

// String renders the selector in playwright's "engine=expr" notation
func (s Selector) String() string {
	return string(s.Engine) + "=" + s.Expr
}

// Locator describes how to find one UI element.
//
// Value holds the id, css, xpath, text, attribute value or (for relative
// locators) the anchor text. Path is the XPath step sequence walked from the
// anchor, e.g. "ancestor::tr//input[@type='checkbox']".
// Any field may contain {name} placeholders resolved by Bind.
type Locator struct {
	Attribute string
	Exact     bool
	Kind      LocatorKind
	Path      string
	Tag       string
	Value     string
}

// ByID locates an element by its id attribute
func ByID(id string) Locator { return Locator{Kind: LocatorID, Value: id} }

// ByCSS locates an element with a CSS selector
func ByCSS(css string) Locator { return Locator{Kind: LocatorCSS, Value: css} }

// ByXPath locates an element with an XPath expression
func ByXPath(xpath string) Locator { return Locator{Kind: LocatorXPath, Value: xpath} }

// ByAttribute locates a tag whose attribute equals value
func ByAttribute(tag, attribute, value string) Locator {
	return Locator{Kind: LocatorAttribute, Tag: tag, Attribute: attribute, Value: value}
}

// ByText locates a tag whose text contains (or equals, when exact) the given text
func ByText(tag, text string, exact bool) Locator {
	return Locator{Kind: LocatorText, Tag: tag, Value: text, Exact: exact}
}

// ByRelative locates an element by walking path from the element containing anchor text
func ByRelative(anchorText, path string) Locator {
	return Locator{Kind: LocatorRelative, Value: anchorText, Path: path}
}

// Bind returns a copy with every {name} placeholder replaced from vars.
// Unknown placeholders are left untouched.
func (l Locator) Bind(vars map[string]string) Locator {
	if len(vars) == 0 {
		return l
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)
	l.Attribute = r.Replace(l.Attribute)
	l.Path = r.Replace(l.Path)
	l.Tag = r.Replace(l.Tag)
	l.Value = r.Replace(l.Value)
	return l
}

// Compile translates the locator into a selector both drivers understand
func (l Locator) Compile() (Selector, error) {
	switch l.Kind {
	case LocatorID:
		if l.Value == "" {
			return Selector{}, fmt.Errorf("%w: id locator without value", ErrConfiguration)
		}
		return Selector{Engine: EngineCSS, Expr: fmt.Sprintf(`[id="%s"]`, cssEscape(l.Value))}, nil
	case LocatorCSS:
		if l.Value == "" {
			return Selector{}, fmt.Errorf("%w: css locator without value", ErrConfiguration)
		}
		return Selector{Engine: EngineCSS, Expr: l.Value}, nil
	case LocatorXPath:
		if l.Value == "" {
			return Selector{}, fmt.Errorf("%w: xpath locator without value", ErrConfiguration)
		}
		return Selector{Engine: EngineXPath, Expr: l.Value}, nil
	case LocatorAttribute:
		if l.Attribute == "" {
			return Selector{}, fmt.Errorf("%w: attribute locator without attribute name", ErrConfiguration)
		}
		return Selector{Engine: EngineCSS, Expr: fmt.Sprintf(`%s[%s="%s"]`, l.Tag, l.Attribute, cssEscape(l.Value))}, nil
	case LocatorText:
		tag := l.Tag
		if tag == "" {
			tag = "*"
		}
		if l.Exact {
			return Selector{Engine: EngineXPath, Expr: fmt.Sprintf("//%s[normalize-space(.)=%s]", tag, XPathLiteral(l.Value))}, nil
		}
		return Selector{Engine: EngineXPath, Expr: fmt.Sprintf("//%s[contains(text(), %s)]", tag, XPathLiteral(l.Value))}, nil
	case LocatorRelative:
		if l.Path == "" {
			return Selector{}, fmt.Errorf("%w: relative locator without path", ErrConfiguration)
		}
		tag := l.Tag
		if tag == "" {
			tag = "*"
		}
		return Selector{Engine: EngineXPath, Expr: fmt.Sprintf("//%s[contains(text(), %s)]/%s", tag, XPathLiteral(l.Value), strings.TrimPrefix(l.Path, "/"))}, nil
	default:
		return Selector{}, fmt.Errorf("%w: unknown locator kind %q", ErrConfiguration, l.Kind)
	}
}

// String describes the locator for logs
func (l Locator) String() string {
	sel, err := l.Compile()
	if err != nil {
		return fmt.Sprintf("%s(invalid)", l.Kind)
	}
	return sel.String()
}

// BindAll binds every candidate of a fallback chain
func BindAll(candidates []Locator, vars map[string]string) []Locator {
	bound := make([]Locator, len(candidates))
	for i, c := range candidates {
		bound[i] = c.Bind(vars)
	}
	return bound
}

// XPathLiteral quotes s as an XPath 1.0 string literal.
// Strings holding both quote kinds are emitted as concat().
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

func cssEscape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}
