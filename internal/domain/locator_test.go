package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_Compile(t *testing.T) {
	tests := []struct {
		name     string
		locator  Locator
		expected Selector
	}{
		{"id", ByID("Username"), Selector{EngineCSS, `[id="Username"]`}},
		{"css", ByCSS("div.editor-section"), Selector{EngineCSS, "div.editor-section"}},
		{"xpath", ByXPath("//tr[1]"), Selector{EngineXPath, "//tr[1]"}},
		{"attribute", ByAttribute("input", "placeholder", "Buscar"), Selector{EngineCSS, `input[placeholder="Buscar"]`}},
		{"text contains", ByText("div", "Frota", false), Selector{EngineXPath, "//div[contains(text(), 'Frota')]"}},
		{"text exact", ByText("button", "Salvar", true), Selector{EngineXPath, "//button[normalize-space(.)='Salvar']"}},
		{"text any tag", ByText("", "Frota", false), Selector{EngineXPath, "//*[contains(text(), 'Frota')]"}},
		{"relative", ByRelative("9BW123", "ancestor::tr//input"), Selector{EngineXPath, "//*[contains(text(), '9BW123')]/ancestor::tr//input"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.locator.Compile()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLocator_CompileRejectsIncompleteLocators(t *testing.T) {
	tests := []struct {
		name    string
		locator Locator
	}{
		{"empty id", ByID("")},
		{"empty css", ByCSS("")},
		{"empty xpath", ByXPath("")},
		{"attribute without name", ByAttribute("input", "", "x")},
		{"relative without path", ByRelative("x", "")},
		{"unknown kind", Locator{Kind: "shadow", Value: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.locator.Compile()
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestLocator_Bind(t *testing.T) {
	l := ByXPath("//div[contains(@class,'wj-cell') and contains(text(),'{group}')]")

	bound := l.Bind(map[string]string{"group": "Frota SP"})

	assert.Equal(t, "//div[contains(@class,'wj-cell') and contains(text(),'Frota SP')]", bound.Value)
	assert.Contains(t, l.Value, "{group}", "original locator must not change")
}

func TestLocator_BindLeavesUnknownPlaceholders(t *testing.T) {
	bound := ByRelative("{id}", "ancestor::tr//{missing}").Bind(map[string]string{"id": "ABC"})

	assert.Equal(t, "ABC", bound.Value)
	assert.Equal(t, "ancestor::tr//{missing}", bound.Path)
}

func TestBindAll_KeepsOrder(t *testing.T) {
	candidates := []Locator{ByID("{id}"), ByCSS("#{id}"), ByText("td", "{id}", true)}

	bound := BindAll(candidates, map[string]string{"id": "X1"})

	require.Len(t, bound, 3)
	assert.Equal(t, "X1", bound[0].Value)
	assert.Equal(t, "#X1", bound[1].Value)
	assert.Equal(t, "X1", bound[2].Value)
}

func TestXPathLiteral(t *testing.T) {
	assert.Equal(t, "'plain'", XPathLiteral("plain"))
	assert.Equal(t, `"d'Ávila"`, XPathLiteral("d'Ávila"))
	assert.Equal(t, `concat('a"b', "'", 'c')`, XPathLiteral(`a"b'c`))
}

func TestLocator_IDIsEscaped(t *testing.T) {
	sel, err := ByID(`we"ird`).Compile()
	require.NoError(t, err)
	assert.Equal(t, `[id="we\"ird"]`, sel.Expr)
}
