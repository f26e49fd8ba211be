package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota/internal/domain"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portals.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultProfile_IsValid(t *testing.T) {
	p, err := DefaultProfile()
	require.NoError(t, err)

	assert.Equal(t, []string{PortalBilling, PortalFleet, PortalSubscriptions}, p.Names())
	assert.NoError(t, p.Validate())
}

func TestDefaultProfile_FleetPortal(t *testing.T) {
	p, err := DefaultProfile()
	require.NoError(t, err)

	fleet, err := p.Portal(PortalFleet)
	require.NoError(t, err)

	assert.Equal(t, "fleet", fleet.Name)
	assert.Equal(t, "workspace/map", fleet.SuccessURL)
	assert.Equal(t, "https://live.mzoneweb.net/mzonex/maintenance/vehiclegroups", fleet.Page("vehicle_groups"))
	assert.Equal(t, fleet.BaseURL, fleet.Page("unknown"))
	assert.Equal(t, []domain.Locator{domain.ByID("Username")}, fleet.Candidates("login_username"))
	assert.Len(t, fleet.Candidates("group_member_checkbox"), 7)
	assert.NoError(t, fleet.Require("login_username", "login_password", "login_submit", "group_save"))
}

func TestDefaultProfile_RelativeCheckboxBindsChassis(t *testing.T) {
	p, err := DefaultProfile()
	require.NoError(t, err)
	fleet, err := p.Portal(PortalFleet)
	require.NoError(t, err)

	bound := domain.BindAll(fleet.Candidates("group_member_checkbox"), map[string]string{"chassis": "9BW123"})
	sel, err := bound[0].Compile()

	require.NoError(t, err)
	assert.Equal(t, "//div[contains(text(), '9BW123')]/ancestor::tr//input[@type='checkbox']", sel.Expr)
}

func TestLoadProfile_EmptyPathIsDefault(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)

	def, err := DefaultProfile()
	require.NoError(t, err)
	assert.Equal(t, def, p)
}

func TestLoadProfile_MergesOverride(t *testing.T) {
	path := writeProfile(t, `
[portals.fleet]
base_url = "https://staging.example/mzonex/"

[portals.fleet.labels]
group_save = "Save"

[portals.fleet.locators]
group_save = [{ kind = "css", value = "button.save" }]

[portals.lab]
base_url = "https://lab.example/"
`)

	p, err := LoadProfile(path)
	require.NoError(t, err)

	fleet, err := p.Portal(PortalFleet)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example/mzonex/", fleet.BaseURL)
	assert.Equal(t, "workspace/map", fleet.SuccessURL, "unset scalars keep the default")
	assert.Equal(t, "Save", fleet.Label("group_save", ""))
	assert.Equal(t, []domain.Locator{domain.ByCSS("button.save")}, fleet.Candidates("group_save"))
	assert.Equal(t, []domain.Locator{domain.ByID("Username")}, fleet.Candidates("login_username"))
	assert.Contains(t, p.Names(), "lab")
}

func TestLoadProfile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[portals.fleet]\nbase_urll = \"x\"\n"},
		{"syntax", "[portals.fleet\n"},
		{"bad kind", "[portals.fleet.locators]\ngroup_save = [{ kind = \"sql\", value = \"x\" }]\n"},
		{"empty list", "[portals.fleet.locators]\ngroup_save = []\n"},
		{"no base url", "[portals.new]\nlogin_url = \"https://x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfile(writeProfile(t, tt.content))
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}

	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestProfile_UnknownPortal(t *testing.T) {
	p, err := DefaultProfile()
	require.NoError(t, err)

	_, err = p.Portal("nope")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestProfile_EncodeDecodes(t *testing.T) {
	p, err := DefaultProfile()
	require.NoError(t, err)

	data, err := p.Encode()
	require.NoError(t, err)

	again, err := decodeProfile(data)
	require.NoError(t, err)
	assert.Equal(t, p.Names(), again.Names())
	assert.Equal(t, p.Portals[PortalBilling].Locators, again.Portals[PortalBilling].Locators)
}
