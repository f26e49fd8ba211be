package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota/internal/domain"
)

func TestLoadSettingsFrom_MissingFileIsEmpty(t *testing.T) {
	s, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "settings.json"))

	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoadSettingsFrom_ParsesAndExpands(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"batch_size": 20,
		"driver": "rod",
		"headless": true,
		"login": "auto",
		"report_dir": "~/relatorios",
		"stale_policy": "assume-success"
	}`), 0644))

	s, err := LoadSettingsFrom(path)

	require.NoError(t, err)
	require.NotNil(t, s.BatchSize)
	assert.Equal(t, 20, *s.BatchSize)
	assert.Equal(t, DriverRod, s.Driver)
	require.NotNil(t, s.Headless)
	assert.True(t, *s.Headless)
	assert.Equal(t, "auto", s.Login)
	assert.Equal(t, filepath.Join(home, "relatorios"), s.ReportDir)
	assert.Equal(t, "assume-success", s.StalePolicy)
	assert.Nil(t, s.PacingMs)
}

func TestLoadSettingsFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"batch_size":`},
		{"unknown driver", `{"driver":"selenium"}`},
		{"unknown login", `{"login":"sso"}`},
		{"unknown stale policy", `{"stale_policy":"ignore"}`},
		{"zero batch size", `{"batch_size":0}`},
		{"negative pacing", `{"pacing_ms":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadSettingsFrom(path)

			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	size := 10
	in := &Settings{BatchSize: &size, Driver: DriverPlaywright}

	require.NoError(t, SaveSettings(path, in))
	out, err := LoadSettingsFrom(path)

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestGetSettingsExample_CoversEveryField(t *testing.T) {
	example := GetSettingsExample()

	assert.Len(t, example, 15)
	assert.Equal(t, 50, example["batch_size"])
	assert.Equal(t, "verify", example["stale_policy"])
	assert.Equal(t, true, example["debug"])
	assert.Equal(t, false, example["headless"])
}
