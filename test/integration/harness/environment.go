package harness

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	adapterstorage "frota/internal/adapters/storage"
	"frota/internal/domain"
)

// TestEnvironment is one isolated FROTA_HOME
type TestEnvironment struct {
	FrotaHome string
	WorkDir   string
	extraEnv  map[string]string
	tb        testing.TB
}

// NewTestEnvironment creates a temp FROTA_HOME and a separate working
// directory, so no stray .env file is picked up.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()
	return &TestEnvironment{
		FrotaHome: tb.TempDir(),
		WorkDir:   tb.TempDir(),
		extraEnv:  make(map[string]string),
		tb:        tb,
	}
}

// Environ returns the process environment with FROTA_* replaced
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+2+len(e.extraEnv))
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "FROTA_") {
			continue
		}
		if _, override := e.extraEnv[key]; override {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"FROTA_HOME="+e.FrotaHome,
		"FROTA_DEBUG=",
	)
	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}
	return env
}

// SetEnv sets an additional environment variable for this environment
func (e *TestEnvironment) SetEnv(key, value string) {
	e.extraEnv[key] = value
}

// DBPath returns the run history database of this environment
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.FrotaHome, "runs.db")
}

// WriteFile writes name under the working directory and returns its path
func (e *TestEnvironment) WriteFile(name, content string) string {
	e.tb.Helper()
	path := filepath.Join(e.WorkDir, name)
	require.NoError(e.tb, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteSettings writes settings.json into FROTA_HOME
func (e *TestEnvironment) WriteSettings(json string) {
	e.tb.Helper()
	require.NoError(e.tb, os.WriteFile(filepath.Join(e.FrotaHome, "settings.json"), []byte(json), 0644))
}

// SeedRun stores a finished run directly in the history database
func (e *TestEnvironment) SeedRun(report *domain.BatchReport) {
	e.tb.Helper()
	repo, err := adapterstorage.NewSQLiteRepository(e.DBPath())
	require.NoError(e.tb, err)
	defer repo.Close()
	require.NoError(e.tb, repo.SaveRun(context.Background(), report))
}
