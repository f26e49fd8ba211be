package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFrotaHome_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FROTA_HOME", dir)

	assert.Equal(t, dir, GetFrotaHome())
	assert.Equal(t, filepath.Join(dir, "runs.db"), GetDBPath())
	assert.Equal(t, filepath.Join(dir, "settings.json"), GetSettingsPath())
	assert.Equal(t, filepath.Join(dir, "credenciais.json"), GetCredentialsPath())
	assert.Equal(t, filepath.Join(dir, "reports"), GetReportsPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x", "y"), ExpandPath("~/x/y"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "", ExpandPath(""))
}
