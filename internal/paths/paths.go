package paths

import (
	"os"
	"path/filepath"
)

// GetFrotaHome returns FROTA_HOME or ~/.frota default
func GetFrotaHome() string {
	home := os.Getenv("FROTA_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".frota"
		}
		return filepath.Join(homeDir, ".frota")
	}
	return ExpandPath(home)
}

// GetDBPath returns $FROTA_HOME/runs.db
func GetDBPath() string {
	return filepath.Join(GetFrotaHome(), "runs.db")
}

// GetSettingsPath returns $FROTA_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetFrotaHome(), "settings.json")
}

// GetCredentialsPath returns $FROTA_HOME/credenciais.json
func GetCredentialsPath() string {
	return filepath.Join(GetFrotaHome(), "credenciais.json")
}

// GetReportsPath returns $FROTA_HOME/reports
func GetReportsPath() string {
	return filepath.Join(GetFrotaHome(), "reports")
}

// GetBrowserDataPath returns $FROTA_HOME/browser, the persistent browser profile
func GetBrowserDataPath() string {
	return filepath.Join(GetFrotaHome(), "browser")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
