package config

import (
	"os"
	"path/filepath"
)

// settingsNames are tried in order; viper picks the decoder from the extension
var settingsNames = []string{"settings.json", "settings.yaml", "settings.yml", "settings.toml"}

// GetLuminaHome returns LUMINA_HOME or ~/.lumina
func GetLuminaHome() string {
	home := os.Getenv("LUMINA_HOME")
	if home != "" {
		return ExpandPath(home)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lumina"
	}
	return filepath.Join(homeDir, ".lumina")
}

// GetDBPath returns $LUMINA_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetLuminaHome(), "state.db")
}

// GetSettingsPath returns the first settings file that exists in $LUMINA_HOME,
// or $LUMINA_HOME/settings.json when there is none
func GetSettingsPath() string {
	home := GetLuminaHome()
	for _, name := range settingsNames {
		path := filepath.Join(home, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(home, settingsNames[0])
}

// GetHostKeyPath returns the SSH host key used by `lumina serve`
func GetHostKeyPath() string {
	return filepath.Join(GetLuminaHome(), "ssh", "host_ed25519")
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return homeDir
	}
	return filepath.Join(homeDir, path[1:])
}
