package config

import (
	"os"
	"path/filepath"
)

const AppName = "gridform"

var (
	// AppConfigDir is ~/.config/gridform
	AppConfigDir string

	// AppStateDir is ~/.local/state/gridform
	AppStateDir string

	// AppConfigFile is ~/.config/gridform/gridform.yaml
	AppConfigFile string

	// AppKeysFile is ~/.config/gridform/keys.yaml
	AppKeysFile string

	// AppTablesDir is ~/.config/gridform/tables
	AppTablesDir string

	// AppLogFile is ~/.local/state/gridform/gridform.log
	AppLogFile string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home := userHomeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, AppName+".yaml")
	AppKeysFile = filepath.Join(AppConfigDir, "keys.yaml")
	AppTablesDir = filepath.Join(AppConfigDir, "tables")
	AppLogFile = filepath.Join(AppStateDir, AppName+".log")

	for _, dir := range []string{AppConfigDir, AppStateDir, AppTablesDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}

// InitLogLoc ensures the log directory exists
func InitLogLoc() error {
	logDir := filepath.Dir(AppLogFile)
	return os.MkdirAll(logDir, 0700)
}

// userHomeDir returns the user's home directory
func userHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return home
}
