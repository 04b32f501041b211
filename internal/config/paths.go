package config

import (
	"os"
	"path/filepath"

	"github.com/droverhq/drover/internal/constants"
	"github.com/droverhq/drover/internal/errors"
)

// GlobalConfigDir returns the global drover directory (~/.drover).
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine home directory")
	}
	return filepath.Join(home, constants.DroverHome), nil
}

// ProjectConfigPath returns the project config path relative to the
// working directory (.drover/config.yaml).
func ProjectConfigPath() string {
	return filepath.Join(constants.DroverHome, constants.ConfigFileName)
}

// LogsDir returns the global log directory (~/.drover/logs), creating it
// when missing.
func LogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	logsDir := filepath.Join(dir, constants.LogsDir)
	if err := os.MkdirAll(logsDir, 0o750); err != nil {
		return "", errors.Wrap(err, "failed to create logs directory")
	}
	return logsDir, nil
}
