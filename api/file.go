// Package api holds helpers shared by the versioned configuration types.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/macropower/vlist/pkg/yaml"
)

var (
	ErrIsDirectory  = errors.New("path is a directory")
	ErrNotRegular   = errors.New("not a regular file")
	appConfigFolder = "vlist"
)

// GetConfigPath returns the path of filename in the vlist config directory.
// It uses $XDG_CONFIG_HOME, then ~/.config, and finally the temp directory.
func GetConfigPath(filename string) string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, appConfigFolder, filename)
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", appConfigFolder, filename)
	}

	tmpPath := filepath.Join(os.TempDir(), appConfigFolder, filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("error", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpPath
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	err := checkRegular(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Path comes from the user.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// MarshalYAML serializes obj with the shared encoder settings.
func MarshalYAML(obj any) ([]byte, error) {
	return yaml.Marshal(obj) //nolint:wrapcheck // Already wrapped.
}

// WriteDefaultFile writes data to path unless a file is already there. With
// force, an existing file is renamed to a timestamped backup first.
func WriteDefaultFile(path string, data []byte, force bool, kind string) error {
	exists := false

	err := checkRegular(path)
	switch {
	case err == nil:
		exists = true
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if exists && !force {
		slog.Debug("file already exists, skipping write",
			slog.String("type", kind),
			slog.String("path", path),
		)

		return nil
	}

	if exists {
		backupPath := filepath.Join(filepath.Dir(path),
			fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano()))

		slog.Info("backing up existing file",
			slog.String("type", kind),
			slog.String("path", backupPath),
		)

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("back up %s file: %w", kind, err)
		}
	}

	slog.Info("write default file",
		slog.String("type", kind),
		slog.String("path", path),
	)

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write %s file: %w", kind, err)
	}

	return nil
}

func checkRegular(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	return nil
}
