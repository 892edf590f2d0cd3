package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datallboy/otmget/internal/domain"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// DefaultDownloadSubdir is where archives land under the home directory
var DefaultDownloadSubdir = filepath.Join("Downloads", "OTM-Garmin")

// DownloadDir resolves the destination folder. An empty override means
// ~/Downloads/OTM-Garmin; a leading ~ in override is expanded.
func DownloadDir(override string) (string, error) {
	override = strings.TrimSpace(override)

	if override != "" && !strings.HasPrefix(override, "~") {
		return filepath.Abs(override)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: resolving home directory: %w", domain.ErrFileSystem, err)
	}

	if override == "" {
		return filepath.Join(home, DefaultDownloadSubdir), nil
	}

	rest := strings.TrimPrefix(override, "~")
	if rest != "" && rest[0] != '/' && rest[0] != filepath.Separator {
		// ~otheruser is not supported; treat it as a relative path
		return filepath.Abs(override)
	}
	return filepath.Join(home, rest), nil
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", domain.ErrFileSystem, dir, err)
	}
	return nil
}
