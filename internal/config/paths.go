package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Windows Terminal install variants. Each maps to exactly one settings path.
const (
	VariantStable     = "stable"
	VariantPreview    = "preview"
	VariantUnpackaged = "unpackaged"
)

// ErrUnsupportedPlatform is returned by DefaultSettingsPath on platforms
// where Windows Terminal does not exist.
var ErrUnsupportedPlatform = errors.New("no default Windows Terminal settings path on this platform")

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/termkeys/config.yml
// - macOS: ~/Library/Application Support/termkeys/config.yml
// - Windows: %APPDATA%\termkeys\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "termkeys", "config.yml"), nil
}

// DefaultSettingsPath returns the settings.json location for a Windows
// Terminal variant. goos and getenv are parameters so the lookup can be
// exercised on any platform.
func DefaultSettingsPath(goos, variant string, getenv func(string) string) (string, error) {
	if goos != "windows" {
		return "", fmt.Errorf("%w (%s)", ErrUnsupportedPlatform, goos)
	}

	localAppData := getenv("LOCALAPPDATA")
	if localAppData == "" {
		profile := getenv("USERPROFILE")
		if profile == "" {
			return "", fmt.Errorf("cannot determine local app data: LOCALAPPDATA and USERPROFILE are unset")
		}
		localAppData = joinWindows(profile, "AppData", "Local")
	}

	switch variant {
	case VariantStable, "":
		return joinWindows(localAppData, "Packages", "Microsoft.WindowsTerminal_8wekyb3d8bbwe", "LocalState", "settings.json"), nil
	case VariantPreview:
		return joinWindows(localAppData, "Packages", "Microsoft.WindowsTerminalPreview_8wekyb3d8bbwe", "LocalState", "settings.json"), nil
	case VariantUnpackaged:
		return joinWindows(localAppData, "Microsoft", "Windows Terminal", "settings.json"), nil
	default:
		return "", fmt.Errorf("unknown variant %q", variant)
	}
}

// joinWindows joins path elements with backslashes regardless of the host OS.
func joinWindows(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for i, e := range elem {
		if i > 0 {
			e = strings.Trim(e, `\/`)
		} else {
			e = strings.TrimRight(e, `\/`)
		}
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, `\`)
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
