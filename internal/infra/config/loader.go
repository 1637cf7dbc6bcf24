// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/ctsrd-cheri/cheriloc/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	workDir       string // Directory holding the local cheriloc.toml
	globalConfDir string // Global config directory (e.g., ~/.config/cheriloc)
}

// NewLoader creates a new Loader.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cheriloc")
}

// Load returns the merged configuration (local + global).
// The local config takes precedence over the global one.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(filepath.Join(l.workDir, domain.LocalConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

func (l *Loader) loadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToConfig(raw), nil
}

// convertRawToConfig converts the raw map to a config and collects
// warnings for keys cheriloc does not know.
func convertRawToConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "cloc":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "path":
						if s, ok := v.(string); ok {
							res.Cloc.Path = s
						}
					case "processes":
						if n, ok := v.(int64); ok {
							res.Cloc.Processes = int(n)
						}
					case "diff_timeout_secs":
						if n, ok := v.(int64); ok {
							res.Cloc.DiffTimeoutSecs = int(n)
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [cloc]: %s", k))
					}
				}
			}
		case "paths":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "source_root":
						if s, ok := v.(string); ok {
							res.Paths.SourceRoot = s
						}
					case "reports_dir":
						if s, ok := v.(string); ok {
							res.Paths.ReportsDir = s
						}
					case "latex_dir":
						if s, ok := v.(string); ok {
							res.Paths.LatexDir = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [paths]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Cloc:     base.Cloc,
		Paths:    base.Paths,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Cloc.Path != "" {
		result.Cloc.Path = override.Cloc.Path
	}
	if override.Cloc.Processes != 0 {
		result.Cloc.Processes = override.Cloc.Processes
	}
	if override.Cloc.DiffTimeoutSecs != 0 {
		result.Cloc.DiffTimeoutSecs = override.Cloc.DiffTimeoutSecs
	}
	if override.Paths.SourceRoot != "" {
		result.Paths.SourceRoot = override.Paths.SourceRoot
	}
	if override.Paths.ReportsDir != "" {
		result.Paths.ReportsDir = override.Paths.ReportsDir
	}
	if override.Paths.LatexDir != "" {
		result.Paths.LatexDir = override.Paths.LatexDir
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}
