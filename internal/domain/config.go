package domain

import (
	"os"
	"path/filepath"
	"runtime"
)

// scratchRoot is the big-checkout location on the analysis host.
const scratchRoot = "/local/scratch/alr48/cheri"

// BenchmarkSubdir is the SPEC CPU2006 tree location below the source root.
const BenchmarkSubdir = "spec2006"

// ConfigFileName is the name of the global configuration file below the
// user's config directory.
const ConfigFileName = "config.toml"

// LocalConfigFileName is the per-directory configuration file name.
const LocalConfigFileName = "cheriloc.toml"

// Config represents the application configuration.
type Config struct {
	Cloc     ClocConfig  `toml:"cloc"`  // [cloc] settings
	Paths    PathsConfig `toml:"paths"` // [paths] settings
	Log      LogConfig   `toml:"log"`   // [log] settings
	Warnings []string    `toml:"-"`
}

// ClocConfig holds settings for the [cloc] section.
type ClocConfig struct {
	Path            string `toml:"path,omitempty"`              // cloc executable to run (default: "cloc" on PATH)
	Processes       int    `toml:"processes,omitempty"`         // Worker count for analysis runs (default: number of CPUs)
	DiffTimeoutSecs int    `toml:"diff_timeout_secs,omitempty"` // Per-file diff budget in seconds (default: 300)
}

// PathsConfig holds settings for the [paths] section.
type PathsConfig struct {
	SourceRoot string `toml:"source_root,omitempty"` // Root containing the project checkouts
	ReportsDir string `toml:"reports_dir,omitempty"` // Cache directory for cloc JSON reports
	LatexDir   string `toml:"latex_dir,omitempty"`   // Output directory for rendered LaTeX files
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// NewDefaultConfig returns the configuration used where no config file
// overrides a setting.
func NewDefaultConfig() *Config {
	return &Config{
		Cloc: ClocConfig{
			Path:            "cloc",
			Processes:       runtime.NumCPU(),
			DiffTimeoutSecs: DiffTimeoutSecs,
		},
		Paths: PathsConfig{
			SourceRoot: DefaultSourceRoot(),
			ReportsDir: "reports",
			LatexDir:   ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultSourceRoot returns the checkout root: the analysis host's
// scratch directory when it exists, otherwise ~/cheri.
func DefaultSourceRoot() string {
	if info, err := os.Stat(scratchRoot); err == nil && info.IsDir() {
		return scratchRoot
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cheri"
	}
	return filepath.Join(home, "cheri")
}
