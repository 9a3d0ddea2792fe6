// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/lvlopt/engine"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "LVLOPT"

// Log levels and formats accepted in the log section.
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"standard", "minimal", "json"}
)

// Settings is the typed form of a settings source.
type Settings struct {
	Model   ModelSettings   `mapstructure:"model"`
	Solver  SolverSettings  `mapstructure:"solver"`
	Log     LogSettings     `mapstructure:"log"`
	Metrics MetricsSettings `mapstructure:"metrics"`
}

// ModelSettings names the model and its document.
type ModelSettings struct {
	Name string `mapstructure:"name"`
	// Path is the model document; relative paths resolve against the
	// settings file directory.
	Path string `mapstructure:"path"`
}

// SolverSettings select and tune the optimization engine.
type SolverSettings struct {
	Name     string         `mapstructure:"name"`
	Verbose  bool           `mapstructure:"verbose"`
	Settings map[string]any `mapstructure:"settings"`
}

// LogSettings configure the logger built by package logging.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsSettings configure metrics export.
type MetricsSettings struct {
	File string `mapstructure:"file"`
}

// SolveOptions converts the solver section to engine options.
func (s Settings) SolveOptions() engine.Options {
	return engine.Options{Solver: s.Solver.Name, Verbose: s.Solver.Verbose, Settings: s.Solver.Settings}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model.name", "")
	v.SetDefault("model.path", "")
	v.SetDefault("solver.name", engine.SolverSimplex)
	v.SetDefault("solver.verbose", false)
	v.SetDefault("solver.settings", map[string]any{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "standard")
	v.SetDefault("metrics.file", "")
}

// LoadSettings reads path, when non-empty, over the defaults and applies
// environment overrides.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("%w: %s: %w", ErrSettings, path, err)
		}
	}

	var s Settings
	if err := v.UnmarshalExact(&s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrSettings, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	if path != "" && s.Model.Path != "" && !filepath.IsAbs(s.Model.Path) {
		s.Model.Path = filepath.Join(filepath.Dir(path), s.Model.Path)
	}

	return s, nil
}

// Validate checks the enumerated fields.
func (s Settings) Validate() error {
	level := strings.ToLower(s.Log.Level)
	if !slices.Contains(LogLevels, level) {
		return fmt.Errorf("%w: log.level %q not in %v", ErrSettings, s.Log.Level, LogLevels)
	}
	format := strings.ToLower(s.Log.Format)
	if !slices.Contains(LogFormats, format) {
		return fmt.Errorf("%w: log.format %q not in %v", ErrSettings, s.Log.Format, LogFormats)
	}

	return nil
}
