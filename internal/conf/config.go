package conf

import (
	_ "embed"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

func init() {
	sources := &ConfigSource{
		Path:      "/etc/flgs/config.toml",
		DropInDir: "/etc/flgs/config.toml.d/",
	}
	config, err := sources.Read()
	if err != nil {
		slog.Warn("falling back to default configuration", "error", err)
		config, err = Defaults()
		if err != nil {
			panic(fmt.Sprintf("failed to parse embedded defaults: %v", err))
		}
	}
	Configuration = config
}

// defaultConfig contains the embedded default configuration file.
// It is the base layer applied before /etc/flgs/config.toml and drop-in files.
//
//go:embed config.toml
var defaultConfig string

// Configuration is the global immutable state.
var Configuration Config

// Config represents the immutable public configuration object.
type Config struct {
	LogLevel  slog.Level
	Manifest  string
	FlagsFile string

	// FeatureFlags is the process-wide flag table handed to the flags
	// package as its global source.
	FeatureFlags map[string]any
}

// Defaults returns the configuration described by the embedded defaults only.
func Defaults() (Config, error) {
	resolved := Config{}
	dto, err := parseConfigDTO(defaultConfig)
	if err != nil {
		return resolved, err
	}
	resolved.Update(dto)
	return resolved, nil
}

// Update applies non-nil values from a configDTO. Feature flags are merged
// key by key, so a drop-in only changes the flags it names.
func (c *Config) Update(dto configDTO) {
	if dto.LogLevel != nil {
		if level, ok := ParseLevel(*dto.LogLevel); ok {
			c.LogLevel = level
		}
	}
	if dto.Manifest != nil {
		c.Manifest = *dto.Manifest
	}
	if dto.FlagsFile != nil {
		c.FlagsFile = *dto.FlagsFile
	}
	if len(dto.FeatureFlags) > 0 {
		merged := make(map[string]any, len(c.FeatureFlags)+len(dto.FeatureFlags))
		maps.Copy(merged, c.FeatureFlags)
		maps.Copy(merged, dto.FeatureFlags)
		c.FeatureFlags = merged
	}
}

// Global returns a copy of the process-wide feature flags.
func (c Config) Global() map[string]any {
	return maps.Clone(c.FeatureFlags)
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (in any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// ConfigSource orchestrates loading configuration from multiple sources.
// See the Read method.
type ConfigSource struct {
	Path      string
	DropInDir string
}

// Read loads and returns the complete Config by merging all layers:
// 1. Embedded defaults
// 2. Main configuration file
// 3. Drop-in files
func (cs *ConfigSource) Read() (Config, error) {
	resolved, err := Defaults()
	if err != nil {
		slog.Error("failed to parse embedded defaults", "error", err)
		return resolved, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}

	data, err := os.ReadFile(cs.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			return resolved, fmt.Errorf("failed to load %s: %w", cs.Path, err)
		}
	} else {
		mainDTO, err := parseConfigDTO(string(data))
		if err != nil {
			// A present but broken file is reported rather than skipped.
			return resolved, fmt.Errorf("failed to parse %s: %w", cs.Path, err)
		}
		resolved.Update(mainDTO)
	}

	dropInDTOs, err := cs.parseDropInFiles()
	if err != nil {
		slog.Error("failed to load drop-in files", "error", err, "dir", cs.DropInDir)
		return resolved, err
	}
	for _, dropInDTO := range dropInDTOs {
		resolved.Update(dropInDTO)
	}

	return resolved, nil
}

type configDTO struct {
	LogLevel     *string        `toml:"log-level"`
	Manifest     *string        `toml:"manifest"`
	FlagsFile    *string        `toml:"flags-file"`
	FeatureFlags map[string]any `toml:"featureflags"`
}

// parseConfigDTO parses a TOML string into a configDTO.
func parseConfigDTO(data string) (configDTO, error) {
	var dto configDTO

	if err := toml.Unmarshal([]byte(data), &dto); err != nil {
		return dto, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return dto, nil
}

// findDropInFiles returns sorted paths to drop-in configuration files.
// Returns nil if the drop-in directory doesn't exist (not an error).
func (cs *ConfigSource) findDropInFiles() ([]string, error) {
	if _, err := os.Stat(cs.DropInDir); os.IsNotExist(err) {
		return nil, nil
	}

	entries, err := os.ReadDir(cs.DropInDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read drop-in directory %s: %w", cs.DropInDir, err)
	}

	var filenames []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		filenames = append(filenames, filepath.Join(cs.DropInDir, entry.Name()))
	}
	sort.Strings(filenames)

	return filenames, nil
}

// parseDropInFiles loads .toml files in lexicographic order.
func (cs *ConfigSource) parseDropInFiles() ([]configDTO, error) {
	paths, err := cs.findDropInFiles()
	if err != nil {
		return nil, err
	}

	var dtos []configDTO
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		dto, err := parseConfigDTO(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		dtos = append(dtos, dto)
	}

	return dtos, nil
}
