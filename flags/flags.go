package flags

import (
	"log/slog"
	"maps"
	"os"
)

// Sources describes where flags are read from. See the Read method.
type Sources struct {
	// Manifest is the path of a project manifest with a featureflags table.
	// Leave empty to skip the manifest.
	Manifest string

	// File is the path of a flat flags file. A missing file is ignored.
	File string

	// Environ and Args are scanned for FFM_<key>[=<value>] entries.
	Environ []string
	Args    []string

	// Global supplies the process-wide flag table, if any.
	Global GlobalProvider

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultSources returns the sources used by New: the flags file in the
// working directory, the process environment and the process arguments.
func DefaultSources() Sources {
	var args []string
	if len(os.Args) > 1 {
		args = os.Args[1:]
	}
	return Sources{
		File:    DefaultFile,
		Environ: os.Environ(),
		Args:    args,
	}
}

// Flags is the immutable result of merging all sources.
type Flags struct {
	sources  map[Source]map[string]bool
	combined map[string]bool
}

// New reads DefaultSources and merges them with defaults.
func New(defaults map[string]any) (*Flags, error) {
	sources := DefaultSources()
	return sources.Read(defaults)
}

// Read loads every source, sanitizes it and folds the results in Order:
//  1. Manifest
//  2. Flags file
//  3. Environment and arguments
//  4. Global provider
//  5. defaults
//
// Read fails only when the manifest or the flags file is malformed.
func (s *Sources) Read(defaults map[string]any) (*Flags, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	manifest, err := s.readManifest()
	if err != nil {
		return nil, err
	}
	file, err := s.readFile()
	if err != nil {
		return nil, err
	}

	raw := map[Source]map[string]any{
		SourceManifest: manifest,
		SourceFile:     file,
		SourceCLI:      s.readCLI(),
		SourceGlobal:   s.readGlobal(),
		SourceDefault:  defaults,
	}

	f := &Flags{
		sources:  make(map[Source]map[string]bool, len(Order)),
		combined: make(map[string]bool),
	}
	for _, source := range Order {
		sanitized := Sanitize(raw[source])
		logger.Debug("loaded feature flags", "source", source, "count", len(sanitized))

		f.sources[source] = sanitized
		maps.Copy(f.combined, sanitized)
	}

	return f, nil
}

// IsSet reports whether flag is enabled. Unknown flags are off.
func (f *Flags) IsSet(flag string) bool {
	return f.combined[flag]
}

// Isset is an alias of IsSet.
func (f *Flags) Isset(flag string) bool { return f.IsSet(flag) }

// On is an alias of IsSet.
func (f *Flags) On(flag string) bool { return f.IsSet(flag) }

// Combined returns a copy of the merged flags.
func (f *Flags) Combined() map[string]bool {
	return maps.Clone(f.combined)
}

// Source returns a copy of the sanitized flags of a single source.
func (f *Flags) Source(source Source) map[string]bool {
	result := maps.Clone(f.sources[source])
	if result == nil {
		result = map[string]bool{}
	}
	return result
}
