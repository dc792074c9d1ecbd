package flags

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source names one origin of flag values.
type Source string

const (
	SourceManifest Source = "package"
	SourceFile     Source = "file"
	SourceCLI      Source = "cli"
	SourceGlobal   Source = "global"
	SourceDefault  Source = "default"
)

// Order lists the sources from lowest to highest priority. A flag defined by
// several sources takes the value of the last one in Order.
var Order = []Source{
	SourceManifest,
	SourceFile,
	SourceCLI,
	SourceGlobal,
	SourceDefault,
}

const (
	// DefaultFile is the flags file looked up in the working directory.
	DefaultFile = "featureflags.json"

	// ManifestField is the manifest table holding the flags.
	ManifestField = "featureflags"

	// ArgPrefix marks command line arguments and environment variables
	// carrying a flag, e.g. FFM_beta=yes.
	ArgPrefix = "FFM_"
)

var argPattern = regexp.MustCompile(`^` + ArgPrefix + `([a-zA-Z0-9_-]+)=?([a-zA-Z0-9_-]+)?$`)

// GlobalProvider returns the process-wide flag table. It is consulted once,
// while the flags are being read.
type GlobalProvider func() map[string]any

// decodeFile parses a flat key/value document. The format is picked by file
// extension; anything other than TOML or YAML is decoded as JSON.
func decodeFile(path string, data []byte) (map[string]any, error) {
	var raw map[string]any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	// A null or empty document has no table to read flags from.
	if raw == nil {
		return nil, errors.New("document root is not a table")
	}
	return raw, nil
}

// readManifest returns the featureflags table of the manifest. An unset path
// disables the source; a configured manifest must exist and parse.
func (s *Sources) readManifest() (map[string]any, error) {
	if s.Manifest == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.Manifest)
	if err != nil {
		return nil, &SourceError{Source: SourceManifest, Path: s.Manifest, Err: err}
	}

	doc, err := decodeFile(s.Manifest, data)
	if err != nil {
		return nil, &SourceError{Source: SourceManifest, Path: s.Manifest, Err: err}
	}

	table, ok := doc[ManifestField].(map[string]any)
	if !ok {
		return nil, nil
	}
	return table, nil
}

// readFile returns the contents of the flags file. A missing file is not an
// error; an existing but malformed one is.
func (s *Sources) readFile() (map[string]any, error) {
	if s.File == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.File)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &SourceError{Source: SourceFile, Path: s.File, Err: err}
	}

	raw, err := decodeFile(s.File, data)
	if err != nil {
		return nil, &SourceError{Source: SourceFile, Path: s.File, Err: err}
	}
	return raw, nil
}

// readCLI collects FFM_ entries from the environment, then from the
// arguments. Arguments override environment entries with the same key.
func (s *Sources) readCLI() map[string]any {
	matched := make(map[string]any)
	for _, list := range [][]string{s.Environ, s.Args} {
		for key, val := range ParseArgs(list) {
			matched[key] = val
		}
	}
	return matched
}

// ParseArgs extracts flags from entries of the form FFM_<key>[=<value>].
// Keys are lower-cased. An entry without a value maps to nil, which
// normalizes to off. Entries not matching the pattern are ignored.
func ParseArgs(args []string) map[string]any {
	matched := make(map[string]any)
	for _, arg := range args {
		match := argPattern.FindStringSubmatch(arg)
		if match == nil {
			continue
		}

		key := strings.ToLower(match[1])
		if match[2] == "" {
			matched[key] = nil
			continue
		}
		matched[key] = match[2]
	}
	return matched
}

func (s *Sources) readGlobal() map[string]any {
	if s.Global == nil {
		return nil
	}
	return s.Global()
}
