// Package flags resolves boolean feature flags from several sources.
//
// # Usage
//
//	ff, err := flags.New(map[string]any{"beta": true})
//	if err != nil {
//	    return err
//	}
//	if ff.IsSet("beta") {
//	    // new behaviour
//	}
//
// For custom source locations (e.g., testing), fill in Sources:
//
//	sources := &flags.Sources{
//	    Manifest: "project.toml",
//	    File:     "featureflags.json",
//	    Args:     []string{"FFM_beta=yes"},
//	}
//	ff, err := sources.Read(nil)
//
// # Load Order
//
// Flags are merged in five layers, later layers overriding earlier ones:
//
//  1. The featureflags table of the manifest (JSON, TOML or YAML)
//  2. The flags file, featureflags.json by default
//  3. FFM_<key>[=<value>] environment variables, then arguments
//  4. The table returned by Sources.Global
//  5. Defaults passed to New or Read
//
// Defaults therefore win over every other source.
//
// # Values
//
// Keys must match [a-zA-Z0-9_.-]+; other keys are dropped. Values are
// normalized by Normalize: the strings "true", "1", "on", "yes" and "enable"
// turn a flag on, as do true, functions and compound values (maps, slices,
// structs). Everything else, including numbers, turns it off.
package flags
