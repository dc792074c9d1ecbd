// Package conf implements drop-in configuration file support for flgs.
//
// # Usage
//
// The global Configuration variable is loaded at package initialization:
//
//	import "github.com/redhatinsights/flgs/internal/conf"
//
//	func main() {
//	    fmt.Println(conf.Configuration.FlagsFile)
//	}
//
// For custom configuration loading (e.g., testing), use ConfigSource:
//
//	cs := &conf.ConfigSource{
//	    Path:      "/custom/path/config.toml",
//	    DropInDir: "/custom/path/config.toml.d",
//	}
//	config, err := cs.Read()
//
// # Load Order
//
// Config is loaded and applied in three layers:
//
//  1. Embedded defaults (config.toml in this package)
//  2. Main config file: /etc/flgs/config.toml
//  3. Drop-in files: /etc/flgs/config.toml.d/*.toml, in lexicographic order
//
// The [featureflags] table is merged key by key across the layers and is
// used as the process-wide flag source of the flgs command.
//
// # Internal Architecture
//
//   - configDTO: internal struct with pointer fields for TOML parsing.
//     Pointers allow distinguishing "not set" (nil) from "set to zero value".
//
//   - Config: public struct with value fields. Has Update() method
//     to apply DTO values.
//
//   - ConfigSource: orchestrates loading from multiple sources and manages
//     their merging.
package conf
