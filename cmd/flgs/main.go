// Command flgs resolves feature flags the same way the flags package does
// and reports them on the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/redhatinsights/flgs/flags"
	"github.com/redhatinsights/flgs/internal/conf"
	"github.com/redhatinsights/flgs/internal/l10n"
)

// Version is set at build time.
var Version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("flgs failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "flgs",
		Version: Version,
		// --set values may contain commas
		DisableSliceFlagSeparator: true,
		Usage:   l10n.T("resolve feature flags from manifest, file, arguments and configuration"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "manifest",
				Usage: l10n.T("read the featureflags table of `FILE`"),
				Value: conf.Configuration.Manifest,
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: l10n.T("read flags from `FILE`"),
				Value: conf.Configuration.FlagsFile,
			},
			&cli.StringSliceFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   l10n.T("set a default `KEY[=VALUE]`, overriding every other source"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: l10n.T("log `LEVEL` (DEBUG, INFO, WARN, ERROR)"),
				Value: conf.Configuration.LogLevel.String(),
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     l10n.T("exit successfully if every named flag is on"),
				ArgsUsage: "FLAG...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   l10n.T("do not print flag states"),
					},
				},
				Action: checkAction,
			},
			{
				Name:   "list",
				Usage:  l10n.T("print the merged flags"),
				Action: listAction,
			},
			{
				Name:   "sources",
				Usage:  l10n.T("print the flags of every source in precedence order"),
				Action: sourcesAction,
			},
		},
	}
}

func setupLogging(c *cli.Context) error {
	level, ok := conf.ParseLevel(c.String("log-level"))
	if !ok {
		return cli.Exit(l10n.T("unknown log level: %v", c.String("log-level")), 1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

// parseDefaults turns --set values into the defaults mapping. A bare KEY
// turns the flag on.
func parseDefaults(values []string) map[string]any {
	defaults := make(map[string]any, len(values))
	for _, value := range values {
		key, val, found := strings.Cut(value, "=")
		if !found {
			defaults[key] = true
			continue
		}
		defaults[key] = val
	}
	return defaults
}

func readFlags(c *cli.Context) (*flags.Flags, error) {
	sources := flags.DefaultSources()
	sources.Args = c.Args().Slice()
	sources.Manifest = c.String("manifest")
	sources.File = c.String("file")
	sources.Global = conf.Configuration.Global

	ff, err := sources.Read(parseDefaults(c.StringSlice("set")))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve feature flags: %w", err)
	}
	return ff, nil
}

func checkAction(c *cli.Context) error {
	var names []string
	for _, arg := range c.Args().Slice() {
		// FFM_ arguments feed the command line source, see readFlags
		if strings.HasPrefix(arg, flags.ArgPrefix) {
			continue
		}
		names = append(names, arg)
	}
	if len(names) == 0 {
		return cli.Exit(l10n.T("no flag names given"), 1)
	}

	ff, err := readFlags(c)
	if err != nil {
		return err
	}

	var off uint32
	for _, name := range names {
		set := ff.IsSet(name)
		if !set {
			off++
		}
		if !c.Bool("quiet") {
			fmt.Fprintln(c.App.Writer, l10n.T("%v: %v", name, state(set)))
		}
	}

	if off > 0 {
		return cli.Exit(l10n.TN("%d flag is off", "%d flags are off", off, off), 1)
	}
	return nil
}

func listAction(c *cli.Context) error {
	ff, err := readFlags(c)
	if err != nil {
		return err
	}
	return writeFlags(c.App.Writer, ff.Combined(), isTerminal(c.App.Writer))
}

func sourcesAction(c *cli.Context) error {
	ff, err := readFlags(c)
	if err != nil {
		return err
	}
	return writeSources(c.App.Writer, ff)
}
