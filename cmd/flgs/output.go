package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/redhatinsights/flgs/flags"
	"github.com/redhatinsights/flgs/internal/l10n"
)

func state(set bool) string {
	if set {
		return l10n.T("on")
	}
	return l10n.T("off")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func sortedKeys(values map[string]bool) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// writeFlags prints one flag per line. Terminals get an aligned table,
// anything else gets key=value lines.
func writeFlags(w io.Writer, values map[string]bool, table bool) error {
	if !table {
		for _, key := range sortedKeys(values) {
			if _, err := fmt.Fprintf(w, "%s=%t\n", key, values[key]); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", l10n.T("FLAG"), l10n.T("STATE"))
	for _, key := range sortedKeys(values) {
		fmt.Fprintf(tw, "%s\t%s\n", key, state(values[key]))
	}
	return tw.Flush()
}

// writeSources prints the sanitized flags of each source, lowest priority first.
func writeSources(w io.Writer, ff *flags.Flags) error {
	for _, source := range flags.Order {
		if _, err := fmt.Fprintf(w, "[%s]\n", source); err != nil {
			return err
		}
		if err := writeFlags(w, ff.Source(source), false); err != nil {
			return err
		}
	}
	return nil
}
