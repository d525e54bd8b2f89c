// Package flagx helps several packages share one command line: each parses
// only the flags it owns.
package flagx

import (
	"flag"
	"slices"
	"strings"
)

// FilterArgs keeps the arguments that belong to one of the flags in owned,
// together with their values. Both "-name value" and "-name=value" are
// recognised. A token starting with "-" is never taken as a value.
func FilterArgs(args []string, owned []string) []string {
	out := []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if slices.Contains(owned, name) {
				out = append(out, arg)
			}
			continue
		}

		if !slices.Contains(owned, arg) {
			continue
		}
		out = append(out, arg)
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			out = append(out, args[next])
			i = next
		}
	}

	return out
}

// ConfigFileFlag returns the value of -c or -config in args, or "" when
// neither is given. The last occurrence wins.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to a JSON config file")
	fs.StringVar(&path, "c", "", "path to a JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
