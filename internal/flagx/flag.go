// Package flagx helps several independent flag sets share one command line.
// Each consumer filters os.Args down to the flags it owns before parsing, so
// unknown flags never abort another component's parse.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args that belong to the allowed flags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// A flag listed in boolFlags never consumes the following argument, so
// "-email -d dsn" keeps -email as a bare switch. Booleans may still be set
// explicitly with the '=' form ("-email=false").
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := make(map[string]bool, len(allowedFlags)+len(boolFlags))
	for _, f := range allowedFlags {
		allowed[f] = false
	}
	for _, f := range boolFlags {
		allowed[f] = true
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		isBool, ok := allowed[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if isBool {
			continue
		}
		// the next token is this flag's value unless it looks like a flag itself
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFilePath extracts the JSON config path given via -c or -config.
// It returns an empty string when neither flag is present.
func ConfigFilePath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
