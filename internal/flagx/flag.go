// Package flagx holds helpers for parsing a subset of command-line flags
// without interfering with flags owned by other packages.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns only the allowedFlags (and their values) from args.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.yaml
//  2. Flag and value combined with '=':      --config=conf.yaml
//
// A value is consumed only when the next token does not start with '-'.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
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

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigFiles extracts the config file path (-c / -config) and the dotenv
// file path (-env) from os.Args. Missing flags yield empty strings; the
// last occurrence of a flag wins.
func ConfigFiles() (configPath, envPath string) {
	args := FilterArgs(os.Args[1:], []string{"-c", "-config", "-env"})

	fs := flag.NewFlagSet("files", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "Path to config file (.json, .yaml or .yml)")
	fs.StringVar(&configPath, "c", "", "Path to config file (short)")
	fs.StringVar(&envPath, "env", "", "Path to a .env file")
	_ = fs.Parse(args)

	return configPath, envPath
}
