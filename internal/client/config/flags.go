package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/divyadrishti/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     backend API base URL
//	-l string     content language (English, Hindi or a BCP 47 tag)
//	-d string     path of the local SQLite database
//	-t duration   per-request timeout, e.g. 45s
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend API base URL")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "content language")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	return fs.Parse(args)
}
