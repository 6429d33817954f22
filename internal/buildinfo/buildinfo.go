// Package buildinfo holds version data injected at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/divyadrishti/internal/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

var (
	Version = ""
	Date    = ""
	Commit  = ""
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes the build version, date and commit to w. Values not
// set by the linker are taken from the module build info when available.
func PrintBuildData(w io.Writer) {
	version, date, commit := Version, Date, Commit
	if bi, ok := debug.ReadBuildInfo(); ok {
		if version == "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "":
				commit = s.Value
			case s.Key == "vcs.time" && date == "":
				date = s.Value
			}
		}
	}
	fmt.Fprintf(w, "Build version: %s\n", orNA(version))
	fmt.Fprintf(w, "Build date: %s\n", orNA(date))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(commit))
}
