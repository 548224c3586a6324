package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			v, c, d := buildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "prowlerstat %s (commit %s, built %s)\n", v, short(c), d)
		},
	}
}

// buildInfo returns the injected build info, falling back to VCS settings
// embedded by the Go toolchain.
func buildInfo() (v, c, d string) {
	v, c, d = version, commit, date
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if c == "" {
					c = s.Value
				}
			case "vcs.time":
				if d == "" {
					d = s.Value
				}
			}
		}
	}
	if v == "" {
		v = "dev"
	}
	if c == "" {
		c = "none"
	}
	if d == "" {
		d = "unknown"
	}
	return v, c, d
}

func short(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
