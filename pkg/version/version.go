// Package version reports build information for the agentbuddy binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set via -ldflags "-X agentbuddy/pkg/version.Version=..." at release time.
// Plain `go build` leaves them empty and the VCS stamp is used instead.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

const shortCommitLen = 7

// Build describes the running binary.
type Build struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
	Go       string
	Platform string
}

// Current merges the ldflags values with the module build info.
func Current() Build {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

func resolve(bi *debug.BuildInfo) Build {
	b := Build{
		Version:  Version,
		Commit:   Commit,
		Date:     Date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi != nil {
		if b.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			b.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
		if bi.GoVersion != "" {
			b.Go = bi.GoVersion
		}
	}

	if b.Version == "" {
		b.Version = "dev"
	}
	return b
}

// Summary is the one-line form shown on the splash card, e.g. "v1.2.0 (abcdef0)".
func (b Build) Summary() string {
	if b.Commit == "" {
		return b.Version
	}
	commit := b.Commit
	if len(commit) > shortCommitLen {
		commit = commit[:shortCommitLen]
	}
	if b.Modified {
		commit += "+dirty"
	}
	return fmt.Sprintf("%s (%s)", b.Version, commit)
}

// Summary returns Current().Summary().
func Summary() string {
	return Current().Summary()
}

// Info returns the multi-line text printed by -version.
func Info(binary string) string {
	b := Current()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s version %s\n", binary, b.Summary())
	if b.Date != "" {
		fmt.Fprintf(&sb, "  built: %s\n", b.Date)
	}
	fmt.Fprintf(&sb, "  go: %s\n  platform: %s", b.Go, b.Platform)
	return sb.String()
}
