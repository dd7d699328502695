// Package version reports the build identity of the binary.
package version

import "strings"

// set with -ldflags "-X github.com/mgpai22/subssa/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// anything that can name the running build
type Provider interface {
	LongVersion() string
}

// build identity
type Build struct {
	Version string
	Commit  string
	Date    string
}

// identity baked in at link time
func Current() Build {
	return Build{Version: Version, Commit: Commit, Date: Date}
}

// "<version> (<commit>, <date>)", omitting empty parts
func (b Build) LongVersion() string {
	v := b.Version
	if v == "" {
		v = "dev"
	}

	var extra []string
	if b.Commit != "" {
		extra = append(extra, b.Commit)
	}
	if b.Date != "" {
		extra = append(extra, b.Date)
	}
	if len(extra) == 0 {
		return v
	}
	return v + " (" + strings.Join(extra, ", ") + ")"
}

// fixed string, mostly for tests
type Static string

func (s Static) LongVersion() string {
	return string(s)
}
