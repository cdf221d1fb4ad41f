package version

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

const (
	Header       = "X-Client-Version"
	ServerHeader = "X-Server-Version"
)

const (
	versionDevel   = "devel"
	versionUnknown = "unknown"
)

// version is set via ldflags at build time.
// falls back to debug.ReadBuildInfo for go install.
var version = versionDevel

var once sync.Once

func Get() string {
	once.Do(func() {
		if version != versionDevel {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if v := info.Main.Version; v != "" && v != "("+versionDevel+")" {
			version = v
		}
	})
	return version
}

// IsDevelopment returns true for versions that should skip compatibility checks.
func IsDevelopment(v string) bool {
	return v == versionDevel || v == versionUnknown || v == "" ||
		strings.Contains(v, "dirty") ||
		strings.Contains(v, "-0.")
}

// IsNewer reports whether latest is a newer release than current. Development
// builds are never considered outdated.
func IsNewer(current, latest string) bool {
	if IsDevelopment(current) {
		return false
	}
	c, l := canonical(current), canonical(latest)
	if !semver.IsValid(c) || !semver.IsValid(l) {
		return false
	}
	return semver.Compare(l, c) > 0
}

// Compatible reports whether client and server share a major version.
// Development builds on either side are always compatible.
func Compatible(client, server string) bool {
	if IsDevelopment(client) || IsDevelopment(server) {
		return true
	}
	return ParseMajor(client) == ParseMajor(server)
}

// ParseMajor extracts the major version number from a semver string.
// Returns "0" for unparseable versions.
func ParseMajor(v string) string {
	if major := semver.Major(canonical(v)); major != "" {
		return strings.TrimPrefix(major, "v")
	}
	return "0"
}

// IsHomebrew reports whether the running binary lives in a Homebrew prefix.
func IsHomebrew() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return isHomebrewPath(exe)
}

func isHomebrewPath(p string) bool {
	p = filepath.ToSlash(p)
	return strings.Contains(p, "/Cellar/") ||
		strings.HasPrefix(p, "/opt/homebrew/") ||
		strings.HasPrefix(p, "/home/linuxbrew/.linuxbrew/")
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
