package model

import (
	"fmt"
	"strings"
)

// Triple identifies the platform a product is built for, in the conventional
// `<arch>-<vendor>-<os>[-<environment>]` form, e.g. "x86_64-unknown-linux-gnu"
// or "arm64-apple-macosx15.0".
type Triple struct {
	Arch        string
	Vendor      string
	OS          string
	Environment string

	raw string
}

// ParseTriple parses a triple string. The OS component may carry a trailing
// version, which is preserved in OS and ignored by the classification helpers.
func ParseTriple(s string) (Triple, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 || len(parts) > 4 {
		return Triple{}, fmt.Errorf("malformed target triple %q: expected <arch>-<vendor>-<os>[-<environment>]", s)
	}
	for i, p := range parts {
		if p == "" {
			return Triple{}, fmt.Errorf("malformed target triple %q: empty component at position %d", s, i)
		}
	}
	t := Triple{
		Arch:   parts[0],
		Vendor: parts[1],
		OS:     parts[2],
		raw:    s,
	}
	if len(parts) == 4 {
		t.Environment = parts[3]
	}
	return t, nil
}

// String returns the triple as originally written.
func (t Triple) String() string {
	return t.raw
}

// OSName returns the OS component with any trailing version stripped, e.g.
// "macosx" for "macosx15.0".
func (t Triple) OSName() string {
	return strings.TrimRightFunc(t.OS, func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '.'
	})
}

// IsDarwin reports whether the triple targets a Darwin-family OS.
func (t Triple) IsDarwin() bool {
	switch t.OSName() {
	case "darwin", "macosx", "macos", "ios", "tvos", "watchos", "visionos":
		return true
	}
	return false
}

// IsWindows reports whether the triple targets a Windows-like OS.
func (t Triple) IsWindows() bool {
	return t.OSName() == "windows"
}

// DynamicLibraryPrefix returns the platform's shared-library filename prefix.
func (t Triple) DynamicLibraryPrefix() string {
	if t.IsWindows() {
		return ""
	}
	return "lib"
}

// DynamicLibrarySuffix returns the platform's shared-library filename suffix.
func (t Triple) DynamicLibrarySuffix() string {
	switch {
	case t.IsDarwin():
		return ".dylib"
	case t.IsWindows():
		return ".dll"
	default:
		return ".so"
	}
}

// DynamicLibraryName extracts the bare library name from a filename that
// follows the platform's shared-library naming convention. The second return
// is false when the filename does not match the convention.
func (t Triple) DynamicLibraryName(filename string) (string, bool) {
	prefix := t.DynamicLibraryPrefix()
	suffix := t.DynamicLibrarySuffix()
	if !strings.HasPrefix(filename, prefix) || !strings.HasSuffix(filename, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(filename, prefix), suffix)
	if name == "" {
		return "", false
	}
	return name, true
}

// MatchesPlatform reports whether another triple designates the same platform
// slice, compared by architecture and versionless OS name. Vendor and
// environment are ignored, matching how prebuilt artifact slices are keyed.
func (t Triple) MatchesPlatform(other Triple) bool {
	return t.Arch == other.Arch && t.OSName() == other.OSName()
}
