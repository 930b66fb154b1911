package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ToolsVersion is a package's declared minimum toolchain version. It acts as
// a compatibility gate: traversal and classification rules differ between
// versions so that older packages keep their historical behavior.
type ToolsVersion struct {
	Major int
	Minor int
}

var (
	// minToolsVersionTestableExecutables is the first version where an
	// executable target may be linked into a test product.
	minToolsVersionTestableExecutables = ToolsVersion{5, 5}

	// minToolsVersionExcludedPlugins is the first version where plugin
	// targets are dropped from product dependency closures.
	minToolsVersionExcludedPlugins = ToolsVersion{5, 7}
)

// ParseToolsVersion parses a "major.minor" version string.
func ParseToolsVersion(s string) (ToolsVersion, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return ToolsVersion{}, fmt.Errorf("malformed tools-version %q: expected <major>.<minor>", s)
	}
	maj, err := strconv.Atoi(major)
	if err != nil {
		return ToolsVersion{}, fmt.Errorf("malformed tools-version %q: %w", s, err)
	}
	min, err := strconv.Atoi(minor)
	if err != nil {
		return ToolsVersion{}, fmt.Errorf("malformed tools-version %q: %w", s, err)
	}
	if maj < 0 || min < 0 {
		return ToolsVersion{}, fmt.Errorf("malformed tools-version %q: components must be non-negative", s)
	}
	return ToolsVersion{Major: maj, Minor: min}, nil
}

// String returns the version in "major.minor" form.
func (v ToolsVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is the same as or newer than other.
func (v ToolsVersion) AtLeast(other ToolsVersion) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

// ExcludesPlugins reports whether plugin targets that are not top-level are
// dropped from product dependency closures under this version.
func (v ToolsVersion) ExcludesPlugins() bool {
	return v.AtLeast(minToolsVersionExcludedPlugins)
}

// SupportsTestableExecutables reports whether executable targets may be
// linked into test products under this version.
func (v ToolsVersion) SupportsTestableExecutables() bool {
	return v.AtLeast(minToolsVersionTestableExecutables)
}
