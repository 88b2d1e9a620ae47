// Package version parses cube firmware protocol versions and reports which
// capabilities a given version supports.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Minimum is the oldest protocol version this library talks to.
const Minimum = "2.0.0"

// Version represents a parsed "major.minor.patch" protocol version.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string. A missing patch
// component is read as 0.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 2 && len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]uint16
	names := [3]string{"major", "minor", "patch"}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil || p == "" {
			return Version{}, fmt.Errorf("invalid version %q: bad %s component", s, names[i])
		}
		nums[i] = uint16(n)
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 depending on whether v is older than, equal
// to or newer than other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmp(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmp(v.Minor, other.Minor)
	default:
		return cmp(v.Patch, other.Patch)
	}
}

func cmp(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AtLeast returns true if v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// Compatible returns true if other has the same major version as v and is
// not older than Minimum.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major && other.AtLeast(MustParse(Minimum))
}
