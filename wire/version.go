package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// releaseBuild is the build component of every released version id.
const releaseBuild = 99

// Version is a negotiated wire-compatibility level.
//
// Ids are packed as major*1_000_000 + minor*10_000 + revision*100 + build so
// that plain integer comparison gives release ordering.
type Version int32

// Known protocol markers.
const (
	V7_0_0 Version = 7_00_00_99
	V7_6_0 Version = 7_06_00_99
	// V7_7_0 introduced the session id on search context identities.
	V7_7_0 Version = 7_07_00_99
	V8_0_0 Version = 8_00_00_99

	// Current is the version spoken by this build.
	Current = V8_0_0
)

// NewVersion builds a release Version from its components.
func NewVersion(major, minor, revision int) (Version, error) {
	if major < 0 || major > 2146 || minor < 0 || minor > 99 || revision < 0 || revision > 99 {
		return 0, fmt.Errorf("%w: %d.%d.%d out of range", ErrInvalidVersion, major, minor, revision)
	}
	return Version(major*1_000_000 + minor*10_000 + revision*100 + releaseBuild), nil
}

// ParseVersion parses "major.minor.revision". A missing revision defaults to 0.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	nums := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, s, err)
		}
		nums[i] = n
	}
	return NewVersion(nums[0], nums[1], nums[2])
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// OnOrAfter reports whether v is the same as or newer than other.
func (v Version) OnOrAfter(other Version) bool { return v >= other }

// Before reports whether v is older than other.
func (v Version) Before(other Version) bool { return v < other }

// Major returns the major component.
func (v Version) Major() int { return int(v) / 1_000_000 }

// Minor returns the minor component.
func (v Version) Minor() int { return int(v) / 10_000 % 100 }

// Revision returns the revision component.
func (v Version) Revision() int { return int(v) / 100 % 100 }

// String returns the dotted release form, e.g. "7.7.0".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Revision())
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
