// Package version compares version strings under the two matching policies
// the compliance engines use: strict textual equality and loose ordering,
// plus SemVer precedence for callers that want it.
package version

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/blang/semver/v4"
)

// ErrComparison is matched by errors returned when two versions cannot be compared.
var ErrComparison = errors.New("version comparison error")

// ComparisonError names both inputs of a failed comparison.
type ComparisonError struct {
	A string
	B string
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("version comparison error between '%s' and '%s'", e.A, e.B)
}

func (e *ComparisonError) Is(target error) bool {
	return target == ErrComparison
}

// Strict reports whether two versions are identical once surrounding
// whitespace is trimmed. It carries no ordering.
func Strict(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

// IsUnknown reports whether v is the "unknown" placeholder, in any case.
// Surrounding whitespace is ignored, as label values are trimmed on parse.
func IsUnknown(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "unknown")
}

// Compare orders two versions, returning -1, 0 or +1.
//
// Both sides are split into components at '.', '-', '_', '+' and at
// digit/letter boundaries, and compared left to right: numerically when both
// components are integers, lexically when neither is, and a number sorts
// below a non-numeric component. A missing trailing component counts as 0,
// so "1.2.0" equals "1.2" and "1.0a" is newer than "1.0". Every component
// takes part, build metadata included.
//
// An empty version on either side cannot be ordered and yields a *ComparisonError.
func Compare(a, b string) (int, error) {
	ta, tb := strings.TrimSpace(a), strings.TrimSpace(b)
	if ta == "" || tb == "" {
		return 0, &ComparisonError{A: a, B: b}
	}
	return compareComponents(Components(ta), Components(tb)), nil
}

// SemVer orders two SemVer 2.0 versions by precedence: pre-releases sort
// below their release and build metadata is ignored. Either side failing to
// parse yields a *ComparisonError.
func SemVer(a, b string) (int, error) {
	va, err := semver.Parse(strings.TrimSpace(a))
	if err != nil {
		return 0, &ComparisonError{A: a, B: b}
	}
	vb, err := semver.Parse(strings.TrimSpace(b))
	if err != nil {
		return 0, &ComparisonError{A: a, B: b}
	}
	return va.Compare(vb), nil
}

// Components splits a version into its loose-ordering components.
func Components(v string) []string {
	var (
		parts []string
		cur   strings.Builder
		digit bool
	)
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	for _, r := range v {
		if isSeparator(r) {
			flush()
			continue
		}
		isDigit := r >= '0' && r <= '9'
		if cur.Len() > 0 && isDigit != digit {
			flush()
		}
		digit = isDigit
		cur.WriteRune(r)
	}
	flush()

	return parts
}

func isSeparator(r rune) bool {
	switch r {
	case '.', '-', '_', '+':
		return true
	}
	return unicode.IsSpace(r)
}

func compareComponents(a, b []string) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		ca, cb := "0", "0"
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		if c := compareComponent(ca, cb); c != 0 {
			return c
		}
	}

	return 0
}

func compareComponent(a, b string) int {
	na, nb := isNumeric(a), isNumeric(b)
	switch {
	case na && nb:
		return compareNumeric(a, b)
	case na:
		return -1
	case nb:
		return 1
	}
	return strings.Compare(a, b)
}

// compareNumeric compares two digit strings of any length without overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
