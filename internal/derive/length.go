package derive

import "strings"

const (
	MinLength     = 4
	MaxLength     = 64
	DefaultLength = 16
)

// ResolveLength applies the length policy: non-positive values mean
// "not given" and become DefaultLength, everything else is clamped into
// [MinLength, MaxLength]. Out-of-range input is never an error.
func ResolveLength(n int) int {
	switch {
	case n <= 0:
		return DefaultLength
	case n < MinLength:
		return MinLength
	case n > MaxLength:
		return MaxLength
	default:
		return n
	}
}

// ParseLength reads a length typed by a user. It accepts what a browser
// integer field would: leading whitespace, an optional sign, an optional
// 0x prefix, and digits up to the first character that is not one.
// Trailing junk is ignored ("12px" is 12). Input with no leading digits
// returns 0, which ResolveLength treats as absent.
func ParseLength(s string) int {
	s = strings.TrimLeftFunc(s, isTrimSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	n, digits := 0, 0
	for _, r := range s {
		d := digitValue(r)
		if d < 0 || d >= base {
			break
		}
		digits++
		// Past MaxLength the exact value no longer matters.
		if n <= MaxLength {
			n = n*base + d
		}
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}
