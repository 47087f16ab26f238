package derive

import (
	"fmt"
	"strings"
)

// Scheme names a derivation scheme. Passwords from different schemes are
// unrelated, so a scheme must never change once users depend on it.
type Scheme string

const (
	SchemeV1 Scheme = "v1"
	SchemeV2 Scheme = "v2"

	DefaultScheme = SchemeV1
)

// Schemes lists every supported scheme, oldest first.
var Schemes = []Scheme{SchemeV1, SchemeV2}

// ParseScheme resolves a user-supplied scheme name. The empty string
// selects DefaultScheme.
func ParseScheme(name string) (Scheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultScheme, nil
	}
	s := Scheme(name)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate reports ErrUnknownScheme for unsupported schemes.
func (s Scheme) Validate() error {
	switch s {
	case SchemeV1, SchemeV2:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownScheme, string(s))
}

func (s Scheme) String() string {
	return string(s)
}
