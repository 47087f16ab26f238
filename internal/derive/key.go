package derive

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator joins secret and service in v1 composite keys. It can occur
// inside either field, so ("a|", "b") and ("a", "|b") collide under v1.
// SchemeV2 length-prefixes the fields instead.
const Separator = "||"

// isTrimSpace reports the characters JavaScript's String.prototype.trim
// strips. It differs from unicode.IsSpace on U+0085 and U+FEFF. v1 keys
// were first produced by a browser, so this set is part of the scheme.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// NormalizeService trims a service identifier and lower-cases it so that
// "Gmail.com " and "gmail.com" name the same service.
func NormalizeService(service string) string {
	service = strings.TrimFunc(service, isTrimSpace)
	// cases.Caser is stateful, so build one per call.
	return cases.Lower(language.Und).String(service)
}

// TrimSecret returns secret without surrounding whitespace. The result
// aliases secret; no copy is made. Case is preserved.
func TrimSecret(secret []byte) []byte {
	return bytes.TrimFunc(secret, isTrimSpace)
}

// BuildKey produces the composite key for scheme. The returned slice is
// freshly allocated and the caller should clear it after use.
func BuildKey(scheme Scheme, secret []byte, service string) ([]byte, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}

	s := TrimSecret(secret)
	if len(s) == 0 {
		return nil, &EmptyInputError{Field: FieldSecret}
	}
	svc := NormalizeService(service)
	if svc == "" {
		return nil, &EmptyInputError{Field: FieldService}
	}

	switch scheme {
	case SchemeV2:
		key := make([]byte, 0, 8+len(s)+len(svc))
		key = binary.BigEndian.AppendUint32(key, uint32(len(s)))
		key = append(key, s...)
		key = binary.BigEndian.AppendUint32(key, uint32(len(svc)))
		key = append(key, svc...)
		return key, nil
	default:
		key := make([]byte, 0, len(s)+len(Separator)+len(svc))
		key = append(key, s...)
		key = append(key, Separator...)
		key = append(key, svc...)
		return key, nil
	}
}
