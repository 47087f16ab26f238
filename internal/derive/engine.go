package derive

import (
	gocrypto "crypto"
	_ "crypto/sha256" // registers SHA-256 with crypto.Hash
	"fmt"
	"io"

	"github.com/illarion/seedpass/internal/crypto"
	"golang.org/x/crypto/hkdf"
)

// Alphabet is the ordered set of characters a derived password is drawn
// from. Index positions are part of every scheme's contract.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%*-_+="

// v2Limit is the largest multiple of len(Alphabet) not above 256. Bytes at
// or above it are discarded so every character is equally likely.
const v2Limit = 256 - 256%len(Alphabet)

const v2Info = "seedpass/v2"

// Engine maps composite keys to passwords for one scheme.
type Engine struct {
	scheme Scheme
	hash   gocrypto.Hash
}

// NewEngine returns the engine for scheme. Both schemes use SHA-256.
func NewEngine(scheme Scheme) (*Engine, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	return &Engine{scheme: scheme, hash: gocrypto.SHA256}, nil
}

// Derive returns a password for key. length goes through ResolveLength
// first, so the result always has between MinLength and MaxLength
// characters. key is not modified and must not be empty.
func (e *Engine) Derive(key []byte, length int) (string, error) {
	if len(key) == 0 {
		return "", &EmptyInputError{Field: FieldKey}
	}
	if !e.hash.Available() {
		return "", fmt.Errorf("%w: %s", ErrHashUnavailable, e.hash)
	}
	length = ResolveLength(length)

	switch e.scheme {
	case SchemeV2:
		return e.expand(key, length)
	default:
		return e.cycle(key, length), nil
	}
}

// cycle is the v1 mapping: position i uses digest byte i mod digest size.
func (e *Engine) cycle(key []byte, length int) string {
	h := e.hash.New()
	h.Write(key)
	digest := h.Sum(nil)
	defer crypto.ClearBytes(digest)
	// Only digest is wiped. h still buffers the tail of key until it is
	// collected; hash.Hash has no way to clear it and Reset leaves the
	// block buffer in place.

	out := make([]byte, length)
	for i := range out {
		b := digest[i%len(digest)]
		out[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(out)
}

// expand is the v2 mapping: an HKDF stream bound to the output length,
// with rejection sampling onto Alphabet.
func (e *Engine) expand(key []byte, length int) (string, error) {
	info := append([]byte(v2Info), byte(length))
	r := hkdf.New(e.hash.New, key, nil, info)

	out := make([]byte, 0, length)
	buf := make([]byte, e.hash.Size())
	defer crypto.ClearBytes(buf)

	for len(out) < length {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("failed to expand key: %w", err)
		}
		for _, b := range buf {
			if int(b) >= v2Limit {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// Request is a single derivation. Length 0 means "use the default".
type Request struct {
	Secret  []byte
	Service string
	Length  int
	Scheme  Scheme
}

// Derive builds the composite key for req and derives the password.
// An empty Scheme selects DefaultScheme.
func Derive(req Request) (string, error) {
	scheme := req.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	engine, err := NewEngine(scheme)
	if err != nil {
		return "", err
	}

	key, err := BuildKey(scheme, req.Secret, req.Service)
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(key)

	return engine.Derive(key, req.Length)
}

// Generate derives a v1 password. length <= 0 selects DefaultLength.
func Generate(secret []byte, service string, length int) (string, error) {
	return Derive(Request{Secret: secret, Service: service, Length: length, Scheme: SchemeV1})
}
