package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/illarion/seedpass/internal/crypto"
	"golang.org/x/term"
)

// EnvSecret names the environment variable consulted before prompting.
const EnvSecret = "SEEDPASS_SECRET"

var errNoSecret = errors.New("no secret provided")

var (
	stdinOnce   sync.Once
	stdinReader *bufio.Reader
)

// ReadSecret reads the master secret from the terminal without echoing.
// When stdin is not a terminal a single line is read instead, so secrets
// can be piped in. The prompt goes to stderr to keep stdout clean.
func ReadSecret(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		stdinOnce.Do(func() { stdinReader = bufio.NewReader(os.Stdin) })
		return readSecretLine(stdinReader)
	}

	fmt.Fprint(os.Stderr, prompt)

	// Read secret without echo
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // New line after secret

	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	return secret, nil
}

// readSecretLine reads one line from r without its line terminator
func readSecretLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		crypto.ClearBytes(line)
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	if len(line) == 0 {
		return nil, errNoSecret
	}

	n := len(line)
	if line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	secret := crypto.Clone(line[:n])
	crypto.ClearBytes(line)
	return secret, nil
}

// ReadSecretConfirm reads the secret twice and ensures both match
func ReadSecretConfirm() ([]byte, error) {
	secret1, err := ReadSecret("Master secret: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(secret1)

	secret2, err := ReadSecret("Confirm master secret: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(secret2)

	if !crypto.ConstantTimeCompare(secret1, secret2) {
		return nil, ErrSecretMismatch
	}

	// Return a copy of the secret
	return crypto.Clone(secret1), nil
}

// SecretFromEnv reads the master secret from SEEDPASS_SECRET
func SecretFromEnv() []byte {
	secret := os.Getenv(EnvSecret)
	if secret == "" {
		return nil
	}
	// Return a copy to avoid issues when clearing the bytes
	return []byte(secret)
}
