package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/seedpass/internal/core"
	"github.com/illarion/seedpass/internal/derive"
)

// Open returns a SeedPass for the default store location, exiting on error
func Open() *core.SeedPass {
	path, err := core.DefaultStorePath()
	if err != nil {
		HandleError(err)
	}
	return core.New(path)
}

// GetSecret retrieves the master secret from the environment or prompts
// for it. With confirm the prompt asks twice. The caller is responsible
// for calling crypto.ClearBytes on the returned secret.
func GetSecret(confirm bool) ([]byte, error) {
	// Try environment variable first
	if secret := core.SecretFromEnv(); secret != nil {
		return secret, nil
	}

	if confirm {
		return core.ReadSecretConfirm()
	}
	return core.ReadSecret("Master secret: ")
}

// GetSecretOrExit is like GetSecret but exits on error
func GetSecretOrExit(confirm bool) []byte {
	secret, err := GetSecret(confirm)
	if err != nil {
		HandleError(err)
	}
	return secret
}

// HandleError handles common errors consistently
func HandleError(err error) {
	var empty *derive.EmptyInputError
	switch {
	case errors.As(err, &empty):
		fmt.Fprintf(os.Stderr, "Error: master secret and service name are required (%s is empty)\n", empty.Field)
	case errors.Is(err, core.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: profile store not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'seedpass init' first\n")
	case errors.Is(err, core.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: profile store already exists\n")
		fmt.Fprintf(os.Stderr, "Use 'seedpass status' to see current state\n")
	case errors.Is(err, core.ErrSecretMismatch):
		fmt.Fprintf(os.Stderr, "Error: secrets do not match\n")
	case errors.Is(err, derive.ErrUnknownScheme):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Supported schemes: %v\n", derive.Schemes)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// ParseSchemeOrExit resolves a -scheme flag value
func ParseSchemeOrExit(name string) derive.Scheme {
	scheme, err := derive.ParseScheme(name)
	if err != nil {
		HandleError(err)
	}
	return scheme
}
