package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/seedpass/internal/core"
	"github.com/illarion/seedpass/internal/crypto"
	"github.com/illarion/seedpass/internal/derive"
)

// Generate derives and prints the password for service. Only the password
// goes to stdout so it can be piped; the summary goes to stderr.
func Generate(ctx context.Context, service, length, scheme string, remember, confirm bool) {
	// No point prompting for the secret when the service is blank
	if err := checkService(service); err != nil {
		HandleError(err)
	}
	sp := Open()

	opts := core.GenerateOptions{
		Length:   derive.ParseLength(length),
		Remember: remember,
	}
	if scheme != "" {
		opts.Scheme = ParseSchemeOrExit(scheme)
	}

	secret := GetSecretOrExit(confirm)
	defer crypto.ClearBytes(secret)

	res, err := sp.Generate(ctx, secret, service, opts)
	if err != nil {
		crypto.ClearBytes(secret)
		HandleError(err)
	}

	fmt.Println(res.Password)

	source := ""
	if res.FromProfile {
		source = ", from profile"
	}
	fmt.Fprintf(os.Stderr, "Generated for %s (%d, %s%s)\n", res.Service, res.Length, res.Scheme, source)
	if remember {
		fmt.Fprintf(os.Stderr, "Profile saved for %s\n", res.Service)
	}
}

func checkService(service string) error {
	if derive.NormalizeService(service) == "" {
		return &derive.EmptyInputError{Field: derive.FieldService}
	}
	return nil
}
