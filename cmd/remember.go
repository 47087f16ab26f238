package cmd

import (
	"fmt"

	"github.com/illarion/seedpass/internal/derive"
)

// Remember saves length and scheme for a service without deriving
func Remember(service, length, scheme string) {
	sp := Open()

	p, err := sp.Remember(service, derive.ParseLength(length), ParseSchemeOrExit(scheme))
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("remembered: %s (length %d, scheme %s)\n", p.Service, p.Length, p.Scheme)
}

// Forget removes the profile for a service
func Forget(service string) {
	sp := Open()

	if err := sp.Forget(service); err != nil {
		HandleError(err)
	}

	fmt.Printf("forgot: %s\n", derive.NormalizeService(service))
}
