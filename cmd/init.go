package cmd

import (
	"fmt"
)

// Init creates the profile store
func Init() {
	sp := Open()

	if err := sp.Init(); err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Initialized profile store at %s\n", sp.Path())
}
