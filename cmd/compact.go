package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/seedpass/internal/core"
)

// Compact compacts the profile store to reclaim unused space
func Compact() {
	sp := Open()
	if !sp.Exists() {
		HandleError(core.ErrNotInitialized)
	}

	// Get file size before
	info, err := os.Stat(sp.Path())
	if err != nil {
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := sp.Compact(); err != nil {
		HandleError(err)
	}

	// Get file size after
	info, err = os.Stat(sp.Path())
	if err != nil {
		HandleError(err)
	}
	sizeAfter := info.Size()

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}
