package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/illarion/seedpass/internal/derive"
)

// Status shows the state of the profile store (no secret required)
func Status(ctx context.Context) {
	sp := Open()

	status, err := sp.Status(ctx)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Profile store: %s\n", status.Path)
	if !status.Initialized {
		fmt.Println("  not initialized")
		fmt.Println("Run 'seedpass init' to remember per-service settings")
		fmt.Printf("\nDefaults: length %d (range %d-%d), scheme %s\n", derive.DefaultLength, derive.MinLength, derive.MaxLength, derive.DefaultScheme)
		return
	}

	if info, err := os.Stat(status.Path); err == nil {
		fmt.Printf("  size: %s\n", formatSize(info.Size()))
	}
	fmt.Printf("  profiles: %d\n", status.ProfileCount)

	schemes := make([]string, 0, len(status.Schemes))
	for s := range status.Schemes {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	for _, s := range schemes {
		fmt.Printf("    %s: %d\n", s, status.Schemes[s])
	}

	if !status.LastModified.IsZero() {
		fmt.Printf("  last modified: %s\n", status.LastModified.Format(time.RFC3339))
	}
	fmt.Printf("\nDefaults: length %d (range %d-%d), scheme %s\n", derive.DefaultLength, derive.MinLength, derive.MaxLength, derive.DefaultScheme)
}
