package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"
)

// List shows the stored profiles
func List() {
	sp := Open()

	profiles, err := sp.Profiles()
	if err != nil {
		HandleError(err)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles stored")
		fmt.Println("Use 'seedpass remember <service>' or 'seedpass generate --remember' to add one")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tLENGTH\tSCHEME\tMODIFIED")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", p.Service, p.Length, p.Scheme, p.Modified.Local().Format(time.DateTime))
	}
	w.Flush()
}

// formatSize formats a file size in human-readable form
func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
