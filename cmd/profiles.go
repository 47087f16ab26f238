package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilePermSecure is used for export files
const FilePermSecure = 0600

// Export writes profiles as JSON to path, or to stdout when path is empty
// or "-"
func Export(path string) {
	sp := Open()

	if path == "" || path == "-" {
		if err := sp.Export(os.Stdout); err != nil {
			HandleError(err)
		}
		return
	}

	// Write to a temp file first so a failed export never truncates path
	tmp, err := os.CreateTemp(filepath.Dir(path), ".seedpass-export-*")
	if err != nil {
		HandleError(err)
	}
	defer os.Remove(tmp.Name())

	if err := sp.Export(tmp); err != nil {
		tmp.Close()
		HandleError(err)
	}
	if err := tmp.Chmod(FilePermSecure); err != nil {
		tmp.Close()
		HandleError(err)
	}
	if err := tmp.Close(); err != nil {
		HandleError(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		HandleError(err)
	}

	fmt.Fprintf(os.Stderr, "exported profiles to %s\n", path)
}

// Import merges profiles from a JSON export at path ("-" reads stdin)
func Import(path string, overwrite bool) {
	sp := Open()

	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			HandleError(err)
		}
		defer f.Close()
		in = f
	}

	result, err := sp.Import(in, overwrite)
	if err != nil {
		HandleError(err)
	}

	for _, s := range result.Added {
		fmt.Printf("added: %s\n", s)
	}
	for _, s := range result.Updated {
		fmt.Printf("updated: %s\n", s)
	}
	for _, s := range result.Skipped {
		fmt.Printf("skipped: %s (differs, use --overwrite)\n", s)
	}
	fmt.Printf("\n%d added, %d updated, %d unchanged, %d skipped\n",
		len(result.Added), len(result.Updated), len(result.Unchanged), len(result.Skipped))
}

// Diff compares the stored profiles with an export file
func Diff(path string) {
	sp := Open()

	f, err := os.Open(path)
	if err != nil {
		HandleError(err)
	}
	defer f.Close()

	diff, err := sp.Diff(f, path)
	if err != nil {
		HandleError(err)
	}

	if diff == "" {
		fmt.Println("No differences")
		return
	}
	fmt.Print(diff)
}
