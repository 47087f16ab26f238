package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/illarion/seedpass/internal/derive"
	"github.com/illarion/seedpass/internal/storage"
)

// ImportResult lists what Import did with each service
type ImportResult struct {
	Added     []string
	Updated   []string
	Unchanged []string
	Skipped   []string // Differed from the store but overwrite was off
}

// marshalProfiles renders profiles in the export format: an indented JSON
// array with a trailing newline, one stable layout so exports diff well.
func marshalProfiles(profiles []storage.Profile) ([]byte, error) {
	if profiles == nil {
		profiles = []storage.Profile{}
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Export writes all profiles to w
func (s *SeedPass) Export(w io.Writer) error {
	profiles, err := s.Profiles()
	if err != nil {
		return err
	}
	data, err := marshalProfiles(profiles)
	if err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// decodeProfiles parses an export and normalises every entry
func decodeProfiles(r io.Reader) ([]storage.Profile, error) {
	var profiles []storage.Profile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	for i := range profiles {
		p := &profiles[i]
		p.Service = derive.NormalizeService(p.Service)
		if p.Service == "" {
			return nil, fmt.Errorf("profile %d: %w", i, &derive.EmptyInputError{Field: derive.FieldService})
		}
		scheme, err := derive.ParseScheme(p.Scheme)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Service, err)
		}
		p.Scheme = scheme.String()
		p.Length = derive.ResolveLength(p.Length)
	}
	return profiles, nil
}

// Import reads an export from r and merges it into the store. Existing
// profiles with different settings are replaced only when overwrite is
// set. Timestamps from the file are kept for new profiles.
func (s *SeedPass) Import(r io.Reader, overwrite bool) (*ImportResult, error) {
	incoming, err := decodeProfiles(r)
	if err != nil {
		return nil, err
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	result := &ImportResult{}
	for i := range incoming {
		in := &incoming[i]

		existing, err := db.GetProfile(in.Service)
		if err != nil {
			return result, err
		}

		switch {
		case existing == nil:
			fresh := storage.NewProfile(in.Service, in.Length, in.Scheme)
			if !in.Created.IsZero() {
				fresh.Created = in.Created
			}
			if !in.Modified.IsZero() {
				fresh.Modified = in.Modified
			}
			if err := db.PutProfile(fresh); err != nil {
				return result, err
			}
			result.Added = append(result.Added, in.Service)
		case existing.Length == in.Length && existing.Scheme == in.Scheme:
			result.Unchanged = append(result.Unchanged, in.Service)
		case !overwrite:
			result.Skipped = append(result.Skipped, in.Service)
		default:
			existing.Update(in.Length, in.Scheme)
			if err := db.PutProfile(existing); err != nil {
				return result, err
			}
			result.Updated = append(result.Updated, in.Service)
		}
	}
	return result, nil
}

// Diff compares the store's export with the export read from r. It
// returns an empty string when they match.
func (s *SeedPass) Diff(r io.Reader, name string) (string, error) {
	var current bytes.Buffer
	if err := s.Export(&current); err != nil {
		return "", err
	}

	other, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	return LineDiff("store", name, current.Bytes(), other), nil
}

// LineDiff produces a line-oriented diff of a and b using go-diff.
// Unchanged lines are prefixed with a space, removed lines with '-' and
// added lines with '+'. Identical input yields an empty string.
func LineDiff(nameA, nameB string, a, b []byte) string {
	if bytes.Equal(a, b) {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	ca, cb, lineArray := dmp.DiffLinesToChars(string(a), string(b))
	diffs := dmp.DiffMain(ca, cb, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var result strings.Builder
	fmt.Fprintf(&result, "--- %s\n", nameA)
	fmt.Fprintf(&result, "+++ %s\n", nameB)

	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			prefix = " "
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			result.WriteString(prefix)
			result.WriteString(line)
			result.WriteByte('\n')
		}
	}
	return result.String()
}

// splitLines splits text into lines without their terminators. A final
// newline does not produce an empty trailing line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
