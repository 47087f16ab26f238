package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/illarion/seedpass/internal/derive"
	"github.com/illarion/seedpass/internal/storage"
)

const (
	StoreDir      = "seedpass"
	StoreFile     = "profiles.db"
	EnvStorePath  = "SEEDPASS_DB"
	DirPermSecure = 0700 // Directory: owner rwx only
)

var (
	ErrNotInitialized  = errors.New("profile store not initialized")
	ErrAlreadyExists   = errors.New("profile store already exists")
	ErrProfileNotFound = errors.New("no profile for service")
	ErrSecretMismatch  = errors.New("secrets do not match")
)

// DefaultStorePath returns $SEEDPASS_DB, or profiles.db under the user's
// config directory.
func DefaultStorePath() (string, error) {
	if p := os.Getenv(EnvStorePath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, StoreDir, StoreFile), nil
}

// SeedPass derives passwords and manages the profile store at path.
type SeedPass struct {
	path string
}

// New creates a SeedPass using the profile store at path. The store does
// not need to exist.
func New(path string) *SeedPass {
	return &SeedPass{path: path}
}

// Path returns the profile store location
func (s *SeedPass) Path() string {
	return s.path
}

// Exists reports whether the profile store file is present
func (s *SeedPass) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// open opens an existing, initialized store
func (s *SeedPass) open() (*storage.Storage, error) {
	if !s.Exists() {
		return nil, ErrNotInitialized
	}

	db, err := storage.Open(s.path)
	if err != nil {
		return nil, err
	}

	initialized, err := db.IsInitialized()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	if !initialized {
		db.Close()
		return nil, ErrNotInitialized
	}
	return db, nil
}

// Init creates a new profile store
func (s *SeedPass) Init() error {
	if s.Exists() {
		return ErrAlreadyExists
	}

	if err := os.MkdirAll(filepath.Dir(s.path), DirPermSecure); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := storage.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// GenerateOptions control a single Generate call. Zero values mean "use
// the remembered profile, or the default".
type GenerateOptions struct {
	Length   int
	Scheme   derive.Scheme
	Remember bool
}

// Result describes a derived password and the settings that produced it.
type Result struct {
	Password    string
	Service     string
	Length      int
	Scheme      derive.Scheme
	FromProfile bool
}

// Generate derives the password for service. Settings not given in opts
// come from the service's profile when the store has one. With
// opts.Remember the resolved settings are saved, which requires an
// initialized store. secret is not modified or retained.
func (s *SeedPass) Generate(ctx context.Context, secret []byte, service string, opts GenerateOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Scheme != "" {
		if err := opts.Scheme.Validate(); err != nil {
			return nil, err
		}
	}

	svc := derive.NormalizeService(service)

	var profile *storage.Profile
	if svc != "" {
		p, err := s.lookup(svc)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	res := &Result{Service: svc, Length: opts.Length, Scheme: opts.Scheme}
	if profile != nil {
		if res.Length <= 0 {
			res.Length = profile.Length
			res.FromProfile = true
		}
		if res.Scheme == "" {
			res.Scheme = derive.Scheme(profile.Scheme)
			res.FromProfile = true
		}
	}
	if res.Scheme == "" {
		res.Scheme = derive.DefaultScheme
	}
	res.Length = derive.ResolveLength(res.Length)

	password, err := derive.Derive(derive.Request{
		Secret:  secret,
		Service: svc,
		Length:  res.Length,
		Scheme:  res.Scheme,
	})
	if err != nil {
		return nil, err
	}
	res.Password = password

	if opts.Remember {
		if _, err := s.Remember(svc, res.Length, res.Scheme); err != nil {
			return nil, fmt.Errorf("failed to remember profile: %w", err)
		}
	}
	return res, nil
}

// lookup returns the profile for an already normalized service, or nil
// when there is none or no store exists yet.
func (s *SeedPass) lookup(svc string) (*storage.Profile, error) {
	db, err := s.open()
	if errors.Is(err, ErrNotInitialized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.GetProfile(svc)
}

// Remember stores length and scheme for service. Length is saved after
// the usual clamping, so a profile always holds the length actually used.
func (s *SeedPass) Remember(service string, length int, scheme derive.Scheme) (*storage.Profile, error) {
	svc := derive.NormalizeService(service)
	if svc == "" {
		return nil, &derive.EmptyInputError{Field: derive.FieldService}
	}
	if scheme == "" {
		scheme = derive.DefaultScheme
	}
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	length = derive.ResolveLength(length)

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	p, err := db.GetProfile(svc)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = storage.NewProfile(svc, length, scheme.String())
	} else if !p.Update(length, scheme.String()) {
		return p, nil
	}

	if err := db.PutProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Profile returns the stored profile for service
func (s *SeedPass) Profile(service string) (*storage.Profile, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	p, err := db.GetProfile(derive.NormalizeService(service))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Forget removes the profile for service
func (s *SeedPass) Forget(service string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	existed, err := db.DeleteProfile(derive.NormalizeService(service))
	if err != nil {
		return err
	}
	if !existed {
		return ErrProfileNotFound
	}
	return nil
}

// Profiles lists all stored profiles sorted by service
func (s *SeedPass) Profiles() ([]storage.Profile, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.ListProfiles()
}

// StatusInfo summarises the profile store
type StatusInfo struct {
	Path         string
	Initialized  bool
	ProfileCount int
	LastModified time.Time
	Schemes      map[string]int
}

// Status returns the current state of the store. A missing store is not
// an error; Initialized is false.
func (s *SeedPass) Status(ctx context.Context) (*StatusInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status := &StatusInfo{Path: s.path, Schemes: make(map[string]int)}

	db, err := s.open()
	if errors.Is(err, ErrNotInitialized) {
		return status, nil
	}
	if err != nil {
		return nil, err
	}
	defer db.Close()
	status.Initialized = true

	if modified, err := db.GetModified(); err == nil {
		status.LastModified = modified
	}

	if status.ProfileCount, err = db.CountProfiles(); err != nil {
		return nil, err
	}
	profiles, err := db.ListProfiles()
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		status.Schemes[p.Scheme]++
	}
	return status, nil
}

// Compact compacts the database to reclaim unused space.
func (s *SeedPass) Compact() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Compact()
}
