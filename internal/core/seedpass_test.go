package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/illarion/seedpass/internal/derive"
)

const testSecret = "correct horse battery staple"

func newInitialized(t *testing.T) *SeedPass {
	t.Helper()
	sp := New(filepath.Join(t.TempDir(), "nested", StoreFile))
	if err := sp.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return sp
}

func TestInit(t *testing.T) {
	sp := New(filepath.Join(t.TempDir(), "cfg", StoreFile))

	if sp.Exists() {
		t.Fatal("Store should not exist yet")
	}
	if err := sp.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := sp.Init(); err != ErrAlreadyExists {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	info, err := os.Stat(filepath.Dir(sp.Path()))
	if err != nil {
		t.Fatalf("Store directory missing: %v", err)
	}
	if info.Mode().Perm() != DirPermSecure {
		t.Errorf("Directory mode = %v, want %v", info.Mode().Perm(), os.FileMode(DirPermSecure))
	}
}

func TestDefaultStorePathFromEnv(t *testing.T) {
	t.Setenv(EnvStorePath, "/tmp/custom.db")
	p, err := DefaultStorePath()
	if err != nil {
		t.Fatalf("DefaultStorePath failed: %v", err)
	}
	if p != "/tmp/custom.db" {
		t.Errorf("DefaultStorePath = %s", p)
	}
}

func TestGenerateWithoutStore(t *testing.T) {
	sp := New(filepath.Join(t.TempDir(), StoreFile))

	res, err := sp.Generate(context.Background(), []byte(testSecret), " Gmail.com ", GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Password != "=UkAS5*Ff6F!paVg" {
		t.Errorf("Password = %q", res.Password)
	}
	if res.Service != "gmail.com" || res.Length != derive.DefaultLength || res.Scheme != derive.SchemeV1 {
		t.Errorf("Unexpected settings: %+v", res)
	}
	if res.FromProfile {
		t.Error("No profile should have been used")
	}
	if sp.Exists() {
		t.Error("Generate must not create the store")
	}
}

func TestGenerateRememberRequiresStore(t *testing.T) {
	sp := New(filepath.Join(t.TempDir(), StoreFile))

	_, err := sp.Generate(context.Background(), []byte(testSecret), "gmail.com", GenerateOptions{Remember: true})
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestGenerateUsesProfile(t *testing.T) {
	sp := newInitialized(t)
	ctx := context.Background()

	first, err := sp.Generate(ctx, []byte(testSecret), "gmail.com", GenerateOptions{Length: 40, Scheme: derive.SchemeV2, Remember: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Same service, no options: settings come from the profile
	again, err := sp.Generate(ctx, []byte(testSecret), "GMAIL.COM", GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !again.FromProfile {
		t.Error("Expected profile settings to be used")
	}
	if again.Password != first.Password || again.Length != 40 || again.Scheme != derive.SchemeV2 {
		t.Errorf("Profile not applied: %+v", again)
	}

	// Explicit length wins over the profile
	short, err := sp.Generate(ctx, []byte(testSecret), "gmail.com", GenerateOptions{Length: 10})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(short.Password) != 10 || short.Scheme != derive.SchemeV2 {
		t.Errorf("Explicit length not applied: %+v", short)
	}
}

func TestGenerateRemembersClampedLength(t *testing.T) {
	sp := newInitialized(t)

	res, err := sp.Generate(context.Background(), []byte(testSecret), "bank.example", GenerateOptions{Length: 500, Remember: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(res.Password) != derive.MaxLength {
		t.Errorf("Password length = %d", len(res.Password))
	}

	p, err := sp.Profile("bank.example")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.Length != derive.MaxLength || p.Scheme != "v1" {
		t.Errorf("Stored profile = %+v", p)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	sp := newInitialized(t)
	ctx := context.Background()

	if _, err := sp.Generate(ctx, []byte(""), "gmail.com", GenerateOptions{Remember: true}); !errors.Is(err, derive.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput for empty secret, got %v", err)
	}
	if _, err := sp.Generate(ctx, []byte(testSecret), "  ", GenerateOptions{Remember: true}); !errors.Is(err, derive.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput for empty service, got %v", err)
	}

	// Failed derivations must not leave profiles behind
	profiles, err := sp.Profiles()
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("Expected no profiles, got %+v", profiles)
	}
}

func TestGenerateUnknownScheme(t *testing.T) {
	sp := New(filepath.Join(t.TempDir(), StoreFile))
	_, err := sp.Generate(context.Background(), []byte(testSecret), "svc", GenerateOptions{Scheme: "v7"})
	if !errors.Is(err, derive.ErrUnknownScheme) {
		t.Errorf("Expected ErrUnknownScheme, got %v", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	sp := New(filepath.Join(t.TempDir(), StoreFile))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := sp.Generate(ctx, []byte(testSecret), "gmail.com", GenerateOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if res != nil {
		t.Errorf("Expected no result, got %+v", res)
	}
}

func TestRememberAndForget(t *testing.T) {
	sp := newInitialized(t)

	if _, err := sp.Remember(" GitHub.com", 24, ""); err != nil {
		t.Fatalf("Remember failed: %v", err)
	}
	p, err := sp.Profile("github.com")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.Service != "github.com" || p.Length != 24 || p.Scheme != "v1" {
		t.Errorf("Unexpected profile: %+v", p)
	}

	if _, err := sp.Remember("", 24, ""); !errors.Is(err, derive.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
	if _, err := sp.Remember("svc", 24, "bogus"); !errors.Is(err, derive.ErrUnknownScheme) {
		t.Errorf("Expected ErrUnknownScheme, got %v", err)
	}

	if err := sp.Forget("GITHUB.COM"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if err := sp.Forget("github.com"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound, got %v", err)
	}
	if _, err := sp.Profile("github.com"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound, got %v", err)
	}
}

func TestOperationsRequireStore(t *testing.T) {
	sp := New(filepath.Join(t.TempDir(), StoreFile))

	if _, err := sp.Remember("svc", 16, ""); err != ErrNotInitialized {
		t.Errorf("Remember: expected ErrNotInitialized, got %v", err)
	}
	if err := sp.Forget("svc"); err != ErrNotInitialized {
		t.Errorf("Forget: expected ErrNotInitialized, got %v", err)
	}
	if _, err := sp.Profiles(); err != ErrNotInitialized {
		t.Errorf("Profiles: expected ErrNotInitialized, got %v", err)
	}
	if err := sp.Compact(); err != ErrNotInitialized {
		t.Errorf("Compact: expected ErrNotInitialized, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	missing := New(filepath.Join(t.TempDir(), StoreFile))
	status, err := missing.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Initialized {
		t.Error("Missing store should not report initialized")
	}

	sp := newInitialized(t)
	for svc, scheme := range map[string]derive.Scheme{"a.io": derive.SchemeV1, "b.io": derive.SchemeV2, "c.io": derive.SchemeV2} {
		if _, err := sp.Remember(svc, 20, scheme); err != nil {
			t.Fatalf("Remember failed: %v", err)
		}
	}

	status, err = sp.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !status.Initialized || status.ProfileCount != 3 {
		t.Errorf("Unexpected status: %+v", status)
	}
	if status.Schemes["v1"] != 1 || status.Schemes["v2"] != 2 {
		t.Errorf("Scheme counts = %v", status.Schemes)
	}
	if status.LastModified.IsZero() {
		t.Error("LastModified should be set")
	}

	if err := sp.Forget("b.io"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	status, err = sp.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.ProfileCount != 2 {
		t.Errorf("ProfileCount after forget = %d, want 2", status.ProfileCount)
	}
}

func TestCompact(t *testing.T) {
	sp := newInitialized(t)
	for _, svc := range []string{"a.io", "b.io"} {
		if _, err := sp.Remember(svc, 16, ""); err != nil {
			t.Fatalf("Remember failed: %v", err)
		}
	}
	if err := sp.Forget("a.io"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if err := sp.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}

	profiles, err := sp.Profiles()
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Service != "b.io" {
		t.Errorf("Unexpected profiles after compact: %+v", profiles)
	}
}
