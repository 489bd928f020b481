package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SPACEWAVES_TEST_HOST", "example.org")
	if got := GetEnv("SPACEWAVES_TEST_HOST", "localhost"); got != "example.org" {
		t.Fatalf("GetEnv = %q, want example.org", got)
	}
	if got := GetEnv("SPACEWAVES_TEST_UNSET", "localhost"); got != "localhost" {
		t.Fatalf("GetEnv unset = %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "2222", 2222},
		{"malformed", "22x", 7},
		{"empty", "", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SPACEWAVES_TEST_INT", tc.value)
			if got := GetEnvInt("SPACEWAVES_TEST_INT", 7); got != tc.want {
				t.Fatalf("GetEnvInt(%q) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("SPACEWAVES_TEST_IDLE", "90s")
	if got := GetEnvDuration("SPACEWAVES_TEST_IDLE", time.Minute); got != 90*time.Second {
		t.Fatalf("GetEnvDuration = %v, want 90s", got)
	}
	t.Setenv("SPACEWAVES_TEST_IDLE", "soon")
	if got := GetEnvDuration("SPACEWAVES_TEST_IDLE", time.Minute); got != time.Minute {
		t.Fatalf("GetEnvDuration malformed = %v, want fallback", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SPACEWAVES_TEST_PORT=2300\nSPACEWAVES_TEST_KEPT=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Registers cleanup for both keys; the first is then unset so the file
	// can provide it.
	t.Setenv("SPACEWAVES_TEST_PORT", "")
	os.Unsetenv("SPACEWAVES_TEST_PORT")
	t.Setenv("SPACEWAVES_TEST_KEPT", "env")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := GetEnvInt("SPACEWAVES_TEST_PORT", 0); got != 2300 {
		t.Fatalf("port = %d, want 2300 from the file", got)
	}
	if got := GetEnv("SPACEWAVES_TEST_KEPT", ""); got != "env" {
		t.Fatalf("existing variable overridden: %q", got)
	}
}
