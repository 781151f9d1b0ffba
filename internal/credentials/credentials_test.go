package credentials

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestResolveOrder(t *testing.T) {
	fixed := func(v string) func() (string, error) {
		return func() (string, error) { return v, nil }
	}
	failing := func() (string, error) { return "", errors.New("store unavailable") }

	tests := []struct {
		name    string
		sources []Source
		want    string
		wantErr error
	}{
		{
			name: "first source wins",
			sources: []Source{
				{Name: "a", Lookup: fixed("key-a")},
				{Name: "b", Lookup: fixed("key-b")},
			},
			want: "key-a",
		},
		{
			name: "empty value falls through",
			sources: []Source{
				{Name: "a", Lookup: fixed("")},
				{Name: "b", Lookup: fixed("key-b")},
			},
			want: "key-b",
		},
		{
			name: "whitespace value falls through",
			sources: []Source{
				{Name: "a", Lookup: fixed("  \n")},
				{Name: "b", Lookup: fixed("key-b")},
			},
			want: "key-b",
		},
		{
			name: "failing source falls through",
			sources: []Source{
				{Name: "a", Lookup: failing},
				{Name: "b", Lookup: fixed("key-b")},
			},
			want: "key-b",
		},
		{
			name: "all sources empty",
			sources: []Source{
				{Name: "a", Lookup: fixed("")},
				{Name: "b", Lookup: failing},
			},
			wantErr: ErrNotFound,
		},
		{
			name:    "no sources",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(testLogger(), tt.sources...)
			got, err := r.Resolve()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSecretsFileSource(t *testing.T) {
	path := writeTempFile(t, "secrets.toml", `ANTHROPIC_API_KEY = "sk-from-file"`)

	value, err := SecretsFile(path, "ANTHROPIC_API_KEY").Lookup()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "sk-from-file" {
		t.Errorf("expected 'sk-from-file', got %q", value)
	}
}

func TestSecretsFileMissingKey(t *testing.T) {
	path := writeTempFile(t, "secrets.toml", `OTHER_KEY = "nope"`)

	value, err := SecretsFile(path, "ANTHROPIC_API_KEY").Lookup()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "" {
		t.Errorf("expected empty value, got %q", value)
	}
}

// A broken secrets store must not abort resolution; the env source still
// gets its turn.
func TestResolveFallsThroughBrokenSecretsFile(t *testing.T) {
	garbage := writeTempFile(t, "secrets.toml", "not [valid toml ===")

	t.Setenv("DOCQA_TEST_API_KEY", "sk-from-env")

	r := NewResolver(testLogger(),
		SecretsFile(garbage, "DOCQA_TEST_API_KEY"),
		Env("DOCQA_TEST_API_KEY"),
	)
	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "sk-from-env" {
		t.Errorf("expected 'sk-from-env', got %q", got)
	}
}

func TestResolveFallsThroughAbsentSecretsFile(t *testing.T) {
	t.Setenv("DOCQA_TEST_API_KEY", "sk-from-env")

	r := NewResolver(testLogger(),
		SecretsFile(filepath.Join(t.TempDir(), "does-not-exist.toml"), "DOCQA_TEST_API_KEY"),
		Env("DOCQA_TEST_API_KEY"),
	)
	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "sk-from-env" {
		t.Errorf("expected 'sk-from-env', got %q", got)
	}
}

func TestResolveNotFoundWhenAllSourcesAbsent(t *testing.T) {
	t.Setenv("DOCQA_TEST_API_KEY", "")

	r := NewResolver(testLogger(),
		SecretsFile(filepath.Join(t.TempDir(), "does-not-exist.toml"), "DOCQA_TEST_API_KEY"),
		Env("DOCQA_TEST_API_KEY"),
	)
	if _, err := r.Resolve(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
