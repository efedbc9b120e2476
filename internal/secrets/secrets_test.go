// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		env   map[string]string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyAPIKey, "  abc123  \n")
				writeFile(t, dir, KeyEmail, "user@example.com\n")
				return dir
			},
			want: map[string]string{
				KeyAPIKey: "abc123",
				KeyEmail:  "user@example.com",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "environment fills missing keys",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyAPIKey, "from-file")
				return dir
			},
			env: map[string]string{
				"NCBI_API_KEY": "from-env",
				"NCBI_EMAIL":   "env@example.com",
			},
			want: map[string]string{
				KeyAPIKey: "from-file",
				KeyEmail:  "env@example.com",
			},
		},
		{
			name: "skips empty files and dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyAPIKey, "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, ".hidden-key", "secret")
				return dir
			},
			want: map[string]string{
				KeyAPIKey: "valid-key",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyEmail, "a@b.org")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				KeyEmail: "a@b.org",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.env == nil {
				// Keep ambient NCBI variables out of the result.
				t.Setenv("NCBI_API_KEY", "")
				t.Setenv("NCBI_EMAIL", "")
			}
			dir := tt.setup(t)
			got, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root: file permissions are not enforced, cannot create an unreadable file")
	}
	t.Setenv("NCBI_API_KEY", "")
	t.Setenv("NCBI_EMAIL", "")

	dir := t.TempDir()
	writeFile(t, dir, KeyAPIKey, "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got[KeyAPIKey])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600))
}
