// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads NCBI credentials from a directory of plain-text
// files, with a .env fallback for users who prefer environment variables.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: ncbi-api-key, ncbi-email.
// Supported environment variables: NCBI_API_KEY, NCBI_EMAIL.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Key names under the secrets directory.
const (
	KeyAPIKey = "ncbi-api-key"
	KeyEmail  = "ncbi-email"
)

// envNames maps secret keys to their environment-variable equivalents.
var envNames = map[string]string{
	KeyAPIKey: "NCBI_API_KEY",
	KeyEmail:  "NCBI_EMAIL",
}

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A .env file in the working directory is loaded first, and any
// NCBI_* variables fill keys the directory did not provide.
// A missing directory or missing files are not errors; Load returns a map
// with whatever was found. Unreadable files produce a warning on stderr
// but do not abort.
func Load(dir string) (map[string]string, error) {
	// Best effort: a missing .env is the common case.
	_ = godotenv.Load()

	secrets := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	for key, env := range envNames {
		if secrets[key] != "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			secrets[key] = v
		}
	}

	return secrets, nil
}
