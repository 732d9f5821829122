// Package filex contains small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataDir creates (if needed) and returns the directory that holds the
// local database and other durable client files. An empty base resolves to
// "teamkeeper" under the current working directory.
func EnsureDataDir(base string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = filepath.Join(cwd, "teamkeeper")
	}

	if err := os.MkdirAll(base, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", base, err)
	}

	return base, nil
}
