//go:build integration

package itest

import (
	"errors"
	"os"
	"path/filepath"
)

const cliPackage = "cmd/ytsum"

// findRepoRoot walks up from the working directory to the module holding the CLI.
func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; ; {
		if isRepoRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.New("could not locate go.mod with " + cliPackage)
}

func isRepoRoot(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err != nil {
		return false
	}
	st, err := os.Stat(filepath.Join(dir, filepath.FromSlash(cliPackage)))
	return err == nil && st.IsDir()
}
