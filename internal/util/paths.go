package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePath turns a file-or-directory argument into a file path. An
// empty arg resolves to name inside the working directory, an existing
// directory resolves to name inside it and anything else is returned as is.
func ResolvePath(arg, name string) (string, error) {
	if arg == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("unable to determine working directory: %w", err)
		}
		return filepath.Join(wd, name), nil
	}
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return filepath.Join(arg, name), nil
	}
	return arg, nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
