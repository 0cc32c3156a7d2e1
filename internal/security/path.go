// Package security keeps tool-supplied paths inside the configured root.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator confines file and directory paths to a root directory
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator for root. The root does not need to
// exist yet.
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory cannot be empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	return &PathValidator{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute root directory
func (v *PathValidator) Root() string {
	return v.root
}

// ResolveFile returns the absolute form of path. Relative paths are taken
// from the root. The file itself may not exist yet, which lets output
// targets be checked before they are created.
func (v *PathValidator) ResolveFile(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	return v.resolve(path)
}

// ResolveDirectory is ResolveFile for folders, with an empty path meaning
// the root itself. The directory must exist.
func (v *PathValidator) ResolveDirectory(dir string) (string, error) {
	dir = strings.ReplaceAll(dir, "\x00", "")
	if dir == "" {
		dir = v.root
	}

	abs, err := v.resolve(dir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", dir)
	}
	return abs, nil
}

func (v *PathValidator) resolve(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}
	abs := filepath.Clean(path)

	if !within(abs, v.root) {
		return "", fmt.Errorf("path is outside configured directory: %s", path)
	}

	realRoot := evalExisting(v.root)
	if !within(evalExisting(abs), realRoot) {
		return "", fmt.Errorf("path resolves outside configured directory: %s", path)
	}
	return abs, nil
}

// evalExisting follows symlinks in the longest existing prefix of path
func evalExisting(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}

	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(evalExisting(parent), filepath.Base(path))
}

func within(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}
