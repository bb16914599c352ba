// Package scan enumerates candidate files for analysis runs.
package scan

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"ccs/internal/cerrors"
)

// ListDir returns all regular files under root. With recursive false only
// the immediate directory entries are returned.
func ListDir(root string, recursive bool) ([]string, error) {
	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				files = append(files, filepath.Join(root, entry.Name()))
			}
		}
		return files, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// IsGitRepo reports whether root is inside a git work tree.
func IsGitRepo(root string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = root
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// ListGitFiles returns the tracked files of the repository at root,
// as paths joined onto root.
func ListGitFiles(root string) ([]string, error) {
	if !IsGitRepo(root) {
		return nil, cerrors.New(cerrors.NotARepository, root+" is not a git repository", nil)
	}

	cmd := exec.Command("git", "ls-files", "-z")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var files []string
	for _, entry := range bytes.Split(out, []byte{0}) {
		if len(entry) == 0 {
			continue
		}
		files = append(files, filepath.Join(root, string(entry)))
	}
	return files, nil
}
