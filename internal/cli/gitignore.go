package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// findRepoRoot walks up from startDir to the nearest directory holding a
// .git entry, or returns "" when there is none.
func findRepoRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// addGitignoreEntry appends the results folder to the repo .gitignore and
// reports whether the file changed.
func addGitignoreEntry(repoRoot, resultsDir string) (bool, error) {
	entry, err := normalizeGitignorePath(repoRoot, resultsDir)
	if err != nil {
		return false, err
	}
	if entry == "" {
		return false, fmt.Errorf("gitignore entry is empty")
	}

	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	var existing []byte
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = data
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}

	for _, line := range strings.Split(string(existing), "\n") {
		if strings.TrimSpace(line) == entry {
			return false, nil
		}
	}

	updated := string(existing)
	if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += entry + "\n"
	if err := os.WriteFile(gitignorePath, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

func normalizeGitignorePath(repoRoot, resultsDir string) (string, error) {
	if strings.TrimSpace(resultsDir) == "" {
		return "", fmt.Errorf("results dir is required")
	}
	clean := filepath.Clean(resultsDir)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(repoRoot, clean)
		if err != nil {
			return "", fmt.Errorf("resolve results dir: %w", err)
		}
		if strings.HasPrefix(rel, "..") {
			return "", fmt.Errorf("results dir %q is outside the repo root", resultsDir)
		}
		clean = rel
	}
	clean = strings.TrimPrefix(clean, "."+string(filepath.Separator))
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("results dir %q is outside the repo root", resultsDir)
	}
	return filepath.ToSlash(clean), nil
}
