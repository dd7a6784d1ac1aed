// repo_gitignore.go toggles whether the database is committed.
//
// A local database is listed in .quire/.gitignore under a header comment.
// Existing content and formatting are kept; only the database line and the
// header are added or removed.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localHeader = "# Local database (not committed)"

func gitignoreLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// SetLocal adds the database named db to dir/.gitignore when local is true
// and removes it otherwise. dir is a .quire directory.
func SetLocal(dir, db string, local bool) error {
	name := DBName(db)
	gitignore := filepath.Join(dir, ".gitignore")
	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}
	s := string(content)
	ignored := slices.Contains(strings.Fields(s), name)

	switch {
	case local && !ignored:
		if !strings.HasSuffix(s, "\n") && s != "" {
			s += "\n"
		}
		s += "\n" + localHeader + "\n" + name + "\n"
	case !local && ignored:
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if strings.TrimSpace(line) != name {
				out = append(out, line)
			}
		}
		if !slices.ContainsFunc(out, isDBLine) {
			out = slices.DeleteFunc(out, func(l string) bool { return strings.TrimSpace(l) == localHeader })
		}
		s = strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
	default:
		return nil
	}
	return os.WriteFile(gitignore, []byte(s), 0644)
}

// IsLocal reports whether the database named db in dir is kept out of git.
func IsLocal(dir, db string) (bool, error) {
	lines, err := gitignoreLines(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, DBName(db)), nil
}

func isDBLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "quire") && strings.HasSuffix(t, ".db")
}
