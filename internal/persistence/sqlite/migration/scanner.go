package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// migrationFilePattern matches {version}_{description}.sql where the version
// is numeric and the description may contain letters, digits, underscores,
// and hyphens.
var migrationFilePattern = regexp.MustCompile(`^(\d+)_([a-zA-Z0-9_-]+)\.sql$`)

// Scanner discovers migration files on a filesystem.
type Scanner struct {
	fsys fs.FS
}

// NewScanner creates a scanner over the provided filesystem root.
func NewScanner(fsys fs.FS) *Scanner {
	return &Scanner{fsys: fsys}
}

// ScanMigrations returns all migrations found at the filesystem root, sorted
// by version in ascending order. Files that do not follow the naming
// convention, and duplicate versions, are reported as errors.
func (s *Scanner) ScanMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, newError("", ".", "read migration directory", err)
	}

	var migrations []Migration
	versions := make(map[string]string)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		if err := ValidateFileName(entry.Name()); err != nil {
			return nil, newError("", entry.Name(), "validate filename", err)
		}

		m, err := s.ParseMigrationFile(entry.Name())
		if err != nil {
			return nil, err
		}

		if existing, ok := versions[m.Version]; ok {
			return nil, newError(m.Version, entry.Name(), "check duplicates",
				fmt.Errorf("%w: version %s found in both %s and %s",
					ErrDuplicateVersion, m.Version, existing, entry.Name()))
		}
		versions[m.Version] = entry.Name()

		migrations = append(migrations, *m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		vi, _ := strconv.Atoi(migrations[i].Version)
		vj, _ := strconv.Atoi(migrations[j].Version)
		return vi < vj
	})

	return migrations, nil
}

// ParseMigrationFile reads a single migration file and computes its checksum.
func (s *Scanner) ParseMigrationFile(name string) (*Migration, error) {
	matches := migrationFilePattern.FindStringSubmatch(name)
	if len(matches) != 3 {
		return nil, newError("", name, "parse filename", ErrInvalidMigrationFile)
	}

	content, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, newError(matches[1], name, "read file", err)
	}

	if strings.TrimSpace(stripSQLComments(string(content))) == "" {
		return nil, newError(matches[1], name, "parse SQL", ErrEmptyMigration)
	}

	sum := sha256.Sum256(content)

	return &Migration{
		Version:     matches[1],
		Description: strings.ReplaceAll(matches[2], "_", " "),
		SQL:         string(content),
		Path:        name,
		Checksum:    hex.EncodeToString(sum[:]),
	}, nil
}

// ValidateFileName checks that a migration file follows the naming convention.
func ValidateFileName(name string) error {
	matches := migrationFilePattern.FindStringSubmatch(name)
	if len(matches) != 3 {
		return fmt.Errorf("%w: filename %q does not match pattern '{version}_{description}.sql'",
			ErrInvalidMigrationFile, name)
	}

	if _, err := strconv.Atoi(matches[1]); err != nil {
		return fmt.Errorf("%w: version %q in filename %q is not numeric",
			ErrInvalidVersion, matches[1], name)
	}

	return nil
}

func stripSQLComments(sql string) string {
	lines := strings.Split(sql, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
