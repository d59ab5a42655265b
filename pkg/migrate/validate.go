package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)
)

// ValidateDir validates migration filenames + basic SQL headers.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("read file %q: %w", full, err)
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			return fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !strings.Contains(txt, "-- +goose Down") {
			return fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}
	}

	return nil
}

var (
	createTableRe = regexp.MustCompile(`(?m)^CREATE TABLE IF NOT EXISTS (\w+) \(`)
	rlsEnabledRe  = regexp.MustCompile(`(?m)^ALTER TABLE (\w+) ENABLE ROW LEVEL SECURITY;`)
	rlsForcedRe   = regexp.MustCompile(`(?m)^ALTER TABLE (\w+) FORCE ROW LEVEL SECURITY;`)
)

// UnprotectedTenantTables lists tables created in dir that carry a company_id
// column but do not get row level security both enabled and forced. Without
// FORCE the owning role, which is the role migrations and the app run as,
// skips every policy. users is exempt: identity resolution happens before a
// tenant is known.
func UnprotectedTenantTables(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	var scoped []string
	enabled := map[string]bool{}
	forced := map[string]bool{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read file %q: %w", e.Name(), err)
		}
		txt := string(b)
		for _, block := range splitCreateTables(txt) {
			if block.table != "users" && strings.Contains(block.body, "company_id uuid") {
				scoped = append(scoped, block.table)
			}
		}
		for _, m := range rlsEnabledRe.FindAllStringSubmatch(txt, -1) {
			enabled[m[1]] = true
		}
		for _, m := range rlsForcedRe.FindAllStringSubmatch(txt, -1) {
			forced[m[1]] = true
		}
	}

	var missing []string
	for _, table := range scoped {
		if !enabled[table] || !forced[table] {
			missing = append(missing, table)
		}
	}
	return missing, nil
}

type tableBlock struct {
	table string
	body  string
}

func splitCreateTables(txt string) []tableBlock {
	locs := createTableRe.FindAllStringSubmatchIndex(txt, -1)
	blocks := make([]tableBlock, 0, len(locs))
	for _, loc := range locs {
		rest := txt[loc[1]:]
		end := strings.Index(rest, "\n);")
		if end < 0 {
			end = len(rest)
		}
		blocks = append(blocks, tableBlock{table: txt[loc[2]:loc[3]], body: rest[:end]})
	}
	return blocks
}
