package database

import (
	"io/fs"
	"strings"
	"testing"
)

func migrationSQL(t *testing.T) string {
	t.Helper()

	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no embedded migrations found")
	}

	var sb strings.Builder
	for _, name := range names {
		data, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tableDef(t *testing.T, sql, table string) string {
	t.Helper()

	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(sql, marker)
	if start < 0 {
		t.Fatalf("table %s not defined in migrations", table)
	}
	rest := sql[start:]
	end := strings.Index(rest, ");")
	if end < 0 {
		t.Fatalf("table %s definition not terminated", table)
	}
	return rest[:end]
}

// Deleting a goal must take its posts and checkins with it, and
// deleting a user must take their goals. The handlers rely on these
// foreign keys instead of sweeping the child tables themselves.
func TestMigrationsCascadeDeletes(t *testing.T) {
	sql := migrationSQL(t)

	tests := []struct {
		table  string
		clause string
	}{
		{"goals", "user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE"},
		{"goal_checkins", "goal_id UUID NOT NULL REFERENCES goals(id) ON DELETE CASCADE"},
		{"posts", "goal_id UUID NOT NULL REFERENCES goals(id) ON DELETE CASCADE"},
		{"post_tags", "post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE"},
		{"post_tags", "tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE"},
	}

	for _, tt := range tests {
		def := tableDef(t, sql, tt.table)
		if !strings.Contains(def, tt.clause) {
			t.Errorf("table %s: missing clause %q", tt.table, tt.clause)
		}
	}
}

// Category removal must orphan, not delete, the goals and posts that
// referenced it.
func TestMigrationsCategoryDeleteSetsNull(t *testing.T) {
	sql := migrationSQL(t)

	for _, table := range []string{"goals", "posts"} {
		def := tableDef(t, sql, table)
		if !strings.Contains(def, "category_id UUID REFERENCES categories(id) ON DELETE SET NULL") {
			t.Errorf("table %s: category_id should SET NULL on category delete", table)
		}
	}
}
