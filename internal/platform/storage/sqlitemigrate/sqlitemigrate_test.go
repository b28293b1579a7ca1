package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"
)

func migration(sql string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(sql)}
}

func TestApplyMigrations(t *testing.T) {
	tests := []struct {
		name    string
		fs      fstest.MapFS
		root    string
		want    []string
		tables  []string
		wantErr bool
	}{
		{
			name: "applies in lexical order",
			fs: fstest.MapFS{
				"002_items.sql":  migration("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY, actor_id TEXT REFERENCES actors(id));"),
				"001_actors.sql": migration("-- +migrate Up\nCREATE TABLE actors(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE actors;"),
				"README.md":      migration("not a migration"),
			},
			want:   []string{"001_actors.sql", "002_items.sql"},
			tables: []string{"actors", "items"},
		},
		{
			name: "keys carry the root",
			fs: fstest.MapFS{
				"tables/001_random_tables.sql": migration("-- +migrate Up\nCREATE TABLE random_tables(name TEXT PRIMARY KEY);"),
			},
			root:   "tables",
			want:   []string{"tables/001_random_tables.sql"},
			tables: []string{"random_tables"},
		},
		{
			name: "existing table counts as applied",
			fs: fstest.MapFS{
				"001_a.sql": migration("-- +migrate Up\nCREATE TABLE a(id INT);"),
				"002_a.sql": migration("-- +migrate Up\nCREATE TABLE a(id INT);"),
			},
			want:   []string{"001_a.sql", "002_a.sql"},
			tables: []string{"a"},
		},
		{
			name:    "broken sql is not recorded",
			fs:      fstest.MapFS{"001_bad.sql": migration("-- +migrate Up\nCREAT TABLE nope(id INT);")},
			wantErr: true,
		},
		{
			name:    "missing root",
			fs:      fstest.MapFS{},
			root:    "absent",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openMemoryDB(t)
			ctx := context.Background()
			err := ApplyMigrations(ctx, db, tt.fs, tt.root)
			if (err != nil) != tt.wantErr {
				t.Fatalf("apply err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if tt.root == "" {
					if got := mustApplied(t, db); len(got) != 0 {
						t.Fatalf("applied = %v, want none", got)
					}
				}
				return
			}
			if diff := cmp.Diff(tt.want, mustApplied(t, db)); diff != "" {
				t.Fatalf("applied mismatch (-want +got):\n%s", diff)
			}
			for _, table := range tt.tables {
				if !hasTable(t, db, table) {
					t.Fatalf("table %q missing", table)
				}
			}
		})
	}
}

func TestApplyMigrationsReplayAndRepair(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	broken := fstest.MapFS{"001_docs.sql": migration("-- +migrate Up\nCREATE TABLE docs(id TEXT PRIMARY KEY")}
	if err := ApplyMigrations(ctx, db, broken, ""); err == nil {
		t.Fatal("expected broken migration to fail")
	}

	fixed := fstest.MapFS{"001_docs.sql": migration("-- +migrate Up\nCREATE TABLE docs(id TEXT PRIMARY KEY);")}
	for range 2 {
		if err := ApplyMigrations(ctx, db, fixed, ""); err != nil {
			t.Fatalf("apply fixed migration: %v", err)
		}
	}
	if diff := cmp.Diff([]string{"001_docs.sql"}, mustApplied(t, db)); diff != "" {
		t.Fatalf("applied mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	if err := ApplyMigrations(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected nil db error")
	}
	if _, err := Applied(context.Background(), nil); err == nil {
		t.Fatal("expected nil db error")
	}
}

func TestExtractUpMigration(t *testing.T) {
	tests := map[string]struct {
		content string
		want    string
	}{
		"unmarked file runs whole": {content: "CREATE TABLE a(id INT);", want: "CREATE TABLE a(id INT);"},
		"down section dropped":     {content: "-- +migrate Up\nCREATE TABLE a(id INT);\n-- +migrate Down\nDROP TABLE a;", want: "\nCREATE TABLE a(id INT);\n"},
		"header before up skipped": {content: "-- actors\n-- +migrate Up\nSELECT 1;", want: "\nSELECT 1;"},
	}
	for name, tc := range tests {
		if got := ExtractUpMigration(tc.content); got != tc.want {
			t.Errorf("%s: got %q, want %q", name, got, tc.want)
		}
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	cases := map[error]bool{
		nil:                                    false,
		errors.New("table a already exists"):   true,
		errors.New("duplicate column name: x"): true,
		errors.New("syntax error"):             false,
	}
	for err, want := range cases {
		if got := IsAlreadyExistsError(err); got != want {
			t.Errorf("IsAlreadyExistsError(%v) = %v, want %v", err, got, want)
		}
	}
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// One connection: each new :memory: connection is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustApplied(t *testing.T, db *sql.DB) []string {
	t.Helper()
	names, err := Applied(context.Background(), db)
	if err != nil {
		t.Fatalf("applied: %v", err)
	}
	return names
}

func hasTable(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var found string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("lookup table %s: %v", name, err)
	}
	return true
}
