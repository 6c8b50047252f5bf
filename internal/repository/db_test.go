package repository

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestNewDBRejectsMalformedDSN(t *testing.T) {
	if _, err := NewDB("not a valid dsn"); err == nil {
		t.Fatal("expected an error for a malformed DSN")
	}
}

func TestNewDBFailsWhenServerUnreachable(t *testing.T) {
	// Port 1 is never a MySQL server; the ping must fail and NewDB must
	// report it instead of handing back a dead pool.
	dsn := "repfit:repfit@tcp(127.0.0.1:1)/repfit?timeout=1s"
	if _, err := NewDB(dsn); err == nil {
		t.Fatal("expected an error when the database is unreachable")
	}
}

func TestSchemaUsernameIsCaseSensitive(t *testing.T) {
	// The login path and the unique index both rely on the username column
	// carrying a binary collation; an accent/case-insensitive collation would
	// reject "Ana" as a duplicate of "ana".
	data, err := os.ReadFile(filepath.Join("..", "..", "schema.sql"))
	if err != nil {
		t.Fatalf("reading schema: %v", err)
	}

	column := regexp.MustCompile(`(?m)^\s*username\s+VARCHAR\(\d+\)\s+COLLATE utf8mb4_bin\s+NOT NULL`)
	if !column.Match(data) {
		t.Fatal("users.username must be declared COLLATE utf8mb4_bin")
	}
}
