package migrate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestRunAppliesFilesInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	// 0002 depends on the table 0001 creates; lexical order must hold
	files := map[string]string{
		"0002_seed.sql": "INSERT INTO things (name) VALUES ('a'); INSERT INTO things (name) VALUES ('b');",
		"0001_init.sql": "CREATE TABLE IF NOT EXISTS things (id INTEGER PRIMARY KEY, name TEXT);",
		"ignored.txt":   "not sql",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	if err := Run(context.Background(), db, dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM things").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows = %d", n)
	}
}

func TestRunMissingDirErrors(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db, _ := gdb.DB()
	if err := Run(context.Background(), db, "/does/not/exist"); err == nil {
		t.Fatal("missing dir must error")
	}
}
