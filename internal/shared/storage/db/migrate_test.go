package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrateNilDatabaseIsNoop(t *testing.T) {
	if err := Migrate(context.Background(), nil, "anything"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	err = Migrate(context.Background(), sqlDB, "sideways")
	if err == nil || !strings.Contains(err.Error(), "sideways") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestEmbeddedMigrationsAreOrdered(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	want := []string{"migrations/00001_create_resumes.sql", "migrations/00002_create_resume_exports.sql"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected migrations %v", names)
	}
	for _, name := range names {
		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(body), "-- +goose Up") || !strings.Contains(string(body), "-- +goose Down") {
			t.Fatalf("%s lacks goose annotations", name)
		}
	}
}
