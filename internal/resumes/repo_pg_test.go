package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
)

var resumeColumns = []string{"id", "title", "data", "design", "color", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateEncodesPayload(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	resume := Resume{
		ID:        "7f1d7f5e-3f7b-4a55-9a38-5a3f8c1f0c11",
		Title:     "Main",
		Data:      model.NewResumeData("modern"),
		Design:    model.DefaultDesignOptions(),
		Color:     "#0d9488",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID,
			resume.Title,
			"modern",
			sqlmock.AnyArg(), // data
			sqlmock.AnyArg(), // design
			resume.Color,
			now,
			now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT id, title, data, design, color, created_at, updated_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(resumeColumns))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDRecoversMalformedPayload(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := telemetry.SetLogger(zap.New(core))
	defer restore()

	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	raw := []byte(`{"templateId":"bold","contact":{"firstName":"Ada"},"experiences":"oops","skills":[{"id":"s1","name":"Go","level":"Wizard"}]}`)
	mock.ExpectQuery("SELECT id, title, data, design, color, created_at, updated_at").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(resumeColumns).
			AddRow("r1", "Old", raw, []byte(`{"fontSize":"huge"}`), "", now, now))

	resume, err := repo.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resume.Data.TemplateID != "bold" || resume.Data.Contact.FirstName != "Ada" {
		t.Fatalf("expected salvaged fields, got %+v", resume.Data)
	}
	if resume.Design != model.DefaultDesignOptions() {
		t.Fatalf("expected default design, got %+v", resume.Design)
	}
	if logs.FilterMessage("resume.recovered").Len() != 1 {
		t.Fatalf("expected a resume.recovered log entry")
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE resumes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), Resume{ID: "gone", Data: model.NewResumeData("classic")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListClampsLimit(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title, data, design, color, created_at, updated_at").
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows(resumeColumns).
			AddRow("r1", "A", []byte(`{"templateId":"classic"}`), []byte(`{}`), "", now, now))

	items, err := repo.List(context.Background(), 500, -3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Data.TemplateID != "classic" {
		t.Fatalf("unexpected items %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoRecordAndListExports(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC)
	rec := ExportRecord{
		ID:         "e1",
		ResumeID:   "r1",
		Format:     FormatPDF,
		FileName:   "resume.pdf",
		StorageKey: "exports/r1/resume.pdf",
		SizeBytes:  1024,
		Digest:     "abc",
		CreatedAt:  now,
	}
	mock.ExpectExec("INSERT INTO resume_exports").
		WithArgs(rec.ID, rec.ResumeID, rec.Format, rec.FileName, rec.StorageKey, rec.SizeBytes, rec.Digest, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("FROM resume_exports").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "resume_id", "format", "file_name", "storage_key", "size_bytes", "digest", "created_at"}).
			AddRow(rec.ID, rec.ResumeID, rec.Format, rec.FileName, rec.StorageKey, rec.SizeBytes, rec.Digest, rec.CreatedAt))

	if err := repo.RecordExport(context.Background(), rec); err != nil {
		t.Fatalf("RecordExport: %v", err)
	}
	got, err := repo.ListExports(context.Background(), "r1")
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(got) != 1 || got[0] != rec {
		t.Fatalf("unexpected exports %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
