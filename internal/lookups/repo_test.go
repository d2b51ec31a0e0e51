package lookups

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMemoryRepoFindOrCreateIsCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.FindOrCreate(ctx, BusinessType, "Restaurant")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := repo.FindOrCreate(ctx, BusinessType, "RESTAURANT")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same row, got %s and %s", first.ID, second.ID)
	}
	if second.Name != "Restaurant" {
		t.Fatalf("expected original casing kept, got %q", second.Name)
	}

	// A different kind with the same label is a separate row.
	other, err := repo.FindOrCreate(ctx, Jurisdiction, "Restaurant")
	if err != nil {
		t.Fatalf("other kind: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("expected kinds to be isolated")
	}
}

func TestMemoryRepoRejectsBlankName(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.FindOrCreate(context.Background(), BusinessType, "  "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestMemoryRepoGetByID(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	row, err := repo.FindOrCreate(ctx, IssuingAuthority, "Health Department")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetByID(ctx, IssuingAuthority, row.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Health Department" {
		t.Fatalf("expected name, got %q", got.Name)
	}

	if _, err := repo.GetByID(ctx, IssuingAuthority, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoFindOrCreateUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO jurisdictions").
		WithArgs(sqlmock.AnyArg(), "Travis County").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("existing-id", "Travis County", createdAt))

	row, err := repo.FindOrCreate(context.Background(), Jurisdiction, "Travis County")
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if row.ID != "existing-id" {
		t.Fatalf("expected surviving row id, got %s", row.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoRejectsUnknownKind(t *testing.T) {
	repo := &PGRepo{}
	if _, err := repo.FindOrCreate(context.Background(), Kind("users; DROP TABLE users"), "x"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
