package permits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("FROM business_documents").
		WithArgs("biz-1", "doc-404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "biz-1", "doc-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE business_documents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	doc := Permit{ID: "doc-404", BusinessID: "biz-1", Title: "T", Category: CategoryPermit, Status: StatusActive}
	if err := repo.Update(context.Background(), doc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateStoresNullsForBlankOptionals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	doc := Permit{
		ID:         "doc-1",
		BusinessID: "biz-1",
		Category:   CategoryPermit,
		Title:      "Operating Permit",
		Status:     StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	mock.ExpectExec("INSERT INTO business_documents").
		WithArgs(
			doc.ID,
			doc.BusinessID,
			string(doc.Category),
			doc.Title,
			nil, // permit_number blank -> NULL
			string(doc.Status),
			nil, // start_date
			nil, // end_date
			false,
			nil, // jurisdiction_id
			nil, // issuing_authority_id
			nil, // raw_extraction
			nil, // source_file_bucket
			nil, // source_file_path
			nil, // source_file_content_type
			nil, // source_file_name
			nil, // source_file_size
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
