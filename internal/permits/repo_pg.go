package permits

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const permitColumns = `
d.id, d.business_id, d.document_category, d.title, d.permit_number, d.status,
d.start_date, d.end_date, d.auto_renew,
d.jurisdiction_id, d.issuing_authority_id, j.name, ia.name,
d.raw_extraction,
d.source_file_bucket, d.source_file_path, d.source_file_content_type, d.source_file_name, d.source_file_size,
d.created_at, d.updated_at`

const permitJoins = `
FROM business_documents d
LEFT JOIN jurisdictions j ON j.id = d.jurisdiction_id
LEFT JOIN issuing_authorities ia ON ia.id = d.issuing_authority_id`

func (r *PGRepo) ListByBusiness(ctx context.Context, businessID string) ([]Permit, error) {
	query := `SELECT ` + permitColumns + permitJoins + `
WHERE d.business_id = $1
ORDER BY d.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Permit
	for rows.Next() {
		doc, err := scanPermit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, businessID, documentID string) (Permit, error) {
	query := `SELECT ` + permitColumns + permitJoins + `
WHERE d.business_id = $1 AND d.id = $2
LIMIT 1`

	doc, err := scanPermit(r.DB.QueryRowContext(ctx, query, businessID, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Permit{}, ErrNotFound
		}
		return Permit{}, err
	}
	return doc, nil
}

func (r *PGRepo) Create(ctx context.Context, doc Permit) error {
	const query = `
INSERT INTO business_documents (
    id, business_id, document_category, title, permit_number, status,
    start_date, end_date, auto_renew,
    jurisdiction_id, issuing_authority_id, raw_extraction,
    source_file_bucket, source_file_path, source_file_content_type, source_file_name, source_file_size,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.BusinessID,
		string(doc.Category),
		doc.Title,
		nullableString(doc.PermitNumber),
		string(doc.Status),
		doc.StartDate,
		doc.EndDate,
		doc.AutoRenew,
		doc.JurisdictionID,
		doc.IssuingAuthorityID,
		nullableJSON(doc.RawExtraction),
		doc.SourceFileBucket,
		doc.SourceFilePath,
		doc.SourceFileContentType,
		doc.SourceFileName,
		doc.SourceFileSize,
		doc.CreatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, doc Permit) error {
	const query = `
UPDATE business_documents
SET document_category = $1, title = $2, permit_number = $3, status = $4,
    start_date = $5, end_date = $6, auto_renew = $7,
    jurisdiction_id = $8, issuing_authority_id = $9, raw_extraction = $10,
    source_file_bucket = $11, source_file_path = $12, source_file_content_type = $13,
    source_file_name = $14, source_file_size = $15,
    updated_at = now()
WHERE business_id = $16 AND id = $17`
	res, err := r.DB.ExecContext(ctx, query,
		string(doc.Category),
		doc.Title,
		nullableString(doc.PermitNumber),
		string(doc.Status),
		doc.StartDate,
		doc.EndDate,
		doc.AutoRenew,
		doc.JurisdictionID,
		doc.IssuingAuthorityID,
		nullableJSON(doc.RawExtraction),
		doc.SourceFileBucket,
		doc.SourceFilePath,
		doc.SourceFileContentType,
		doc.SourceFileName,
		doc.SourceFileSize,
		doc.BusinessID,
		doc.ID,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteByBusiness(ctx context.Context, businessID string) error {
	const query = `DELETE FROM business_documents WHERE business_id = $1`
	_, err := r.DB.ExecContext(ctx, query, businessID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPermit(row rowScanner) (Permit, error) {
	var doc Permit
	var category, status string
	var permitNumber sql.NullString
	var startDate, endDate sql.NullTime
	var jurisdictionID, issuingAuthorityID sql.NullString
	var jurisdictionName, issuingAuthorityName sql.NullString
	var rawExtraction []byte
	var bucket, path, contentType, fileName sql.NullString
	var size sql.NullInt64
	err := row.Scan(
		&doc.ID,
		&doc.BusinessID,
		&category,
		&doc.Title,
		&permitNumber,
		&status,
		&startDate,
		&endDate,
		&doc.AutoRenew,
		&jurisdictionID,
		&issuingAuthorityID,
		&jurisdictionName,
		&issuingAuthorityName,
		&rawExtraction,
		&bucket,
		&path,
		&contentType,
		&fileName,
		&size,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return Permit{}, err
	}
	doc.Category = Category(category)
	doc.Status = Status(status)
	if permitNumber.Valid {
		doc.PermitNumber = permitNumber.String
	}
	if startDate.Valid {
		t := startDate.Time
		doc.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		doc.EndDate = &t
	}
	if jurisdictionID.Valid {
		doc.JurisdictionID = &jurisdictionID.String
	}
	if issuingAuthorityID.Valid {
		doc.IssuingAuthorityID = &issuingAuthorityID.String
	}
	if jurisdictionName.Valid {
		doc.JurisdictionName = jurisdictionName.String
	}
	if issuingAuthorityName.Valid {
		doc.IssuingAuthorityName = issuingAuthorityName.String
	}
	if len(rawExtraction) > 0 {
		doc.RawExtraction = rawExtraction
	}
	if bucket.Valid {
		doc.SourceFileBucket = &bucket.String
	}
	if path.Valid {
		doc.SourceFilePath = &path.String
	}
	if contentType.Valid {
		doc.SourceFileContentType = &contentType.String
	}
	if fileName.Valid {
		doc.SourceFileName = &fileName.String
	}
	if size.Valid {
		doc.SourceFileSize = &size.Int64
	}
	return doc, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

var _ Repo = (*PGRepo)(nil)
