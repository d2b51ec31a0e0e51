package businesses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. Lookup names come back via joins so
// callers see labels without extra round trips.
type PGRepo struct {
	DB *sql.DB
}

const businessColumns = `
b.id, b.user_id, b.name, b.phone, b.notes,
b.business_type_id, b.jurisdiction_id,
bt.name, j.name,
b.created_at, b.updated_at`

const businessJoins = `
FROM businesses b
LEFT JOIN business_types bt ON bt.id = b.business_type_id
LEFT JOIN jurisdictions j ON j.id = b.jurisdiction_id`

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Business, error) {
	query := `SELECT ` + businessColumns + businessJoins + `
WHERE b.user_id = $1
ORDER BY b.name ASC, b.created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Business
	for rows.Next() {
		biz, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, biz)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, businessID string) (Business, error) {
	query := `SELECT ` + businessColumns + businessJoins + `
WHERE b.user_id = $1 AND b.id = $2
LIMIT 1`

	biz, err := scanBusiness(r.DB.QueryRowContext(ctx, query, userID, businessID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Business{}, ErrNotFound
		}
		return Business{}, err
	}
	return biz, nil
}

func (r *PGRepo) Create(ctx context.Context, biz Business) error {
	const query = `
INSERT INTO businesses (id, user_id, name, phone, notes, business_type_id, jurisdiction_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		biz.ID,
		biz.UserID,
		biz.Name,
		nullableString(biz.Phone),
		nullableString(biz.Notes),
		biz.BusinessTypeID,
		biz.JurisdictionID,
		biz.CreatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, biz Business) error {
	const query = `
UPDATE businesses
SET name = $1, phone = $2, notes = $3, business_type_id = $4, jurisdiction_id = $5, updated_at = now()
WHERE user_id = $6 AND id = $7`
	res, err := r.DB.ExecContext(ctx, query,
		biz.Name,
		nullableString(biz.Phone),
		nullableString(biz.Notes),
		biz.BusinessTypeID,
		biz.JurisdictionID,
		biz.UserID,
		biz.ID,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the business; its documents go with it via FK cascade.
func (r *PGRepo) Delete(ctx context.Context, userID, businessID string) error {
	const query = `DELETE FROM businesses WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, businessID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (Business, error) {
	var biz Business
	var phone, notes sql.NullString
	var businessTypeID, jurisdictionID sql.NullString
	var businessTypeName, jurisdictionName sql.NullString
	err := row.Scan(
		&biz.ID,
		&biz.UserID,
		&biz.Name,
		&phone,
		&notes,
		&businessTypeID,
		&jurisdictionID,
		&businessTypeName,
		&jurisdictionName,
		&biz.CreatedAt,
		&biz.UpdatedAt,
	)
	if err != nil {
		return Business{}, err
	}
	if phone.Valid {
		biz.Phone = phone.String
	}
	if notes.Valid {
		biz.Notes = notes.String
	}
	if businessTypeID.Valid {
		biz.BusinessTypeID = &businessTypeID.String
	}
	if jurisdictionID.Valid {
		biz.JurisdictionID = &jurisdictionID.String
	}
	if businessTypeName.Valid {
		biz.BusinessTypeName = businessTypeName.String
	}
	if jurisdictionName.Valid {
		biz.JurisdictionName = jurisdictionName.String
	}
	return biz, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
