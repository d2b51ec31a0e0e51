package lookups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. Each kind maps to its own table with
// a unique index on lower(name), so concurrent find-or-create calls for the
// same label converge on one row via upsert.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) FindOrCreate(ctx context.Context, kind Kind, name string) (Lookup, error) {
	table, err := tableName(kind)
	if err != nil {
		return Lookup{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Lookup{}, errors.New("lookup name is required")
	}

	// The no-op DO UPDATE makes RETURNING yield the surviving row on conflict.
	query := fmt.Sprintf(`
INSERT INTO %s (id, name, created_at)
VALUES ($1, $2, now())
ON CONFLICT (lower(name)) DO UPDATE SET name = %s.name
RETURNING id, name, created_at`, table, table)

	var row Lookup
	err = r.DB.QueryRowContext(ctx, query, uuid.NewString(), name).Scan(&row.ID, &row.Name, &row.CreatedAt)
	if err != nil {
		return Lookup{}, err
	}
	return row, nil
}

func (r *PGRepo) GetByID(ctx context.Context, kind Kind, id string) (Lookup, error) {
	table, err := tableName(kind)
	if err != nil {
		return Lookup{}, err
	}

	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = $1 LIMIT 1`, table)
	var row Lookup
	err = r.DB.QueryRowContext(ctx, query, id).Scan(&row.ID, &row.Name, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lookup{}, ErrNotFound
		}
		return Lookup{}, err
	}
	return row, nil
}

// tableName whitelists kinds so the table identifier is never caller data.
func tableName(kind Kind) (string, error) {
	switch kind {
	case BusinessType, Jurisdiction, PermitType, IssuingAuthority:
		return string(kind), nil
	default:
		return "", fmt.Errorf("unknown lookup kind: %s", kind)
	}
}

var _ Repo = (*PGRepo)(nil)
