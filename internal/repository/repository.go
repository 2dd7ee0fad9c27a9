// Package repository implements the domain repositories over PostgreSQL.
// It owns the mapping from database uniqueness violations onto the domain
// conflict errors, keeping them distinguishable from shape validation.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/parogest/parogest/internal/domain"
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// mapConflict translates a pq unique violation onto the matching domain
// sentinel, keyed by constraint name. Other errors pass through untouched.
func mapConflict(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return domain.ErrDuplicateEmail
	case strings.Contains(pqErr.Constraint, "code"):
		return domain.ErrDuplicateCode
	case strings.Contains(pqErr.Constraint, "name"):
		return domain.ErrDuplicateName
	}
	return err
}

// nullString stores "" as SQL NULL so partial unique indexes (e.g. contact
// email) ignore absent values.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
