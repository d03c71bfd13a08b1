package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/upb/ims-inventory/backend/repositories"
)

// SQLSTATE codes translated into storage sentinels.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translateError maps driver constraint violations onto the repositories
// sentinels so callers never need to match SQLSTATE codes.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return fmt.Errorf("constraint %s: %w", pqErr.Constraint, repositories.ErrDuplicateName)
		case pqForeignKeyViolation:
			return fmt.Errorf("constraint %s: %w", pqErr.Constraint, repositories.ErrInvalidReference)
		}
	}
	return err
}
