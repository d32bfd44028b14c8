package postgresql

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// variantsOf expands a stored or requested identifier to the encodings it may
// have been written with.
func variantsOf(id string) []string {
	return identifier.Variants(id)
}

// employeeIDClause appends an "employee_id::text = ANY($n)" condition when
// ids is non-nil. It reports false when ids is empty and the query can match
// no row.
func employeeIDClause(column string, ids []string, where *string, args *[]any, argIdx *int) bool {
	if ids == nil {
		return true
	}
	if len(ids) == 0 {
		return false
	}
	*where += fmt.Sprintf(" AND %s::text = ANY($%d)", column, *argIdx)
	*args = append(*args, ids)
	*argIdx++
	return true
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}
