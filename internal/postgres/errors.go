package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// IsUniqueConstraintError checks if the error is a Postgres UNIQUE or PRIMARY KEY constraint violation.
func IsUniqueConstraintError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// QuoteIdent quotes a column or table identifier.
func QuoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}
