package database

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, e.g. a duplicate user handle or chatroom name.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key
// violation, e.g. a message referencing a missing user or chatroom, or a
// delete blocked by dependent rows.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolationCode
}
