package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// Satisfied by pgx (PgError) and by lib/pq via the wrapper below.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

// SQLStateOf extracts the Postgres SQLSTATE from a driver error, "" when the
// error is not a Postgres error.
func SQLStateOf(err error) string {
	var se pgSQLErr
	if errors.As(err, &se) {
		return se.SQLState()
	}
	var pqe *pq.Error
	if errors.As(err, &pqe) {
		return string(pqe.Code)
	}
	return ""
}

// IsUniqueViolation: 23505 unique_violation. The partial index on
// (student_library_id, student_seat_number) lands here when two writes race for
// the same seat.
func IsUniqueViolation(err error) bool {
	if SQLStateOf(err) == "23505" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") || strings.Contains(s, "duplicate key")
}

// MapPGError converts storage errors to HTTP status + actionable message.
func MapPGError(err error, conflictMsg string) (int, string) {
	switch SQLStateOf(err) {
	case "23505":
		return fiber.StatusConflict, conflictMsg
	case "23503":
		return fiber.StatusBadRequest, "Referenced record not found (FK violation)."
	}
	if IsUniqueViolation(err) {
		return fiber.StatusConflict, conflictMsg
	}
	return fiber.StatusInternalServerError, err.Error()
}
