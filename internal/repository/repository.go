package repository

import (
	"fmt"
	"strings"
)

// setClause renders "a = $1, b = $2" for patch columns, numbering
// placeholders from start. Column names come from the fixed patch mappings
// in the model package, never from request input.
func setClause(cols []string, start int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s = $%d", col, start+i)
	}
	return strings.Join(parts, ", ")
}

// isUniqueViolation detects unique constraint errors for both SQLite and
// PostgreSQL drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
