// Package uuid generates time-ordered UUIDv7 identifiers for database
// primary keys. Lexicographic order of the IDs follows creation order,
// which the ledger relies on for "last transaction" tie-breaking.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 based on the current timestamp.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source is exhausted; fall back
		// to a random v4 rather than returning an empty key.
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates and parses a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
