package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound        = errors.New("db: key not found")
	ErrCollectionNotFound = errors.New("db: collection not found")
	ErrInvalidSchema      = errors.New("db: invalid collection schema")
	ErrClosed             = errors.New("db: store closed")
)

// Op constants name store operations for error context.
const (
	OpConnect   = "CONNECT"
	OpPing      = "PING"
	OpEnsure    = "ENSURE"
	OpInsert    = "INSERT"
	OpFind      = "FIND"
	OpFindOne   = "FIND_ONE"
	OpCount     = "COUNT"
	OpDeleteAll = "DELETE_ALL"
	OpMigrate   = "MIGRATE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a missing-document miss.
func IsNotFound(err error) bool { return errors.Is(err, ErrKeyNotFound) }
