package postgres

import "github.com/jmoiron/sqlx"

// NewStoreForTest wraps an existing handle (for sqlmock testing).
func NewStoreForTest(x *sqlx.DB) *Store {
	return newStore(x)
}
