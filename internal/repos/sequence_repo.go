package repos

import "github.com/jmoiron/sqlx"

type SequenceRepo struct{ db *sqlx.DB }

func NewSequenceRepo(db *sqlx.DB) *SequenceRepo { return &SequenceRepo{db: db} }

// Next atomically increments and returns the counter for a scope.
// The upsert-and-return runs as one statement, so two concurrent
// callers can never observe the same value.
func (r *SequenceRepo) Next(scope string) (int, error) {
	var n int
	err := r.db.Get(&n, `
		INSERT INTO sequences(scope, n) VALUES (?, 1)
		ON CONFLICT(scope) DO UPDATE SET n = n + 1
		RETURNING n
	`, scope)
	return n, err
}
