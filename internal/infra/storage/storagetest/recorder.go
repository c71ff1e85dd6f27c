// Package storagetest records the SQL that repositories send to the database.
package storagetest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
)

// ErrNoRows is returned from QueryContext: the recorder keeps the query, not the data.
var ErrNoRows = errors.New("storagetest: recorder returns no rows")

// Query is one statement sent through the recorder.
type Query struct {
	SQL  string
	Args []interface{}
}

// Recorder implements dbmetrics.TxExecutor. ExecContext reports RowsAffected
// rows, or ExecErr when it is set.
type Recorder struct {
	mu           sync.Mutex
	Queries      []Query
	RowsAffected int64
	ExecErr      error
}

func (r *Recorder) record(query string, args []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Queries = append(r.Queries, Query{SQL: query, Args: args})
}

func (r *Recorder) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	r.record(query, args)
	if r.ExecErr != nil {
		return nil, r.ExecErr
	}
	return driver.RowsAffected(r.RowsAffected), nil
}

func (r *Recorder) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	r.record(query, args)
	return nil, ErrNoRows
}

// QueryRowContext is not supported: *sql.Row cannot be built without a driver.
func (r *Recorder) QueryRowContext(_ context.Context, query string, _ ...interface{}) *sql.Row {
	panic("storagetest: QueryRowContext is not supported: " + query)
}

func (r *Recorder) Commit() error   { return nil }
func (r *Recorder) Rollback() error { return nil }

// Last returns the most recent statement.
func (r *Recorder) Last() Query {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Queries) == 0 {
		return Query{}
	}
	return r.Queries[len(r.Queries)-1]
}
