package services

import (
	"context"
	"time"
)

type fakeRow struct {
	scanFunc func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.scanFunc != nil {
		return r.scanFunc(dest...)
	}
	return nil
}

type fakeRows struct {
	scans []func(dest ...any) error
	pos   int
	err   error
}

func (r *fakeRows) Next() bool {
	return r.pos < len(r.scans)
}

func (r *fakeRows) Scan(dest ...any) error {
	scan := r.scans[r.pos]
	r.pos++
	return scan(dest...)
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Err() error { return r.err }

type fakeTag int64

func (t fakeTag) RowsAffected() int64 { return int64(t) }

type fakeDB struct {
	execFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)
	queryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	queryRowFunc func(ctx context.Context, sql string, args ...any) Row

	execCalls     int
	queryCalls    int
	queryRowCalls int
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	db.execCalls++
	if db.execFunc != nil {
		return db.execFunc(ctx, sql, args...)
	}
	return fakeTag(1), nil
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	db.queryCalls++
	if db.queryFunc != nil {
		return db.queryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	db.queryRowCalls++
	if db.queryRowFunc != nil {
		return db.queryRowFunc(ctx, sql, args...)
	}
	return fakeRow{}
}

type fakeCache struct {
	values   map[string]string
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.getCalls++
	if c.getErr != nil {
		return "", false, c.getErr
	}
	value, ok := c.values[key]
	return value, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	return nil
}
