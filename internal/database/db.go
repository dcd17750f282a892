package database

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier 是 store 層執行 SQL 所需的最小介面，*pgxpool.Pool 與 pgx.Tx 都符合
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB 連線池：可查詢、健康檢查與關閉
type DB interface {
	Querier
	Ping(context.Context) error
	Close()
}

var (
	_ DB      = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// FakeDB 以函式欄位模擬 DB，未設定的方法會 panic（Close 除外）。
// 每次查詢的 SQL 依序記在 Statements。
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()

	mu         sync.Mutex
	Statements []string
}

func (f *FakeDB) record(sql string) {
	f.mu.Lock()
	f.Statements = append(f.Statements, sql)
	f.mu.Unlock()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record(sql)
	if f.ExecFn == nil {
		panic("unexpected Exec")
	}
	return f.ExecFn(ctx, sql, args...)
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record(sql)
	if f.QueryFn == nil {
		panic("unexpected Query")
	}
	return f.QueryFn(ctx, sql, args...)
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.record(sql)
	if f.QueryRowFn == nil {
		panic("unexpected QueryRow")
	}
	return f.QueryRowFn(ctx, sql, args...)
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn == nil {
		panic("unexpected Ping")
	}
	return f.PingFn(ctx)
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}
