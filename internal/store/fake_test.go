package store

import (
	"fmt"
	"reflect"
	"time"

	"ipv4-bazaar/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// fakeRow 依序把 vals 填進 Scan 的目的指標，型別必須與目的一致
type fakeRow struct {
	vals    []any
	scanErr error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	if len(dest) != len(r.vals) {
		panic(fmt.Sprintf("fakeRow.Scan: want %d dest, got %d", len(r.vals), len(dest)))
	}
	for i, v := range r.vals {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

// fakeRows 以多筆 fakeRow 模擬 pgx.Rows
type fakeRows struct {
	rows   []*fakeRow
	idx    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return r.rows[r.idx-1].Scan(dest...)
}

func userVals(u model.User) []any {
	return []any{u.ID, u.Name, u.Email, u.City, string(u.VerificationStatus), u.CreatedAt, u.UpdatedAt}
}

func accountVals(a model.Account) []any {
	return []any{a.ID, a.Email, a.PasswordHash, a.EmailConfirmedAt, a.CreatedAt}
}

func requestVals(r model.IPRequest, owner *model.User) []any {
	vals := []any{
		r.ID, r.UserID, r.Name, r.Description, r.City,
		string(r.Urgency), string(r.Status), r.AdminNotes, r.CreatedAt, r.UpdatedAt,
	}
	if owner == nil {
		return append(vals,
			(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
			(*time.Time)(nil), (*time.Time)(nil))
	}
	status := string(owner.VerificationStatus)
	return append(vals,
		&owner.ID, &owner.Name, &owner.Email, &owner.City, &status,
		&owner.CreatedAt, &owner.UpdatedAt)
}
