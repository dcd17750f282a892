package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ipv4-bazaar/internal/database"
	"ipv4-bazaar/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func sampleUser() model.User {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return model.User{
		ID:                 "u-1",
		Name:               "Ana",
		Email:              "ana@x.com",
		City:               "Delhi",
		VerificationStatus: model.Unverified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestGetUser(t *testing.T) {
	sample := sampleUser()

	t.Run("by id success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE id = $1")
				require.Equal(t, []any{"u-1"}, args)
				return &fakeRow{vals: userVals(sample)}
			},
		}
		u, err := GetUserByID(context.Background(), db, "u-1")
		require.NoError(t, err)
		require.Equal(t, sample, *u)
	})

	t.Run("by id not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetUserByID(context.Background(), db, "nope")
		require.ErrorIs(t, err, ErrNotFound)
		require.Contains(t, err.Error(), "GetUserByID")
	})

	t.Run("by email lowercases", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{"ana@x.com"}, args)
				return &fakeRow{vals: userVals(sample)}
			},
		}
		u, err := GetUserByEmail(context.Background(), db, "Ana@X.com")
		require.NoError(t, err)
		require.Equal(t, "u-1", u.ID)
	})
}

func TestCreateUser(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "INSERT INTO users")
				require.Equal(t, "ana@x.com", args[2])
				require.Equal(t, "unverified", args[4])
				return &fakeRow{vals: []any{now, now}}
			},
		}
		u, err := CreateUser(context.Background(), db, &model.User{
			ID: "u-1", Name: "Ana", Email: "ANA@x.com", City: "Delhi",
			VerificationStatus: model.Unverified,
		})
		require.NoError(t, err)
		require.Equal(t, "ana@x.com", u.Email)
		require.Equal(t, now, u.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: &pgconn.PgError{Code: "23505"}}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{ID: "u-1"})
		require.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestListUsers(t *testing.T) {
	a, b := sampleUser(), sampleUser()
	b.ID, b.Name = "u-2", "Bo"

	t.Run("search pattern", func(t *testing.T) {
		rows := &fakeRows{rows: []*fakeRow{{vals: userVals(a)}, {vals: userVals(b)}}}
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
				require.Equal(t, []any{"del_hi", `%del\_hi%`}, args)
				return rows, nil
			},
		}
		users, err := ListUsers(context.Background(), db, "del_hi")
		require.NoError(t, err)
		require.Len(t, users, 2)
		require.Equal(t, "Bo", users[1].Name)
		require.True(t, rows.closed)
	})

	t.Run("empty result is non-nil", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{}, nil
			},
		}
		users, err := ListUsers(context.Background(), db, "")
		require.NoError(t, err)
		require.NotNil(t, users)
		require.Empty(t, users)
	})

	t.Run("rows error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{err: errors.New("conn reset")}, nil
			},
		}
		_, err := ListUsers(context.Background(), db, "")
		require.ErrorContains(t, err, "conn reset")
	})

	t.Run("query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return nil, errors.New("down")
			},
		}
		_, err := ListUsers(context.Background(), db, "")
		require.ErrorContains(t, err, "ListUsers: down")
	})
}

func TestUpdateUser(t *testing.T) {
	updated := sampleUser()
	updated.City = "Mumbai"
	city := "Mumbai"
	email := "NEW@x.com"

	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "COALESCE($4, city)")
			require.Contains(t, sql, "UPDATE auth_identities")
			require.Contains(t, sql, "SET email = $3")
			require.Equal(t, "u-1", args[0])
			require.Nil(t, args[1].(*string))
			require.Equal(t, "new@x.com", *args[2].(*string))
			require.Equal(t, "Mumbai", *args[3].(*string))
			return &fakeRow{vals: userVals(updated)}
		},
	}
	u, err := UpdateUser(context.Background(), db, "u-1", model.UserPatch{City: &city, Email: &email})
	require.NoError(t, err)
	require.Equal(t, "Mumbai", u.City)
}

func TestUpdateUserEmailTaken(t *testing.T) {
	email := "bo@x.com"
	db := &database.FakeDB{
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanErr: &pgconn.PgError{Code: "23505", ConstraintName: "auth_identities_email_key"}}
		},
	}
	_, err := UpdateUser(context.Background(), db, "u-1", model.UserPatch{Email: &email})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestMarkUserVerified(t *testing.T) {
	verified := sampleUser()
	verified.VerificationStatus = model.Verified

	t.Run("transitions once", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
				require.True(t, strings.HasPrefix(strings.TrimSpace(sql), "UPDATE users"))
				return &fakeRow{vals: userVals(verified)}
			},
		}
		u, err := MarkUserVerified(context.Background(), db, "u-1")
		require.NoError(t, err)
		require.True(t, u.IsVerified())
	})

	t.Run("already verified falls back to select", func(t *testing.T) {
		calls := 0
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				calls++
				if calls == 1 {
					return &fakeRow{scanErr: pgx.ErrNoRows}
				}
				return &fakeRow{vals: userVals(verified)}
			},
		}
		u, err := MarkUserVerified(context.Background(), db, "u-1")
		require.NoError(t, err)
		require.Equal(t, 2, calls)
		require.True(t, u.IsVerified())
	})

	t.Run("unknown user", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := MarkUserVerified(context.Background(), db, "ghost")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCountUsers(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "COUNT(*) FROM users")
			return &fakeRow{vals: []any{int64(42)}}
		},
	}
	n, err := CountUsers(context.Background(), db)
	require.NoError(t, err)
	require.EqualValues(t, 42, n)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &fakeRow{scanErr: errors.New("timeout")}
	}
	_, err = CountUsers(context.Background(), db)
	require.ErrorContains(t, err, "CountUsers: timeout")
}
