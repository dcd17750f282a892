package store

import (
	"context"
	"strings"

	"ipv4-bazaar/internal/database"
	"ipv4-bazaar/internal/model"
)

const userColumns = `id, name, email, city, verification_status, created_at, updated_at`

func scanUser(row scanner) (*model.User, error) {
	u := &model.User{}
	var status string
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.City,
		&status,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.VerificationStatus = model.VerificationStatus(status)
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(email),
	))
	if err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

// ListUsers 依建立時間新到舊列出使用者，search 非空時比對 name / email / city
func ListUsers(ctx context.Context, db database.Querier, search string) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE $1 = '' OR name ILIKE $2 OR email ILIKE $2 OR city ILIKE $2
		 ORDER BY created_at DESC`,
		search,
		likePattern(search),
	)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("ListUsers", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUsers", err)
	}
	return users, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, city, verification_status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		u.ID,
		u.Name,
		strings.ToLower(u.Email),
		u.City,
		string(u.VerificationStatus),
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, wrap("CreateUser", err)
	}
	u.Email = strings.ToLower(u.Email)
	return u, nil
}

// UpdateUser 只更新 patch 中非 nil 的欄位，回傳更新後的資料。
// email 是登入帳號，同一個陳述式內一併改寫 auth_identities。
func UpdateUser(ctx context.Context, db database.Querier, userID string, patch model.UserPatch) (*model.User, error) {
	var email *string
	if patch.Email != nil {
		lower := strings.ToLower(*patch.Email)
		email = &lower
	}
	u, err := scanUser(db.QueryRow(ctx,
		`WITH updated AS (
		     UPDATE users
		     SET name = COALESCE($2, name),
		         email = COALESCE($3, email),
		         city = COALESCE($4, city),
		         updated_at = now()
		     WHERE id = $1
		     RETURNING `+userColumns+`
		 ), synced AS (
		     UPDATE auth_identities
		     SET email = $3
		     WHERE $3::text IS NOT NULL AND id IN (SELECT id FROM updated)
		 )
		 SELECT `+userColumns+` FROM updated`,
		userID,
		patch.Name,
		email,
		patch.City,
	))
	if err != nil {
		return nil, wrap("UpdateUser", err)
	}
	return u, nil
}

// MarkUserVerified 只會從 unverified 轉成 verified 一次；已驗證時回傳現有資料
func MarkUserVerified(ctx context.Context, db database.Querier, userID string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users
		 SET verification_status = 'verified', updated_at = now()
		 WHERE id = $1 AND verification_status = 'unverified'
		 RETURNING `+userColumns,
		userID,
	))
	if err == nil {
		return u, nil
	}
	err = wrap("MarkUserVerified", err)
	if !isNotFound(err) {
		return nil, err
	}
	return GetUserByID(ctx, db, userID)
}

func CountUsers(ctx context.Context, db database.Querier) (int64, error) {
	var n int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, wrap("CountUsers", err)
	}
	return n, nil
}
