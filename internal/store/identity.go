package store

import (
	"context"
	"strings"

	"ipv4-bazaar/internal/database"
	"ipv4-bazaar/internal/model"
)

const accountColumns = `id, email, password_hash, email_confirmed_at, created_at`

func scanAccount(row scanner) (*model.Account, error) {
	a := &model.Account{}
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.EmailConfirmedAt,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return a, nil
}

func CreateAccount(ctx context.Context, db database.Querier, a *model.Account) (*model.Account, error) {
	a.Email = strings.ToLower(a.Email)
	row := db.QueryRow(ctx,
		`INSERT INTO auth_identities (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		a.ID,
		a.Email,
		a.PasswordHash,
	)
	if err := row.Scan(&a.CreatedAt); err != nil {
		return nil, wrap("CreateAccount", err)
	}
	return a, nil
}

func GetAccountByEmail(ctx context.Context, db database.Querier, email string) (*model.Account, error) {
	a, err := scanAccount(db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM auth_identities WHERE email = $1`,
		strings.ToLower(email),
	))
	if err != nil {
		return nil, wrap("GetAccountByEmail", err)
	}
	return a, nil
}

// ConfirmAccountEmail 設定 email_confirmed_at；重複確認會保留第一次的時間
func ConfirmAccountEmail(ctx context.Context, db database.Querier, accountID string) (*model.Account, error) {
	a, err := scanAccount(db.QueryRow(ctx,
		`UPDATE auth_identities
		 SET email_confirmed_at = COALESCE(email_confirmed_at, now())
		 WHERE id = $1
		 RETURNING `+accountColumns,
		accountID,
	))
	if err != nil {
		return nil, wrap("ConfirmAccountEmail", err)
	}
	return a, nil
}

func DeleteAccount(ctx context.Context, db database.Querier, accountID string) error {
	_, err := db.Exec(ctx,
		`DELETE FROM auth_identities WHERE id = $1`,
		accountID,
	)
	if err != nil {
		return wrap("DeleteAccount", err)
	}
	return nil
}
