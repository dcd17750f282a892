// File: internal/model/account.go
package model

import "time"

// Account 身分提供者端的帳號，與 users 表共用同一個 ID
type Account struct {
	ID               string     `db:"id" json:"id"`
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	EmailConfirmedAt *time.Time `db:"email_confirmed_at" json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// EmailConfirmed 回傳 Email 是否已確認
func (a Account) EmailConfirmed() bool {
	return a.EmailConfirmedAt != nil
}
