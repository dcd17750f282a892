// File: internal/model/user.go
package model

import "time"

// VerificationStatus 表示使用者 Email 是否已驗證
type VerificationStatus string

const (
	Verified   VerificationStatus = "verified"
	Unverified VerificationStatus = "unverified"
)

type User struct {
	ID                 string             `db:"id" json:"id"`
	Name               string             `db:"name" json:"name"`
	Email              string             `db:"email" json:"email"`
	City               string             `db:"city" json:"city"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// IsVerified 回傳使用者是否可登入
func (u User) IsVerified() bool {
	return u.VerificationStatus == Verified
}

// UserPatch 部分更新欄位；nil 表示不變更
type UserPatch struct {
	Name  *string
	Email *string
	City  *string
}

// Empty 回傳 patch 是否沒有任何欄位
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.City == nil
}
