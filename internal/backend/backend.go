// Package backend 是身分驗證與資料服務的邊界。
// 上層只看得到 Service 介面與邊界錯誤，不直接碰 SQL 或 token。
package backend

import (
	"context"
	"errors"

	"ipv4-bazaar/internal/model"
)

// 邊界錯誤
var (
	ErrInvalidLogin = errors.New("invalid login credentials")
	ErrEmailTaken   = errors.New("user already registered")
	ErrWeakPassword = errors.New("password should be at least 6 characters")
	ErrNotFound     = errors.New("not found")
	ErrInvalidToken = errors.New("invalid or expired token")
)

const MinPasswordLength = 6

// AuthSession 登入成功後取得的憑證
type AuthSession struct {
	AccountID      string `json:"account_id"`
	AccessToken    string `json:"access_token"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

type Service interface {
	// 身分提供者
	SignUp(ctx context.Context, email, password string) (*model.Account, error)
	SignIn(ctx context.Context, email, password string) (*AuthSession, error)
	ResendVerification(ctx context.Context, email string) error
	ConfirmEmail(ctx context.Context, token string) (*model.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error

	// users
	InsertUser(ctx context.Context, u model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context, search string) ([]model.User, error)
	UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	SetUserVerified(ctx context.Context, id string) (*model.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// ip_requests
	InsertRequest(ctx context.Context, r model.IPRequest) (*model.IPRequest, error)
	GetRequest(ctx context.Context, id string) (*model.IPRequest, error)
	ListRequests(ctx context.Context, f model.RequestFilter) ([]model.IPRequest, error)
	LatestRequests(ctx context.Context, limit int) ([]model.IPRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, from, to model.RequestStatus, notes *string) (*model.IPRequest, error)
	CountRequests(ctx context.Context) (int64, error)
}
