package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ipv4-bazaar/internal/database"
	"ipv4-bazaar/internal/mail"
	"ipv4-bazaar/internal/model"
	"ipv4-bazaar/internal/service"
	"ipv4-bazaar/internal/store"
	"ipv4-bazaar/internal/worker"

	"github.com/google/uuid"
)

// 測試時可替換
var (
	createAccount       = store.CreateAccount
	getAccountByEmail   = store.GetAccountByEmail
	confirmAccountEmail = store.ConfirmAccountEmail
	deleteAccount       = store.DeleteAccount
	createUser          = store.CreateUser
	getUserByID         = store.GetUserByID
	getUserByEmail      = store.GetUserByEmail
	listUsers           = store.ListUsers
	updateUser          = store.UpdateUser
	markUserVerified    = store.MarkUserVerified
	countUsers          = store.CountUsers
	createRequest       = store.CreateRequest
	getRequest          = store.GetRequest
	listRequests        = store.ListRequests
	updateRequestStatus = store.UpdateRequestStatus
	countRequests       = store.CountRequests
	hashPassword        = service.HashPassword
	comparePassword     = service.ComparePassword
	newID               = uuid.NewString
)

const (
	accessTokenTTL  = 24 * time.Hour
	verifyTokenTTL  = 48 * time.Hour
	mailSendTimeout = 10 * time.Second
)

type Options struct {
	DB      database.DB
	Tokens  *service.Tokens
	Mailer  mail.Mailer
	Pool    worker.Pool
	BaseURL string
	Logger  *slog.Logger
}

// Postgres 以 PostgreSQL 實作 Service，auth_identities 表扮演身分提供者
type Postgres struct {
	db      database.DB
	tokens  *service.Tokens
	mailer  mail.Mailer
	pool    worker.Pool
	baseURL string
	logger  *slog.Logger
}

var _ Service = (*Postgres)(nil)

func NewPostgres(opts Options) *Postgres {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{
		db:      opts.DB,
		tokens:  opts.Tokens,
		mailer:  opts.Mailer,
		pool:    opts.Pool,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		logger:  logger,
	}
}

// translate 將 store 的哨兵錯誤轉為邊界錯誤
func translate(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

/* ---------- 身分提供者 ---------- */

func (p *Postgres) SignUp(ctx context.Context, email, password string) (*model.Account, error) {
	email = strings.TrimSpace(email)
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("SignUp: %w", err)
	}
	acct, err := createAccount(ctx, p.db, &model.Account{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	p.sendVerification(ctx, acct)
	return acct, nil
}

func (p *Postgres) SignIn(ctx context.Context, email, password string) (*AuthSession, error) {
	acct, err := getAccountByEmail(ctx, p.db, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}
	if err := comparePassword(acct.PasswordHash, password); err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) {
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("SignIn: %w", err)
	}
	token, err := p.tokens.Issue(acct.ID, acct.Email, service.PurposeAccess, accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("SignIn: %w", err)
	}
	return &AuthSession{
		AccountID:      acct.ID,
		AccessToken:    token,
		EmailConfirmed: acct.EmailConfirmed(),
	}, nil
}

// ResendVerification 已確認的帳號不會再寄信
func (p *Postgres) ResendVerification(ctx context.Context, email string) error {
	acct, err := getAccountByEmail(ctx, p.db, strings.TrimSpace(email))
	if err != nil {
		return translate(err)
	}
	if acct.EmailConfirmed() {
		return nil
	}
	p.sendVerification(ctx, acct)
	return nil
}

// ConfirmEmail 是驗證信連結的回呼：確認帳號並把 users 列翻成 verified
func (p *Postgres) ConfirmEmail(ctx context.Context, token string) (*model.Account, error) {
	claims, err := p.tokens.Verify(token, service.PurposeVerifyEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	acct, err := confirmAccountEmail(ctx, p.db, claims.Subject)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := markUserVerified(ctx, p.db, acct.ID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		p.logger.WarnContext(ctx, "email confirmed for account without profile", "account_id", acct.ID)
	}
	return acct, nil
}

func (p *Postgres) DeleteAccount(ctx context.Context, accountID string) error {
	return deleteAccount(ctx, p.db, accountID)
}

// sendVerification 透過 worker pool 非同步寄出驗證信，失敗只記錄
func (p *Postgres) sendVerification(ctx context.Context, acct *model.Account) {
	token, err := p.tokens.Issue(acct.ID, acct.Email, service.PurposeVerifyEmail, verifyTokenTTL)
	if err != nil {
		p.logger.ErrorContext(ctx, "issue verification token", "account_id", acct.ID, "error", err)
		return
	}
	msg := mail.VerificationMessage(acct.Email, p.baseURL, token)
	bg := context.WithoutCancel(ctx)
	err = p.pool.Submit(func() {
		sendCtx, cancel := context.WithTimeout(bg, mailSendTimeout)
		defer cancel()
		if err := p.mailer.Send(sendCtx, msg); err != nil {
			p.logger.ErrorContext(sendCtx, "send verification mail", "account_id", acct.ID, "error", err)
		}
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "queue verification mail", "account_id", acct.ID, "error", err)
	}
}

/* ---------- users ---------- */

func (p *Postgres) InsertUser(ctx context.Context, u model.User) (*model.User, error) {
	if u.VerificationStatus == "" {
		u.VerificationStatus = model.Unverified
	}
	created, err := createUser(ctx, p.db, &u)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	return created, err
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	u, err := getUserByID(ctx, p.db, id)
	return u, translate(err)
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := getUserByEmail(ctx, p.db, strings.TrimSpace(email))
	return u, translate(err)
}

func (p *Postgres) ListUsers(ctx context.Context, search string) ([]model.User, error) {
	return listUsers(ctx, p.db, search)
}

func (p *Postgres) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	u, err := updateUser(ctx, p.db, id, patch)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	return u, translate(err)
}

func (p *Postgres) SetUserVerified(ctx context.Context, id string) (*model.User, error) {
	u, err := markUserVerified(ctx, p.db, id)
	return u, translate(err)
}

func (p *Postgres) CountUsers(ctx context.Context) (int64, error) {
	return countUsers(ctx, p.db)
}

/* ---------- ip_requests ---------- */

func (p *Postgres) InsertRequest(ctx context.Context, r model.IPRequest) (*model.IPRequest, error) {
	if r.ID == "" {
		r.ID = newID()
	}
	created, err := createRequest(ctx, p.db, &r)
	return created, translate(err)
}

func (p *Postgres) GetRequest(ctx context.Context, id string) (*model.IPRequest, error) {
	r, err := getRequest(ctx, p.db, id)
	return r, translate(err)
}

func (p *Postgres) ListRequests(ctx context.Context, f model.RequestFilter) ([]model.IPRequest, error) {
	return listRequests(ctx, p.db, f)
}

func (p *Postgres) LatestRequests(ctx context.Context, limit int) ([]model.IPRequest, error) {
	return listRequests(ctx, p.db, model.RequestFilter{Limit: limit})
}

// UpdateRequestStatus 以 from 作為樂觀鎖，成功後回傳最新資料
func (p *Postgres) UpdateRequestStatus(ctx context.Context, id string, from, to model.RequestStatus, notes *string) (*model.IPRequest, error) {
	if err := updateRequestStatus(ctx, p.db, id, from, to, notes); err != nil {
		return nil, translate(err)
	}
	r, err := getRequest(ctx, p.db, id)
	return r, translate(err)
}

func (p *Postgres) CountRequests(ctx context.Context) (int64, error) {
	return countRequests(ctx, p.db)
}
