// Package auth 維護單一瀏覽器 session 的登入身分。
// Machine 是 Identity 唯一的寫入者，session.Store 只會在狀態轉移時一併更新。
package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ipv4-bazaar/internal/apperr"
	"ipv4-bazaar/internal/backend"
	"ipv4-bazaar/internal/model"
	"ipv4-bazaar/internal/session"
)

var timeNow = time.Now

// 固定的管理員資料
const (
	AdminID    = "admin-001"
	AdminEmail = "admin@ipv4bazaar.com"
	AdminRole  = "admin"
)

// ErrNotEndUser 目前身分不是一般使用者時呼叫 UpdateUser
var ErrNotEndUser = apperr.New(apperr.InvalidInput, "no end-user is logged in")

// AdminCredentials 管理員帳密，預設 admin / admin123
type AdminCredentials struct {
	Username string
	Password string
}

func DefaultAdminCredentials() AdminCredentials {
	return AdminCredentials{Username: "admin", Password: "admin123"}
}

// Machine 狀態：uninitialized → {anonymous, end_user, admin}
type Machine struct {
	mu          sync.Mutex
	loading     atomic.Bool
	initialized bool
	identity    model.Identity

	backend backend.Service
	store   session.Store
	admin   AdminCredentials
	logger  *slog.Logger
}

func New(b backend.Service, s session.Store, admin AdminCredentials, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		backend: b,
		store:   s,
		admin:   admin,
		logger:  logger,
	}
}

// Identity 回傳目前身分的複本
func (m *Machine) Identity() model.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneIdentity(m.identity)
}

// Initialized 回報 Restore 是否已經執行過
func (m *Machine) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Loading 回報是否有遠端呼叫進行中，不需要取得鎖
func (m *Machine) Loading() bool {
	return m.loading.Load()
}

func (m *Machine) begin() func() {
	m.loading.Store(true)
	return func() { m.loading.Store(false) }
}

// Restore 從 session store 還原身分，不會失敗。
// 兩個 key 同時存在時視為不一致，清除兩者並回到 anonymous。
func (m *Machine) Restore(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, hasUser := load[model.User](ctx, m, session.KeyUser)
	admin, hasAdmin := load[model.Admin](ctx, m, session.KeyAdmin)

	switch {
	case hasUser && hasAdmin:
		m.logger.WarnContext(ctx, "both user and admin sessions persisted, clearing both")
		if err := m.store.Delete(ctx, session.KeyUser, session.KeyAdmin); err != nil {
			m.logger.ErrorContext(ctx, "clear conflicting session", "error", err)
		}
		m.identity = model.Anonymous()
	case hasUser:
		m.identity = model.EndUser(user)
	case hasAdmin:
		m.identity = model.AdminIdentity(admin)
	default:
		m.identity = model.Anonymous()
	}
	m.initialized = true
}

// load 讀取並解碼一個 key；讀取失敗視為不存在，內容壞掉則刪除
func load[T model.User | model.Admin](ctx context.Context, m *Machine, key string) (T, bool) {
	var v T
	raw, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.logger.WarnContext(ctx, "read session key", "key", key, "error", err)
		return v, false
	}
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil || !hasID(v) {
		m.logger.WarnContext(ctx, "discard undecodable session payload", "key", key)
		if err := m.store.Delete(ctx, key); err != nil {
			m.logger.ErrorContext(ctx, "delete session key", "key", key, "error", err)
		}
		return v, false
	}
	return v, true
}

func hasID(v any) bool {
	switch x := v.(type) {
	case model.User:
		return x.ID != ""
	case model.Admin:
		return x.ID != ""
	}
	return false
}

// Login 一般使用者登入。profile 以身分帳號的 id 查詢，email 改過也能登入；
// 以 users.verification_status 作為是否已驗證的依據，任何失敗都不改變目前身分。
func (m *Machine) Login(ctx context.Context, email, password string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.begin()()

	email = strings.TrimSpace(email)
	sess, err := m.backend.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidLogin) {
			return nil, apperr.Wrap(apperr.InvalidCredentials, "Invalid email or password", err)
		}
		return nil, remote(err)
	}

	user, err := m.backend.GetUserByID(ctx, sess.AccountID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, apperr.Wrap(apperr.ProfileNotFound, "User profile not found", err)
		}
		return nil, remote(err)
	}
	if !user.IsVerified() {
		return nil, apperr.New(apperr.UnverifiedAccount, "Please verify your email before logging in")
	}
	if !sess.EmailConfirmed {
		m.logger.WarnContext(ctx, "identity provider reports unconfirmed email for verified user", "user_id", user.ID)
	}

	if err := m.persist(ctx, session.KeyUser, session.KeyAdmin, user); err != nil {
		return nil, err
	}
	m.identity = model.EndUser(*user)
	out := *user
	return &out, nil
}

// AdminLogin 與設定的固定帳密比對
func (m *Machine) AdminLogin(ctx context.Context, username, password string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.begin()()

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.admin.Password)) == 1
	if !userOK || !passOK || m.admin.Username == "" {
		return nil, apperr.New(apperr.InvalidCredentials, "Invalid admin credentials")
	}

	admin := &model.Admin{
		ID:        AdminID,
		Username:  m.admin.Username,
		Email:     AdminEmail,
		Role:      AdminRole,
		IsActive:  true,
		CreatedAt: timeNow().UTC(),
	}
	if err := m.persist(ctx, session.KeyAdmin, session.KeyUser, admin); err != nil {
		return nil, err
	}
	m.identity = model.AdminIdentity(*admin)
	out := *admin
	return &out, nil
}

// Signup 建立身分帳號與 unverified 的 users 列，不改變目前身分。
// users 寫入失敗時刪除剛建立的帳號。
func (m *Machine) Signup(ctx context.Context, name, email, city, password string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.begin()()

	acct, err := m.backend.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, creationFailed(err)
	}

	user, err := m.backend.InsertUser(ctx, model.User{
		ID:                 acct.ID,
		Name:               strings.TrimSpace(name),
		Email:              acct.Email,
		City:               strings.TrimSpace(city),
		VerificationStatus: model.Unverified,
	})
	if err != nil {
		if derr := m.backend.DeleteAccount(context.WithoutCancel(ctx), acct.ID); derr != nil {
			m.logger.ErrorContext(ctx, "rollback identity account after profile insert failure",
				"account_id", acct.ID, "error", derr)
		}
		return nil, creationFailed(err)
	}
	return user, nil
}

// UpdateUser 以呼叫端提供的資料整筆取代目前使用者，不呼叫遠端服務
func (m *Machine) UpdateUser(ctx context.Context, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.identity.IsEndUser() {
		return ErrNotEndUser
	}
	if user.ID != m.identity.User.ID {
		return apperr.New(apperr.InvalidInput, "user id does not match the current session")
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return remote(err)
	}
	if err := m.store.Set(ctx, session.KeyUser, payload); err != nil {
		return remote(err)
	}
	m.identity = model.EndUser(user)
	return nil
}

// Logout 一律回到 anonymous 並清除兩個 key；store 失敗時仍回傳錯誤
func (m *Machine) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.identity = model.Anonymous()
	m.initialized = true
	if err := m.store.Delete(ctx, session.KeyUser, session.KeyAdmin); err != nil {
		return remote(err)
	}
	return nil
}

// persist 寫入 key 並刪除互斥的另一個 key；刪除失敗時回滾剛寫入的 key
func (m *Machine) persist(ctx context.Context, key, other string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return remote(err)
	}
	if err := m.store.Set(ctx, key, payload); err != nil {
		return remote(err)
	}
	if err := m.store.Delete(ctx, other); err != nil {
		if rerr := m.restorePrevious(ctx, key); rerr != nil {
			m.logger.ErrorContext(ctx, "roll back session key", "key", key, "error", rerr)
		}
		return remote(err)
	}
	return nil
}

// restorePrevious 把 key 還原成目前身分對應的內容
func (m *Machine) restorePrevious(ctx context.Context, key string) error {
	var prev any
	switch {
	case key == session.KeyUser && m.identity.IsEndUser():
		prev = m.identity.User
	case key == session.KeyAdmin && m.identity.IsAdmin():
		prev = m.identity.Admin
	default:
		return m.store.Delete(ctx, key)
	}
	payload, err := json.Marshal(prev)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, key, payload)
}

func remote(err error) error {
	return apperr.Wrap(apperr.RemoteUnavailable, "service temporarily unavailable", err)
}

func creationFailed(err error) error {
	msg := "account creation failed"
	switch {
	case errors.Is(err, backend.ErrEmailTaken):
		msg = backend.ErrEmailTaken.Error()
	case errors.Is(err, backend.ErrWeakPassword):
		msg = backend.ErrWeakPassword.Error()
	}
	return apperr.Wrap(apperr.AccountCreationFailed, msg, err)
}

func cloneIdentity(id model.Identity) model.Identity {
	out := model.Identity{Kind: id.Kind}
	if id.User != nil {
		u := *id.User
		out.User = &u
	}
	if id.Admin != nil {
		a := *id.Admin
		out.Admin = &a
	}
	if out.Kind == "" {
		out.Kind = model.KindAnonymous
	}
	return out
}
