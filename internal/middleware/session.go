package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ipv4-bazaar/internal/auth"
	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "ipb_session"
	ContextMachineKey = "auth_machine"
	ContextSessionKey = "session_id"
)

// toucher 支援延長 TTL 的 session store
type toucher interface {
	Touch(ctx context.Context) error
}

// SessionConfig 每個請求依 cookie 中的 session id 建立 store 與 auth.Machine
type SessionConfig struct {
	NewStore   func(sid string) session.Store
	NewMachine func(store session.Store) *auth.Machine
	TTL        time.Duration
	Secure     bool
	Logger     *slog.Logger
}

var (
	defaultSessionID = uuid.NewString
	newSessionID     = defaultSessionID
)

// Session 讀取或建立 session cookie，還原身分後把 Machine 放進 context
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				if _, perr := uuid.Parse(ck.Value); perr == nil {
					sid = ck.Value
				}
			}
			if sid == "" {
				sid = newSessionID()
			}
			c.SetCookie(&http.Cookie{
				Name:     SessionCookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := c.Request().Context()
			store := cfg.NewStore(sid)
			m := cfg.NewMachine(store)
			m.Restore(ctx)
			if !m.Identity().IsAnonymous() {
				if t, ok := store.(toucher); ok {
					if err := t.Touch(ctx); err != nil {
						cfg.Logger.WarnContext(ctx, "extend session ttl", "error", err)
					}
				}
			}

			c.Set(ContextSessionKey, sid)
			c.Set(ContextMachineKey, m)
			return next(c)
		}
	}
}

// MachineFrom 取出 Session 放進 context 的 Machine
func MachineFrom(c echo.Context) (*auth.Machine, bool) {
	m, ok := c.Get(ContextMachineKey).(*auth.Machine)
	return m, ok && m != nil
}

// RequireUser 只允許已登入的一般使用者
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		m, ok := MachineFrom(c)
		if !ok || !m.Identity().IsEndUser() {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "login required"})
		}
		return next(c)
	}
}

// RequireAdmin 只允許管理員；已登入的一般使用者回 403
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		m, ok := MachineFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "admin login required"})
		}
		id := m.Identity()
		switch {
		case id.IsAdmin():
			return next(c)
		case id.IsEndUser():
			return c.JSON(http.StatusForbidden, dto.HTTPError{Message: "admin privileges required"})
		}
		return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "admin login required"})
	}
}
