// File: internal/handler/auth/login.go
package auth

import (
	"net/http"

	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/handler"
	"ipv4-bazaar/internal/middleware"
	"ipv4-bazaar/internal/model"

	"github.com/labstack/echo/v4"
)

// LoginHandler 一般使用者以 Email/Password 登入
// @Summary     使用者登入
// @Description 驗證帳密並確認 Email 已驗證，成功後此 session 成為該使用者
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.LoginRequest true "登入資料"
// @Success     200 {object} dto.SessionResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     429 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(rec Recorder) echo.HandlerFunc {
	rec = orNop(rec)
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		m, ok := middleware.MachineFrom(c)
		if !ok {
			return handler.NoSession(c)
		}

		if _, err := m.Login(c.Request().Context(), req.Email, req.Password); err != nil {
			rec.RecordLogin(model.KindEndUser, false)
			return handler.Error(c, err)
		}
		rec.RecordLogin(model.KindEndUser, true)
		return c.JSON(http.StatusOK, dto.NewSessionResponse(m.Identity()))
	}
}

// AdminLoginHandler 管理員登入
// @Summary     管理員登入
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.AdminLoginRequest true "管理員帳密"
// @Success     200 {object} dto.SessionResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     429 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /auth/admin/login [post]
func AdminLoginHandler(rec Recorder) echo.HandlerFunc {
	rec = orNop(rec)
	return func(c echo.Context) error {
		var req dto.AdminLoginRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		m, ok := middleware.MachineFrom(c)
		if !ok {
			return handler.NoSession(c)
		}

		if _, err := m.AdminLogin(c.Request().Context(), req.Username, req.Password); err != nil {
			rec.RecordLogin(model.KindAdmin, false)
			return handler.Error(c, err)
		}
		rec.RecordLogin(model.KindAdmin, true)
		return c.JSON(http.StatusOK, dto.NewSessionResponse(m.Identity()))
	}
}

// LogoutHandler 清除此 session 的身分；儲存失敗時仍回到未登入
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.SessionResponse
// @Failure     503 {object} dto.HTTPError
// @Router      /auth/logout [post]
func LogoutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		m, ok := middleware.MachineFrom(c)
		if !ok {
			return handler.NoSession(c)
		}
		if err := m.Logout(c.Request().Context()); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewSessionResponse(m.Identity()))
	}
}
