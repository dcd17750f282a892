// File: internal/handler/auth/session.go
package auth

import (
	"net/http"

	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/handler"
	"ipv4-bazaar/internal/middleware"

	"github.com/labstack/echo/v4"
)

// SessionHandler 回傳目前 session 的身分
// @Summary     目前身分
// @Description 依 session cookie 還原的身分；未登入時 kind 為 anonymous
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.SessionResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /session [get]
func SessionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		m, ok := middleware.MachineFrom(c)
		if !ok {
			return handler.NoSession(c)
		}
		return c.JSON(http.StatusOK, dto.NewSessionResponse(m.Identity()))
	}
}
