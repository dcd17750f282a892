// File: internal/handler/auth/verification.go
package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"ipv4-bazaar/internal/backend"
	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/handler"

	"github.com/labstack/echo/v4"
)

const resendAccepted = "if the address is registered and unverified, a new verification email is on its way"

// ResendVerificationHandler 重寄驗證信；不透露 Email 是否存在
// @Summary     重寄驗證信
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.ResendVerificationRequest true "Email"
// @Success     202 {object} dto.MessageResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     429 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /auth/verification/resend [post]
func ResendVerificationHandler(b backend.Service, logger *slog.Logger) echo.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c echo.Context) error {
		var req dto.ResendVerificationRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		ctx := c.Request().Context()
		if err := b.ResendVerification(ctx, req.Email); err != nil && !errors.Is(err, backend.ErrNotFound) {
			logger.ErrorContext(ctx, "resend verification", "error", err)
			return c.JSON(http.StatusServiceUnavailable, dto.HTTPError{Message: "service temporarily unavailable"})
		}
		return c.JSON(http.StatusAccepted, dto.MessageResponse{Message: resendAccepted})
	}
}

// VerifyEmailHandler 驗證信連結的回呼
// @Summary     確認 Email
// @Description 驗證 token 後將帳號標記為 verified，之後即可登入
// @Tags        auth
// @Produce     json
// @Param       token query string true "驗證 token"
// @Success     200 {object} dto.MessageResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /auth/verify-email [get]
func VerifyEmailHandler(b backend.Service, logger *slog.Logger) echo.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "token is required"})
		}
		ctx := c.Request().Context()
		if _, err := b.ConfirmEmail(ctx, token); err != nil {
			if errors.Is(err, backend.ErrInvalidToken) || errors.Is(err, backend.ErrNotFound) {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "verification link is invalid or has expired"})
			}
			logger.ErrorContext(ctx, "confirm email", "error", err)
			return c.JSON(http.StatusServiceUnavailable, dto.HTTPError{Message: "service temporarily unavailable"})
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "email verified, you can now log in"})
	}
}
