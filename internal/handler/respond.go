package handler

import (
	"errors"
	"fmt"
	"net/http"

	"ipv4-bazaar/internal/apperr"
	"ipv4-bazaar/internal/backend"
	"ipv4-bazaar/internal/dto"

	"github.com/labstack/echo/v4"
)

// StatusOf 將 apperr 種類對應到 HTTP 狀態碼
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.InvalidCredentials:
		return http.StatusUnauthorized
	case apperr.UnverifiedAccount:
		return http.StatusForbidden
	case apperr.AccountCreationFailed:
		if errors.Is(err, backend.ErrEmailTaken) {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case apperr.ProfileNotFound, apperr.NotFound:
		return http.StatusNotFound
	case apperr.InvalidInput:
		return http.StatusBadRequest
	}
	return http.StatusServiceUnavailable
}

// Error 以 dto.HTTPError 回應錯誤，訊息取自 apperr
func Error(c echo.Context, err error) error {
	return c.JSON(StatusOf(err), dto.HTTPError{Message: apperr.MessageOf(err)})
}

// Bind 先 Bind 再驗證，失敗時直接寫出 400 並回傳 false
func Bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, dto.HTTPError{Message: fmt.Sprintf("無效的表單資料: %v", err)})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
	}
	return true, nil
}

// NoSession 沒有掛 Session 中介層時的回應
func NoSession(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "session unavailable"})
}
