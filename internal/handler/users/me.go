// File: internal/handler/users/me.go
package users

import (
	"log/slog"
	"net/http"

	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/handler"
	"ipv4-bazaar/internal/middleware"
	"ipv4-bazaar/internal/portal"

	"github.com/labstack/echo/v4"
)

// GetMyUserHandler 取得當前使用者資料（session 中的快照）
// @Summary     取得當前使用者
// @Tags        users
// @Produce     json
// @Success     200 {object} dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Router      /users/me [get]
func GetMyUserHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		m, ok := middleware.MachineFrom(c)
		if !ok {
			return handler.NoSession(c)
		}
		id := m.Identity()
		if !id.IsEndUser() {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "login required"})
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(*id.User))
	}
}

// UpdateMyUserHandler 更新當前使用者資料，並同步 session 中的快照
// @Summary     更新當前使用者
// @Description 只更新有帶的欄位；Email 已被使用時回 400
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body dto.UpdateProfileRequest true "要更新的欄位"
// @Success     200 {object} dto.UserResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /users/me [put]
func UpdateMyUserHandler(svc *portal.Service, logger *slog.Logger) echo.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c echo.Context) error {
		var req dto.UpdateProfileRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		m, ok := middleware.MachineFrom(c)
		if !ok {
			return handler.NoSession(c)
		}
		id := m.Identity()
		if !id.IsEndUser() {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "login required"})
		}

		ctx := c.Request().Context()
		user, err := svc.UpdateUserProfile(ctx, id.User.ID, req.Patch())
		if err != nil {
			return handler.Error(c, err)
		}
		// 資料庫已更新，session 快照寫入失敗只記錄
		if err := m.UpdateUser(ctx, *user); err != nil {
			logger.WarnContext(ctx, "refresh session user", "user_id", user.ID, "error", err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(*user))
	}
}
