// File: internal/handler/admin/users.go
package admin

import (
	"net/http"

	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/handler"
	"ipv4-bazaar/internal/portal"

	"github.com/labstack/echo/v4"
)

// ListUsersHandler 註冊使用者列表
// @Summary     使用者列表
// @Tags        admin
// @Produce     json
// @Param       q query string false "比對姓名、Email 與城市"
// @Success     200 {array}  dto.UserResponse
// @Failure     503 {object} dto.HTTPError
// @Router      /admin/users [get]
func ListUsersHandler(svc *portal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.ListUsers(c.Request().Context(), c.QueryParam("q"))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponses(list))
	}
}

// UpdateUserHandler 管理員修改使用者資料
// @Summary     修改使用者
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path string                   true "使用者 ID"
// @Param       body body dto.UpdateProfileRequest true "要更新的欄位"
// @Success     200 {object} dto.UserResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /admin/users/{id} [put]
func UpdateUserHandler(svc *portal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdateProfileRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		u, err := svc.AdminUpdateUser(c.Request().Context(), c.Param("id"), req.Patch())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(*u))
	}
}
