// File: internal/handler/users/requests.go
package users

import (
	"net/http"

	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/handler"
	"ipv4-bazaar/internal/middleware"
	"ipv4-bazaar/internal/portal"

	"github.com/labstack/echo/v4"
)

// ListMyRequestsHandler 當前使用者的申請，新到舊
// @Summary     我的申請
// @Tags        requests
// @Produce     json
// @Success     200 {array}  dto.IPRequestResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /users/me/requests [get]
func ListMyRequestsHandler(svc *portal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		m, ok := middleware.MachineFrom(c)
		if !ok {
			return handler.NoSession(c)
		}
		id := m.Identity()
		if !id.IsEndUser() {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "login required"})
		}
		list, err := svc.FetchUserRequests(c.Request().Context(), id.User.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewIPRequestResponses(list))
	}
}

// CreateMyRequestHandler 送出新的 IPv4 申請
// @Summary     送出申請
// @Tags        requests
// @Accept      json
// @Produce     json
// @Param       body body dto.CreateIPRequestRequest true "申請內容"
// @Success     201 {object} dto.IPRequestResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /users/me/requests [post]
func CreateMyRequestHandler(svc *portal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateIPRequestRequest
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
		created, err := svc.SubmitRequest(c.Request().Context(), id.User.ID, req.NewRequest())
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, dto.NewIPRequestResponse(*created))
	}
}
