// File: internal/handler/admin/requests.go
package admin

import (
	"net/http"
	"strconv"

	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/handler"
	"ipv4-bazaar/internal/model"
	"ipv4-bazaar/internal/portal"

	"github.com/labstack/echo/v4"
)

// LatestRequestsHandler 最新的申請
// @Summary     最新申請
// @Tags        admin
// @Produce     json
// @Param       limit query int false "筆數，預設 10"
// @Success     200 {array}  dto.IPRequestResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /admin/requests/latest [get]
func LatestRequestsHandler(svc *portal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 0
		if v := c.QueryParam("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "無效的 limit"})
			}
			limit = n
		}
		list, err := svc.LatestRequests(c.Request().Context(), limit)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewIPRequestResponses(list))
	}
}

// ListRequestsHandler 所有申請，可用 q / urgency / status 篩選
// @Summary     申請列表
// @Tags        admin
// @Produce     json
// @Param       q       query string false "比對申請名稱、內容、申請人姓名與 Email"
// @Param       urgency query string false "Low / Medium / High"
// @Param       status  query string false "pending / under_review / approved / rejected"
// @Success     200 {array}  dto.IPRequestResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /admin/requests [get]
func ListRequestsHandler(svc *portal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.FetchAllRequests(c.Request().Context(), model.RequestFilter{
			Search:  c.QueryParam("q"),
			Urgency: model.Urgency(c.QueryParam("urgency")),
			Status:  model.RequestStatus(c.QueryParam("status")),
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewIPRequestResponses(list))
	}
}

// UpdateRequestStatusHandler 變更申請狀態
// @Summary     變更申請狀態
// @Description pending 可改為 under_review 或 rejected，under_review 可改為 approved 或 rejected
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path string                         true "申請 ID"
// @Param       body body dto.UpdateRequestStatusRequest true "新狀態與備註"
// @Success     200 {object} dto.IPRequestResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /admin/requests/{id}/status [patch]
func UpdateRequestStatusHandler(svc *portal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdateRequestStatusRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		updated, err := svc.UpdateRequestStatus(c.Request().Context(), c.Param("id"), model.RequestStatus(req.Status), req.AdminNotes)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewIPRequestResponse(*updated))
	}
}
