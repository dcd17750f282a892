// File: internal/handler/admin/stats.go
package admin

import (
	"net/http"

	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/portal"

	"github.com/labstack/echo/v4"
)

// StatsHandler 後台統計；遠端失敗時回傳零值與提示訊息，不回錯誤
// @Summary     後台統計
// @Tags        admin
// @Produce     json
// @Success     200 {object} dto.StatsResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Router      /admin/stats [get]
func StatsHandler(svc *portal.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, notice := svc.DashboardStatsOrZero(c.Request().Context())
		return c.JSON(http.StatusOK, dto.StatsResponse{
			TotalUsers:    stats.TotalUsers,
			TotalRequests: stats.TotalRequests,
			Notice:        notice,
		})
	}
}
