// File: internal/handler/content/content.go
package content

import (
	"net/http"

	"ipv4-bazaar/internal/content"
	"ipv4-bazaar/internal/dto"

	"github.com/labstack/echo/v4"
)

// ListHandler 行銷頁面的固定內容
// @Summary     網站內容
// @Description kind 可為 services、process、team、statistics、testimonials、milestones
// @Tags        content
// @Produce     json
// @Param       kind path string true "內容種類"
// @Success     200 {array}  object
// @Failure     404 {object} dto.HTTPError
// @Router      /content/{kind} [get]
func ListHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		items, ok := content.Lookup(content.Kind(c.Param("kind")))
		if !ok {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "unknown content kind"})
		}
		return c.JSON(http.StatusOK, items)
	}
}
