// File: internal/handler/auth/signup.go
package auth

import (
	"net/http"

	"ipv4-bazaar/internal/dto"
	"ipv4-bazaar/internal/handler"
	"ipv4-bazaar/internal/middleware"

	"github.com/labstack/echo/v4"
)

// SignupHandler 註冊新帳號；不會登入，需先完成 Email 驗證
// @Summary     註冊
// @Description 建立帳號並寄出驗證信，回傳尚未驗證的使用者資料
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.SignupRequest true "註冊資料"
// @Success     201 {object} dto.UserResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     409 {object} dto.HTTPError
// @Failure     429 {object} dto.HTTPError
// @Failure     503 {object} dto.HTTPError
// @Router      /auth/signup [post]
func SignupHandler(rec Recorder) echo.HandlerFunc {
	rec = orNop(rec)
	return func(c echo.Context) error {
		var req dto.SignupRequest
		if ok, err := handler.Bind(c, &req); !ok {
			return err
		}
		m, ok := middleware.MachineFrom(c)
		if !ok {
			return handler.NoSession(c)
		}

		user, err := m.Signup(c.Request().Context(), req.Name, req.Email, req.City, req.Password)
		if err != nil {
			rec.RecordSignup(false)
			return handler.Error(c, err)
		}
		rec.RecordSignup(true)
		return c.JSON(http.StatusCreated, dto.NewUserResponse(*user))
	}
}
