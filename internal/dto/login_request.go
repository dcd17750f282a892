// File: internal/dto/login_request.go
package dto

// swagger:model dto.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"ana@x.com"`
	Password string `json:"password" form:"password" validate:"required" example:"secret1"`
}

// swagger:model dto.AdminLoginRequest
type AdminLoginRequest struct {
	Username string `json:"username" form:"username" validate:"required" example:"admin"`
	Password string `json:"password" form:"password" validate:"required" example:"admin123"`
}
