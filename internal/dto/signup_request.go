package dto

// swagger:model dto.SignupRequest
type SignupRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=120" example:"Ana"`
	Email    string `json:"email" form:"email" validate:"required,email" example:"ana@x.com"`
	City     string `json:"city" form:"city" validate:"required,max=120" example:"Delhi"`
	Password string `json:"password" form:"password" validate:"required,min=6" example:"secret1"`
}

// swagger:model dto.ResendVerificationRequest
type ResendVerificationRequest struct {
	Email string `json:"email" form:"email" validate:"required,email" example:"ana@x.com"`
}
