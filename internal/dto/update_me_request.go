// File: internal/dto/update_me_request.go
package dto

import "ipv4-bazaar/internal/model"

// UpdateProfileRequest 只更新有帶的欄位
// swagger:model dto.UpdateProfileRequest
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" form:"name" validate:"omitempty,max=120" example:"Ana Sharma"`
	Email *string `json:"email,omitempty" form:"email" validate:"omitempty,email" example:"ana@x.com"`
	City  *string `json:"city,omitempty" form:"city" validate:"omitempty,max=120" example:"Mumbai"`
}

func (r UpdateProfileRequest) Patch() model.UserPatch {
	return model.UserPatch{Name: r.Name, Email: r.Email, City: r.City}
}
