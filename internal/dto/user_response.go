// File: internal/dto/user_response.go
package dto

import (
	"time"

	"ipv4-bazaar/internal/model"
)

// swagger:model dto.UserResponse
type UserResponse struct {
	ID                 string    `json:"id" example:"0b6f1c1e-3a52-4f7e-9f0a-6f3f0f7e2a11"`
	Name               string    `json:"name" example:"Ana"`
	Email              string    `json:"email" example:"ana@x.com"`
	City               string    `json:"city" example:"Delhi"`
	VerificationStatus string    `json:"verification_status" example:"verified"`
	CreatedAt          time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	UpdatedAt          time.Time `json:"updated_at" example:"2025-05-01T15:04:05Z"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		City:               u.City,
		VerificationStatus: string(u.VerificationStatus),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func NewUserResponses(list []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// swagger:model dto.AdminResponse
type AdminResponse struct {
	ID       string `json:"id" example:"admin-001"`
	Username string `json:"username" example:"admin"`
	Email    string `json:"email" example:"admin@ipv4bazaar.com"`
	Role     string `json:"role" example:"admin"`
	IsActive bool   `json:"is_active" example:"true"`
}

func NewAdminResponse(a model.Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Username: a.Username, Email: a.Email, Role: a.Role, IsActive: a.IsActive}
}

// SessionResponse 目前的登入身分
// swagger:model dto.SessionResponse
type SessionResponse struct {
	Kind  string         `json:"kind" example:"end_user"`
	User  *UserResponse  `json:"user,omitempty"`
	Admin *AdminResponse `json:"admin,omitempty"`
}

func NewSessionResponse(id model.Identity) SessionResponse {
	resp := SessionResponse{Kind: string(model.KindAnonymous)}
	switch {
	case id.IsEndUser():
		u := NewUserResponse(*id.User)
		resp.Kind, resp.User = string(model.KindEndUser), &u
	case id.IsAdmin():
		a := NewAdminResponse(*id.Admin)
		resp.Kind, resp.Admin = string(model.KindAdmin), &a
	}
	return resp
}
