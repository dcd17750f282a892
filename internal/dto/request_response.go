package dto

import (
	"time"

	"ipv4-bazaar/internal/model"
)

// swagger:model dto.IPRequestResponse
type IPRequestResponse struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	Name       string        `json:"name" example:"Branch office"`
	IPRequest  string        `json:"ip_request" example:"Need a /24 for a new branch"`
	City       string        `json:"city" example:"Delhi"`
	Urgency    string        `json:"urgency" example:"Medium"`
	Status     string        `json:"status" example:"pending"`
	AdminNotes *string       `json:"admin_notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	User       *UserResponse `json:"user,omitempty"`
}

func NewIPRequestResponse(r model.IPRequest) IPRequestResponse {
	resp := IPRequestResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Name:       r.Name,
		IPRequest:  r.Description,
		City:       r.City,
		Urgency:    string(r.Urgency),
		Status:     string(r.Status),
		AdminNotes: r.AdminNotes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.User != nil {
		u := NewUserResponse(*r.User)
		resp.User = &u
	}
	return resp
}

func NewIPRequestResponses(list []model.IPRequest) []IPRequestResponse {
	out := make([]IPRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, NewIPRequestResponse(r))
	}
	return out
}

// StatsResponse 後台統計；Notice 非空表示統計暫時無法取得
// swagger:model dto.StatsResponse
type StatsResponse struct {
	TotalUsers    int64  `json:"totalUsers" example:"42"`
	TotalRequests int64  `json:"totalRequests" example:"17"`
	Notice        string `json:"notice,omitempty"`
}

// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}
