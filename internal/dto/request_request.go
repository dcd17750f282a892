package dto

import "ipv4-bazaar/internal/model"

// swagger:model dto.CreateIPRequestRequest
type CreateIPRequestRequest struct {
	Name      string `json:"name" form:"name" validate:"required,max=200" example:"Branch office"`
	IPRequest string `json:"ip_request" form:"ip_request" validate:"required,max=4000" example:"Need a /24 for a new branch"`
	City      string `json:"city" form:"city" validate:"required,max=120" example:"Delhi"`
	Urgency   string `json:"urgency" form:"urgency" validate:"required,oneof=Low Medium High" example:"Medium"`
}

func (r CreateIPRequestRequest) NewRequest() model.NewRequest {
	return model.NewRequest{
		Name:        r.Name,
		Description: r.IPRequest,
		City:        r.City,
		Urgency:     model.Urgency(r.Urgency),
	}
}

// swagger:model dto.UpdateRequestStatusRequest
type UpdateRequestStatusRequest struct {
	Status     string  `json:"status" form:"status" validate:"required,oneof=pending under_review approved rejected" example:"under_review"`
	AdminNotes *string `json:"admin_notes,omitempty" form:"admin_notes" validate:"omitempty,max=4000" example:"Checking RIR records"`
}
