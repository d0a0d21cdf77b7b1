package dto

import (
	"time"

	"parley.chat/api-server/internal/model"
)

type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role,omitempty" binding:"omitempty,oneof=member admin"`
}

type AcceptInviteRequest struct {
	Token string `json:"token" binding:"required"`
}

type InviteResponse struct {
	ID             int64     `json:"id,string"`
	Email          string    `json:"email"`
	OrganizationID int64     `json:"organization_id,string"`
	Role           string    `json:"role"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToInviteResponse(inv *model.OrganizationInvite) *InviteResponse {
	return &InviteResponse{
		ID:             inv.ID,
		Email:          inv.Email,
		OrganizationID: inv.OrganizationID,
		Role:           string(inv.Role),
		ExpiresAt:      inv.ExpiresAt,
		CreatedAt:      inv.CreatedAt,
	}
}
