package dto

import (
	"time"

	"parley.chat/api-server/internal/model"
)

type CreateOrganizationRequest struct {
	Name    string              `json:"name" binding:"required,min=1,max=255"`
	Slug    *string             `json:"slug,omitempty" binding:"omitempty,min=1,max=255"`
	Invites []InviteSeedRequest `json:"invites,omitempty" binding:"omitempty,dive"`
}

// InviteSeedRequest is an invite issued as part of organization creation.
type InviteSeedRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role,omitempty" binding:"omitempty,oneof=member admin"`
}

type UpdateOrganizationRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	SSOConnectionID *string  `json:"sso_connection_id,omitempty"`
	ClearSSO        bool     `json:"clear_sso,omitempty"`
	VerifiedDomains []string `json:"verified_domains,omitempty"`
}

type OrganizationResponse struct {
	ID              int64     `json:"id,string"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	OwnerUserID     int64     `json:"owner_user_id,string"`
	SSOEnabled      bool      `json:"sso_enabled"`
	VerifiedDomains []string  `json:"verified_domains"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToOrganizationResponse(org *model.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:              org.ID,
		Name:            org.Name,
		Slug:            org.Slug,
		OwnerUserID:     org.OwnerUserID,
		SSOEnabled:      org.SSOEnabled(),
		VerifiedDomains: org.VerifiedDomains,
		CreatedAt:       org.CreatedAt,
		UpdatedAt:       org.UpdatedAt,
	}
}

type UserOrganizationResponse struct {
	Organization *OrganizationResponse `json:"organization"`
	Role         string                `json:"role"`
}

func ToUserOrganizationResponses(orgs []model.UserOrganization) []UserOrganizationResponse {
	result := make([]UserOrganizationResponse, len(orgs))
	for i, uo := range orgs {
		org := uo.Organization
		result[i] = UserOrganizationResponse{
			Organization: ToOrganizationResponse(&org),
			Role:         string(uo.Role),
		}
	}
	return result
}
