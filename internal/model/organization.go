package model

import (
	"strings"
	"time"
)

type Organization struct {
	ID              int64
	OwnerUserID     int64
	Name            string
	Slug            string
	SSOConnectionID *string
	VerifiedDomains []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasVerifiedDomain reports whether domain is on the organization's
// verified list. Comparison is case-insensitive.
func (o *Organization) HasVerifiedDomain(domain string) bool {
	for _, d := range o.VerifiedDomains {
		if strings.EqualFold(d, domain) {
			return true
		}
	}
	return false
}

// SSOEnabled reports whether the organization has an SSO connection
// configured.
func (o *Organization) SSOEnabled() bool {
	return o.SSOConnectionID != nil && *o.SSOConnectionID != ""
}

// UserOrganization pairs an organization with the role the user holds in it.
type UserOrganization struct {
	Organization Organization
	Role         Role
}
