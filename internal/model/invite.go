package model

import "time"

// OrganizationInvite is a pending offer of membership. Only the SHA-256
// hash of the invite token is ever stored; the plaintext token exists
// solely in the link sent to the invitee.
type OrganizationInvite struct {
	ID             int64
	Email          string
	OrganizationID int64
	InviterID      int64
	Role           Role
	TokenHash      string
	ExpiresAt      time.Time
	AcceptedAt     *time.Time
	CreatedAt      time.Time
}

// IsUsable reports whether the invite can still be accepted at t.
func (i *OrganizationInvite) IsUsable(t time.Time) bool {
	return i.AcceptedAt == nil && t.Before(i.ExpiresAt)
}
