package model

import "time"

type Membership struct {
	ID             int64
	UserID         int64
	OrganizationID int64
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
