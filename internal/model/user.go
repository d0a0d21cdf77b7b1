package model

import "time"

type User struct {
	ID            int64
	Name          string
	Email         string
	Provider      string
	EmailVerified bool
	DefaultOrgID  *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
