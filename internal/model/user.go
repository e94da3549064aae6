package model

import "time"

type User struct {
	ID                    int64      `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	RefreshToken          *string    `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	Deleted               bool       `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
