package models

import (
	"time"
)

// Contact is a user's reusable seller contact profile. One row per user,
// persisted independently of any listing.
type Contact struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	Phone         string     `json:"phone"`
	BusinessType  string     `json:"business_type"`
	SocialNetwork string     `json:"social_network,omitempty"`
	Email         string     `json:"email"`
	Address       string     `json:"address,omitempty"`
	Website       string     `json:"website,omitempty"`
	Languages     []string   `json:"languages"`
	Country       string     `json:"country"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
