// Package models contains data structures for the MakerNet API wire format.
package models

import "time"

// User represents a MakerNet account as returned by the API.
type User struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	IsAdmin     bool      `json:"is_admin"`
	IsPremium   bool      `json:"is_premium"`
	InsertedAt  time.Time `json:"inserted_at"`
}

// AdminUser is the user row shape returned by the admin listing endpoints.
// Deletion is irreversible; the client removes the row locally and decrements
// the listing total by one.
type AdminUser struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	IsVerified  bool      `json:"is_verified"`
	InsertedAt  time.Time `json:"inserted_at"`
}
