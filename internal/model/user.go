package model

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credential lives under its own key so the user directory can be
// listed without touching password material.
type Credential struct {
	UserID       string    `json:"userId"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EmailIndex maps a normalized email to the owning user id.
type EmailIndex struct {
	UserID string `json:"userId"`
}

// Session is the persisted "current user" of one client session.
type Session struct {
	User       User      `json:"user"`
	SignedInAt time.Time `json:"signedInAt"`
}
