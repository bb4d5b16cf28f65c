package models

import (
	"time"

	"github.com/google/uuid"
)

// User field names in the users collection.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldIsActive  = "isActive"
	FieldLastLogin = "lastLogin"
	FieldCreatedAt = "createdAt"
)

// User is a typed view over a users document.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	LastLogin time.Time `json:"last_login,omitzero"`
}

// UserFromDocument builds a typed view over a users document.
func UserFromDocument(doc *Document) *User {
	return &User{
		ID:        doc.ID,
		Username:  doc.Fields.String(FieldUsername),
		Email:     doc.Fields.String(FieldEmail),
		IsActive:  doc.Fields.Bool(FieldIsActive),
		LastLogin: doc.Fields.Time(FieldLastLogin),
	}
}
