package model

import (
	"time"
)

// Roles carried by identity tokens
const (
	RoleStudent  = "student"
	RoleLandlord = "landlord"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User mirrors an identity from the identity provider. Credentials live there,
// this row only anchors ownership and token revocation.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	Role         string    `gorm:"type:varchar(20);default:'student'" json:"role"`
	TokenVersion int       `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens

	// Relationships
	Accommodations []Accommodation     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Bursaries      []Bursary           `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsOperator reports whether the user may act on any listing
func (u *User) IsOperator() bool {
	return u.Role == RoleAdmin || u.Role == "super_admin"
}
