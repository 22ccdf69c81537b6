package models

import (
	"time"
)

// Player roles within the league
const (
	RoleStaff  = "staff"  // league organizers: may curate winner overrides, purge data
	RoleMember = "member" // regular league player
	RoleGuest  = "guest"  // occasional drop-in, no admin surface
)

// Player is a local snapshot of user data needed for league bookkeeping.
// Owned read-only by this service; populated via sync worker from the
// profile service. The core never writes players.
type Player struct {
	ID             string  `json:"id" gorm:"primaryKey"`
	ExternalUserID string  `json:"external_user_id" gorm:"uniqueIndex;not null"` // profile service UUID
	Name           string  `json:"name" gorm:"index;not null"`
	Email          string  `json:"email,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	Role           string  `json:"role" gorm:"type:varchar(16);default:'member'"` // staff, member, guest
	IsActive       bool    `json:"is_active" gorm:"default:true"`

	LastSeen  *time.Time `json:"last_seen,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// RemotePlayer matches the JSON the profile sync service returns.
// Used only by the sync worker.
type RemotePlayer struct {
	ID         string     `json:"id"`
	ExternalID string     `json:"external_id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	AvatarURL  *string    `json:"profile_picture_url,omitempty"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
