package domain

import "time"

// Device type constants
const (
	DeviceWeb     = "web"
	DeviceAndroid = "android"
	DeviceIOS     = "ios"
)

// MaxTokensPerOwner caps how many device tokens one user keeps registered.
// Registering past the cap evicts the stalest token.
const MaxTokensPerOwner = 5

// DeviceToken represents a push notification device token. Tokens are
// deactivated on confirmed-invalid delivery, never deleted, so enrollment
// history survives for debugging and re-enrollment.
type DeviceToken struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	OwnerID    string    `json:"owner_id" gorm:"index;not null"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"` // Don't expose token in JSON
	DeviceType string    `json:"device_type"`                   // "web", "android" or "ios"
	IsActive   bool      `json:"is_active"`
	LastUsedAt time.Time `json:"last_used_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidDeviceType reports whether t is one of the known device types
func ValidDeviceType(t string) bool {
	switch t {
	case DeviceWeb, DeviceAndroid, DeviceIOS:
		return true
	}
	return false
}
