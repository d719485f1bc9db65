package repository

import authdomain "moodchat-backend/internal/auth/domain"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID string) error
}

// DeviceTokenRepository defines the interface for device token persistence.
// Eviction and activation policy live in the usecase layer; this is plain
// storage access.
type DeviceTokenRepository interface {
	Upsert(token *authdomain.DeviceToken) error
	Save(token *authdomain.DeviceToken) error
	FindByToken(token string) (*authdomain.DeviceToken, error)
	ListByOwner(ownerID string) ([]authdomain.DeviceToken, error)
	ActiveByOwner(ownerID string) ([]authdomain.DeviceToken, error)
	Delete(token string) error
}
