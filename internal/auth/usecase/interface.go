package usecase

import (
	authdomain "moodchat-backend/internal/auth/domain"
	authdto "moodchat-backend/internal/auth/dto"
)

// AuthUsecase defines the identity operations exposed to delivery
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(accessToken string) (*authdomain.User, error)
}

// DeviceRegistry owns the mapping from user to active push tokens
type DeviceRegistry interface {
	RegisterToken(ownerID, token, deviceType string) error
	UnregisterToken(ownerID, token string) error
	ActiveTokens(ownerID string) ([]string, error)
	MarkInvalid(token string) error
	Touch(token string) error
}
