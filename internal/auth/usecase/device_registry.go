package usecase

import (
	"errors"
	"log"
	"time"

	authdomain "moodchat-backend/internal/auth/domain"
	"moodchat-backend/internal/auth/repository"
)

// deviceRegistry implements DeviceRegistry on top of the token repository.
// Capacity and activation policy live here so they are testable without a
// database.
type deviceRegistry struct {
	tokenRepo repository.DeviceTokenRepository
}

// NewDeviceRegistry creates a new instance of deviceRegistry
func NewDeviceRegistry(tokenRepo repository.DeviceTokenRepository) DeviceRegistry {
	return &deviceRegistry{
		tokenRepo: tokenRepo,
	}
}

// RegisterToken upserts a token for an owner. Re-registering an existing
// token value refreshes last_used_at and reactivates it without creating a
// duplicate. Past the per-owner capacity the stalest token is evicted.
func (d *deviceRegistry) RegisterToken(ownerID, token, deviceType string) error {
	if token == "" {
		return errors.New("token must not be empty")
	}
	if !authdomain.ValidDeviceType(deviceType) {
		return errors.New("invalid device type")
	}

	dt := &authdomain.DeviceToken{
		OwnerID:    ownerID,
		Token:      token,
		DeviceType: deviceType,
		IsActive:   true,
		LastUsedAt: time.Now(),
	}
	if err := d.tokenRepo.Upsert(dt); err != nil {
		return err
	}

	// Evict oldest beyond capacity. ListByOwner orders by last_used_at
	// descending, so everything past the cap is the stalest.
	tokens, err := d.tokenRepo.ListByOwner(ownerID)
	if err != nil {
		return err
	}
	for i := authdomain.MaxTokensPerOwner; i < len(tokens); i++ {
		if err := d.tokenRepo.Delete(tokens[i].Token); err != nil {
			log.Printf("[DeviceRegistry] Failed to evict token for owner %s: %v", ownerID, err)
		}
	}
	return nil
}

// UnregisterToken removes a token, but only if it belongs to the caller
func (d *deviceRegistry) UnregisterToken(ownerID, token string) error {
	dt, err := d.tokenRepo.FindByToken(token)
	if err != nil {
		return err
	}
	if dt == nil {
		return nil
	}
	if dt.OwnerID != ownerID {
		return errors.New("token does not belong to this user")
	}
	return d.tokenRepo.Delete(token)
}

// ActiveTokens returns the active token values for an owner
func (d *deviceRegistry) ActiveTokens(ownerID string) ([]string, error) {
	tokens, err := d.tokenRepo.ActiveByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(tokens))
	for _, t := range tokens {
		values = append(values, t.Token)
	}
	return values, nil
}

// MarkInvalid deactivates a token after a confirmed-invalid dispatch outcome.
// The row is kept for debugging and re-enrollment.
func (d *deviceRegistry) MarkInvalid(token string) error {
	dt, err := d.tokenRepo.FindByToken(token)
	if err != nil {
		return err
	}
	if dt == nil {
		return nil
	}
	if !dt.IsActive {
		return nil
	}
	dt.IsActive = false
	return d.tokenRepo.Save(dt)
}

// Touch records a confirmed successful delivery: bumps last_used_at and
// reactivates the token.
func (d *deviceRegistry) Touch(token string) error {
	dt, err := d.tokenRepo.FindByToken(token)
	if err != nil {
		return err
	}
	if dt == nil {
		return nil
	}
	dt.IsActive = true
	dt.LastUsedAt = time.Now()
	return d.tokenRepo.Save(dt)
}
