package repository

import (
	"errors"
	"time"

	authdomain "moodchat-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// deviceTokenRepository implements DeviceTokenRepository interface
type deviceTokenRepository struct {
	db *gorm.DB
}

// NewDeviceTokenRepository creates a new instance of deviceTokenRepository
func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{
		db: db,
	}
}

// Upsert saves or updates a device token (atomic upsert, dedup by token value)
func (r *deviceTokenRepository) Upsert(token *authdomain.DeviceToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	now := time.Now()
	token.CreatedAt = now
	token.UpdatedAt = now

	// Atomic upsert: INSERT ... ON CONFLICT (token) DO UPDATE
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner_id", "device_type", "is_active", "last_used_at", "updated_at"}),
	}).Create(token).Error
}

func (r *deviceTokenRepository) Save(token *authdomain.DeviceToken) error {
	token.UpdatedAt = time.Now()
	return r.db.Save(token).Error
}

func (r *deviceTokenRepository) FindByToken(token string) (*authdomain.DeviceToken, error) {
	var dt authdomain.DeviceToken
	err := r.db.Where("token = ?", token).First(&dt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dt, nil
}

// ListByOwner returns all tokens for an owner, most recently used first
func (r *deviceTokenRepository) ListByOwner(ownerID string) ([]authdomain.DeviceToken, error) {
	var tokens []authdomain.DeviceToken
	err := r.db.Where("owner_id = ?", ownerID).Order("last_used_at DESC").Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// ActiveByOwner returns only tokens with is_active=true
func (r *deviceTokenRepository) ActiveByOwner(ownerID string) ([]authdomain.DeviceToken, error) {
	var tokens []authdomain.DeviceToken
	err := r.db.Where("owner_id = ? AND is_active = ?", ownerID, true).Order("last_used_at DESC").Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *deviceTokenRepository) Delete(token string) error {
	return r.db.Where("token = ?", token).Delete(&authdomain.DeviceToken{}).Error
}
