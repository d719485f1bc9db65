package repository

import (
	"errors"
	"time"

	emotiondomain "moodchat-backend/internal/emotion/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of profileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) FindByUser(userID string) (*emotiondomain.UserEmotionProfile, error) {
	var profile emotiondomain.UserEmotionProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Save upserts the one-row-per-user profile
func (r *profileRepository) Save(profile *emotiondomain.UserEmotionProfile) error {
	profile.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"dominant_emotion", "average_sentiment", "sample_count", "recent_history", "updated_at"}),
	}).Create(profile).Error
}
