package repository

import (
	"errors"
	"time"

	emotiondomain "moodchat-backend/internal/emotion/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sampleRepository implements SampleRepository interface
type sampleRepository struct {
	db *gorm.DB
}

// NewSampleRepository creates a new instance of sampleRepository
func NewSampleRepository(db *gorm.DB) SampleRepository {
	return &sampleRepository{
		db: db,
	}
}

func (r *sampleRepository) Create(sample *emotiondomain.EmotionSample) error {
	if sample.ID == "" {
		sample.ID = uuid.New().String()
	}
	sample.CreatedAt = time.Now()
	return r.db.Create(sample).Error
}

// LinkMessage sets the message id on a sample, once. A second link attempt
// is a no-op because the WHERE clause only matches unlinked rows.
func (r *sampleRepository) LinkMessage(sampleID, messageID string) error {
	return r.db.Model(&emotiondomain.EmotionSample{}).
		Where("id = ? AND message_id IS NULL", sampleID).
		Update("message_id", messageID).Error
}

// MarkSupportTriggered flips the support flag false->true. The flag never
// resets, so the WHERE clause guards against a rewrite.
func (r *sampleRepository) MarkSupportTriggered(sampleID string) error {
	return r.db.Model(&emotiondomain.EmotionSample{}).
		Where("id = ? AND support_triggered = ?", sampleID, false).
		Update("support_triggered", true).Error
}

func (r *sampleRepository) FindByID(id string) (*emotiondomain.EmotionSample, error) {
	var sample emotiondomain.EmotionSample
	err := r.db.Where("id = ?", id).First(&sample).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sample, nil
}

func (r *sampleRepository) ListByAuthor(authorID string, limit int) ([]emotiondomain.EmotionSample, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var samples []emotiondomain.EmotionSample
	err := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Limit(limit).Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}
