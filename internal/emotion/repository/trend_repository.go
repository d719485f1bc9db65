package repository

import (
	"errors"
	"time"

	emotiondomain "moodchat-backend/internal/emotion/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// trendRepository implements TrendRepository interface
type trendRepository struct {
	db *gorm.DB
}

// NewTrendRepository creates a new instance of trendRepository
func NewTrendRepository(db *gorm.DB) TrendRepository {
	return &trendRepository{
		db: db,
	}
}

func (r *trendRepository) FindBucket(roomID, bucketDate string) (*emotiondomain.RoomEmotionTrend, error) {
	var bucket emotiondomain.RoomEmotionTrend
	err := r.db.Where("room_id = ? AND bucket_date = ?", roomID, bucketDate).First(&bucket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bucket, nil
}

// Save upserts a (room, day) bucket
func (r *trendRepository) Save(bucket *emotiondomain.RoomEmotionTrend) error {
	if bucket.ID == "" {
		bucket.ID = uuid.New().String()
	}
	bucket.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "bucket_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"emotion_counts", "average_sentiment", "sample_count", "updated_at"}),
	}).Create(bucket).Error
}

func (r *trendRepository) ListByRoom(roomID string, limit int) ([]emotiondomain.RoomEmotionTrend, error) {
	if limit <= 0 || limit > 90 {
		limit = 7
	}
	var buckets []emotiondomain.RoomEmotionTrend
	err := r.db.Where("room_id = ?", roomID).Order("bucket_date DESC").Limit(limit).Find(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}
