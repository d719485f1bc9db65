package repository

import (
	"errors"
	"time"

	chatdomain "moodchat-backend/internal/chat/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// roomRepository implements RoomRepository interface
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new instance of roomRepository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{
		db: db,
	}
}

func (r *roomRepository) Create(room *chatdomain.Room) error {
	room.ID = uuid.New().String()
	room.CreatedAt = time.Now()
	room.UpdatedAt = time.Now()
	return r.db.Create(room).Error
}

func (r *roomRepository) FindByID(id string) (*chatdomain.Room, error) {
	var room chatdomain.Room
	err := r.db.Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) ListByUser(userID string) ([]chatdomain.Room, error) {
	var rooms []chatdomain.Room
	err := r.db.
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.user_id = ?", userID).
		Order("rooms.updated_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) AddMember(roomID, userID string) error {
	member := &chatdomain.RoomMember{
		RoomID:   roomID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	// Joining twice is a no-op
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error
}

func (r *roomRepository) IsMember(roomID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&chatdomain.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *roomRepository) MemberIDs(roomID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&chatdomain.RoomMember{}).
		Where("room_id = ?", roomID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
