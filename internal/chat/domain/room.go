package domain

import "time"

type Room struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	IsGroup   bool      `json:"is_group"`
	CreatedBy string    `json:"created_by" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoomMember struct {
	RoomID   string    `json:"room_id" gorm:"primaryKey"`
	UserID   string    `json:"user_id" gorm:"primaryKey;index"`
	JoinedAt time.Time `json:"joined_at"`
}
