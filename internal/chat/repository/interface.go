package repository

import chatdomain "moodchat-backend/internal/chat/domain"

// RoomRepository defines the interface for room persistence
type RoomRepository interface {
	Create(room *chatdomain.Room) error
	FindByID(id string) (*chatdomain.Room, error)
	ListByUser(userID string) ([]chatdomain.Room, error)
	AddMember(roomID, userID string) error
	IsMember(roomID, userID string) (bool, error)
	MemberIDs(roomID string) ([]string, error)
}

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	Create(message *chatdomain.Message) error
	FindByID(id string) (*chatdomain.Message, error)
	ListByRoom(roomID, beforeID string, limit int) ([]chatdomain.Message, error)
	StampEmotion(messageID, emotion string, sentiment float64) error
	SoftDelete(messageID string) error
}
