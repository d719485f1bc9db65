package usecase

import (
	"context"

	authdomain "moodchat-backend/internal/auth/domain"
	chatdomain "moodchat-backend/internal/chat/domain"
	chatdto "moodchat-backend/internal/chat/dto"
	emotiondomain "moodchat-backend/internal/emotion/domain"
	emotionusecase "moodchat-backend/internal/emotion/usecase"
	"moodchat-backend/pkg/classifier"
)

// ChatUsecase defines the chat operations exposed to delivery
type ChatUsecase interface {
	CreateRoom(userID string, req *chatdto.CreateRoomRequest) (*chatdomain.Room, error)
	ListRooms(userID string) ([]chatdomain.Room, error)
	JoinRoom(roomID, userID string) error
	ListMessages(userID, roomID, beforeID string, limit int) ([]chatdomain.Message, error)
	SendMessage(userID, roomID string, req *chatdto.SendMessageRequest) (*chatdomain.Message, error)
}

// SampleRecorder persists emotion samples and their one-shot updates
type SampleRecorder interface {
	Record(authorID, roomID, text string, result *classifier.Result) (*emotiondomain.EmotionSample, error)
	LinkMessage(sampleID, messageID string) error
	MarkSupportTriggered(sampleID string) error
}

// Aggregator rolls samples into user and room trend statistics
type Aggregator interface {
	ApplyToProfile(userID string, sample *emotiondomain.EmotionSample) error
	ApplyToRoom(roomID string, sample *emotiondomain.EmotionSample) error
}

// SupportPolicy decides whether a sample warrants a support alert
type SupportPolicy interface {
	Evaluate(sample *emotiondomain.EmotionSample, displayName string) (bool, *emotionusecase.SupportPayload)
}

// Notifier fans notifications out to device tokens. SendSupportAlert reports
// whether a dispatch was actually attempted (false when the author has no
// active tokens).
type Notifier interface {
	SendSupportAlert(ctx context.Context, authorID string, payload *emotionusecase.SupportPayload) (bool, error)
	SendMessageAlert(ctx context.Context, sender *authdomain.User, room *chatdomain.Room, message *chatdomain.Message, recipientIDs []string, result *classifier.Result) error
}
