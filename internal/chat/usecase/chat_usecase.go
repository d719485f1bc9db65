package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	chatdomain "moodchat-backend/internal/chat/domain"
	chatdto "moodchat-backend/internal/chat/dto"
	"moodchat-backend/internal/chat/repository"
	"moodchat-backend/pkg/realtime"
)

// ErrEmptyContent is the only send failure a caller sees once authenticated
// and a room member: empty message content is rejected at the entry point.
var ErrEmptyContent = errors.New("message content must not be empty")

var ErrNotMember = errors.New("not a member of this room")

// chatUsecase implements ChatUsecase interface
type chatUsecase struct {
	roomRepo    repository.RoomRepository
	messageRepo repository.MessageRepository
	broadcaster realtime.Broadcaster
	analysis    *AnalysisWorkerService
}

// NewChatUsecase creates a new instance of chatUsecase
func NewChatUsecase(roomRepo repository.RoomRepository, messageRepo repository.MessageRepository, broadcaster realtime.Broadcaster, analysis *AnalysisWorkerService) ChatUsecase {
	return &chatUsecase{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		broadcaster: broadcaster,
		analysis:    analysis,
	}
}

func (u *chatUsecase) CreateRoom(userID string, req *chatdto.CreateRoomRequest) (*chatdomain.Room, error) {
	room := &chatdomain.Room{
		Name:      req.Name,
		IsGroup:   req.IsGroup,
		CreatedBy: userID,
	}
	if err := u.roomRepo.Create(room); err != nil {
		return nil, err
	}

	if err := u.roomRepo.AddMember(room.ID, userID); err != nil {
		return nil, err
	}
	for _, memberID := range req.MemberIDs {
		if memberID == userID {
			continue
		}
		if err := u.roomRepo.AddMember(room.ID, memberID); err != nil {
			log.Printf("[Chat] Failed to add member %s to room %s: %v", memberID, room.ID, err)
		}
	}
	return room, nil
}

func (u *chatUsecase) ListRooms(userID string) ([]chatdomain.Room, error) {
	return u.roomRepo.ListByUser(userID)
}

func (u *chatUsecase) JoinRoom(roomID, userID string) error {
	room, err := u.roomRepo.FindByID(roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return errors.New("room not found")
	}
	return u.roomRepo.AddMember(roomID, userID)
}

func (u *chatUsecase) ListMessages(userID, roomID, beforeID string, limit int) ([]chatdomain.Message, error) {
	member, err := u.roomRepo.IsMember(roomID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}
	return u.messageRepo.ListByRoom(roomID, beforeID, limit)
}

// SendMessage durably stores a message, broadcasts it to the room, and hands
// the emotion analysis pipeline a detached job. The caller gets its response
// as soon as the message is stored: everything downstream is best-effort and
// invisible to the sender except as absence of a push notification.
func (u *chatUsecase) SendMessage(userID, roomID string, req *chatdto.SendMessageRequest) (*chatdomain.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	member, err := u.roomRepo.IsMember(roomID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	message := &chatdomain.Message{
		RoomID:      roomID,
		SenderID:    userID,
		Content:     req.Content,
		MessageType: req.MessageType,
	}
	if err := u.messageRepo.Create(message); err != nil {
		return nil, err
	}

	// The room sees the message only after it is durably stored. The
	// broadcast itself is fire-and-forget.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.broadcaster.Publish(ctx, roomID, "new_message", message); err != nil {
			log.Printf("[Chat] Failed to broadcast message %s: %v", message.ID, err)
		}
	}()

	if u.analysis != nil {
		u.analysis.Enqueue(AnalysisJob{Message: message})
	}

	return message, nil
}
