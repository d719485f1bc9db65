package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	authdomain "moodchat-backend/internal/auth/domain"
	authusecase "moodchat-backend/internal/auth/usecase"
	chatdomain "moodchat-backend/internal/chat/domain"
	emotionusecase "moodchat-backend/internal/emotion/usecase"
	"moodchat-backend/pkg/classifier"
	"moodchat-backend/pkg/fcm"
)

// DefaultSupportCooldown bounds how often one user can receive a support
// alert, on top of the durable SupportTriggered flag on the sample.
const DefaultSupportCooldown = 15 * time.Minute

// messageBodyLimit truncates new-message notification bodies
const messageBodyLimit = 100

// PushClient is the push provider collaborator
type PushClient interface {
	SendToTokens(ctx context.Context, tokens []string, notification fcm.NotificationData) (*fcm.SendResult, error)
}

// ErrNoTokens is returned by Send when called with an empty token set;
// callers are expected to guard with the empty-set check first.
var ErrNoTokens = errors.New("token set must not be empty")

// Service is the notification dispatcher. It fans a notification out to a
// set of device tokens, classifies per-token outcomes, and feeds failures
// back into the device registry. It never retries: losing a push is an
// accepted degradation, never a reason to fail message delivery.
type Service struct {
	push     PushClient
	registry authusecase.DeviceRegistry
	cooldown time.Duration

	// in-memory spam guard; per-process only, the durable guard is the
	// SupportTriggered flag on the sample
	mu          sync.Mutex
	lastSupport map[string]time.Time
}

// NewService creates a notification dispatcher. cooldown <= 0 uses the default.
func NewService(push PushClient, registry authusecase.DeviceRegistry, cooldown time.Duration) *Service {
	if cooldown <= 0 {
		cooldown = DefaultSupportCooldown
	}
	return &Service{
		push:        push,
		registry:    registry,
		cooldown:    cooldown,
		lastSupport: make(map[string]time.Time),
	}
}

// Send dispatches one notification to a non-empty token set and reports the
// per-token outcomes. Partial failure is a success at this level; confirmed
// invalid tokens are routed to the registry for pruning and successful
// deliveries refresh their token.
func (s *Service) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (*fcm.SendResult, error) {
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}

	result, err := s.push.SendToTokens(ctx, tokens, fcm.NotificationData{
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		return nil, err
	}

	for _, tr := range result.Results {
		switch tr.Outcome {
		case fcm.OutcomeSuccess:
			if err := s.registry.Touch(tr.Token); err != nil {
				log.Printf("[Notification] Failed to touch token: %v", err)
			}
		case fcm.OutcomeInvalidToken:
			if err := s.registry.MarkInvalid(tr.Token); err != nil {
				log.Printf("[Notification] Failed to deactivate invalid token: %v", err)
			}
		case fcm.OutcomeTransientFailure:
			// transient failures are logged by the push client and dropped
		}
	}

	return result, nil
}

// SendSupportAlert fans a support notification out to all active tokens of
// the author. It returns whether a dispatch was actually attempted: false
// when the author has no active tokens or is inside the cooldown window.
func (s *Service) SendSupportAlert(ctx context.Context, authorID string, payload *emotionusecase.SupportPayload) (bool, error) {
	if s.inCooldown(authorID) {
		log.Printf("[Notification] Support alert for user %s suppressed by cooldown", authorID)
		return false, nil
	}

	tokens, err := s.registry.ActiveTokens(authorID)
	if err != nil {
		return false, fmt.Errorf("failed to load active tokens: %w", err)
	}
	if len(tokens) == 0 {
		log.Printf("[Notification] User %s has no active tokens, skipping support alert", authorID)
		return false, nil
	}

	s.markSupport(authorID)
	result, err := s.Send(ctx, tokens, payload.Title, payload.Body, payload.Data)
	if err != nil {
		return true, err
	}
	log.Printf("[Notification] Support alert for user %s: %d success, %d failures", authorID, result.SuccessCount, result.FailureCount)
	return true, nil
}

// SendMessageAlert fans a new-message notification out to the active tokens
// of the other room participants.
func (s *Service) SendMessageAlert(ctx context.Context, sender *authdomain.User, room *chatdomain.Room, message *chatdomain.Message, recipientIDs []string, result *classifier.Result) error {
	var tokens []string
	for _, recipientID := range recipientIDs {
		active, err := s.registry.ActiveTokens(recipientID)
		if err != nil {
			log.Printf("[Notification] Failed to load tokens for user %s: %v", recipientID, err)
			continue
		}
		tokens = append(tokens, active...)
	}
	if len(tokens) == 0 {
		return nil
	}

	title := sender.DisplayName
	if room.IsGroup {
		title = fmt.Sprintf("%s in %s", sender.DisplayName, room.Name)
	}

	data := map[string]string{
		"type":        "new_message",
		"messageId":   message.ID,
		"chatRoomId":  message.RoomID,
		"senderId":    message.SenderID,
		"messageType": message.MessageType,
		"timestamp":   message.CreatedAt.UTC().Format(time.RFC3339),
	}
	if result != nil {
		data["emotion"] = string(result.Label)
		data["sentiment"] = fmt.Sprintf("%.2f", result.Score)
	}

	sendResult, err := s.Send(ctx, tokens, title, TruncateBody(message.Content), data)
	if err != nil {
		return err
	}
	log.Printf("[Notification] Message alert for message %s: %d success, %d failures", message.ID, sendResult.SuccessCount, sendResult.FailureCount)
	return nil
}

// TruncateBody limits a notification body to 100 characters, ellipsis
// terminated
func TruncateBody(content string) string {
	runes := []rune(content)
	if len(runes) <= messageBodyLimit {
		return content
	}
	return string(runes[:messageBodyLimit-3]) + "..."
}

func (s *Service) inCooldown(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastSupport[userID]
	return ok && time.Since(last) < s.cooldown
}

func (s *Service) markSupport(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSupport[userID] = time.Now()
}
