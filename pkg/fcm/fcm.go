package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Outcome classifies a per-token delivery result so callers can decide
// whether a token should be pruned or the failure just shrugged off.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeInvalidToken     Outcome = "invalid_token"
	OutcomeTransientFailure Outcome = "transient_failure"
)

// TokenResult is the delivery outcome for a single device token
type TokenResult struct {
	Token   string
	Outcome Outcome
	Err     error
}

// SendResult aggregates a multicast send. Partial failure is not an error:
// failures are enumerated for caller-driven cleanup.
type SendResult struct {
	SuccessCount int
	FailureCount int
	Results      []TokenResult
}

// NotificationData contains the data to send in a push notification
type NotificationData struct {
	Title string
	Body  string
	Data  map[string]string // Custom data payload
}

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client using the provided credentials file
func NewClient(credentialsFile string) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// SendToToken sends a push notification to a single device token
func (c *Client) SendToToken(ctx context.Context, token string, notification NotificationData) TokenResult {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: notification.Title,
				Body:  notification.Body,
				Icon:  "/icon-192.svg",
			},
		},
	}

	_, err := c.messagingClient.Send(ctx, message)
	return TokenResult{Token: token, Outcome: classifyError(err), Err: err}
}

// SendToTokens sends a push notification to multiple device tokens and
// reports the outcome per token. It never retries.
func (c *Client) SendToTokens(ctx context.Context, tokens []string, notification NotificationData) (*SendResult, error) {
	if len(tokens) == 0 {
		return &SendResult{}, nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: notification.Title,
				Body:  notification.Body,
				Icon:  "/icon-192.svg",
			},
		},
	}

	response, err := c.messagingClient.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to send FCM multicast message: %w", err)
	}

	result := &SendResult{
		SuccessCount: response.SuccessCount,
		FailureCount: response.FailureCount,
	}
	for i, resp := range response.Responses {
		if resp.Success {
			result.Results = append(result.Results, TokenResult{Token: tokens[i], Outcome: OutcomeSuccess})
			continue
		}
		tr := TokenResult{Token: tokens[i], Outcome: classifyError(resp.Error), Err: resp.Error}
		result.Results = append(result.Results, tr)
		log.Printf("[FCM] Failed to send to token %s...: %v (%s)", shortToken(tokens[i]), resp.Error, tr.Outcome)
	}

	log.Printf("[FCM] Multicast sent: %d success, %d failures", response.SuccessCount, response.FailureCount)
	return result, nil
}

// classifyError maps an FCM error onto the outcome taxonomy. Unregistered
// and malformed tokens are confirmed-invalid; everything else is transient.
func classifyError(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	if messaging.IsRegistrationTokenNotRegistered(err) || messaging.IsInvalidArgument(err) {
		return OutcomeInvalidToken
	}
	return OutcomeTransientFailure
}

func shortToken(token string) string {
	if len(token) > 20 {
		return token[:20]
	}
	return token
}
