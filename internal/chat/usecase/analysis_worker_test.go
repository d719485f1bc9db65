package usecase_test

import (
	"context"
	"errors"
	"testing"

	authdomain "moodchat-backend/internal/auth/domain"
	chatdomain "moodchat-backend/internal/chat/domain"
	"moodchat-backend/internal/chat/usecase"
	emotiondomain "moodchat-backend/internal/emotion/domain"
	emotionusecase "moodchat-backend/internal/emotion/usecase"
	"moodchat-backend/pkg/classifier"

	"github.com/stretchr/testify/mock"
)

// stubClassifier returns a fixed result for any non-empty input
type stubClassifier struct {
	result *classifier.Result
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (*classifier.Result, error) {
	if text == "" {
		return nil, classifier.ErrEmptyText
	}
	return s.result, nil
}

// Mock recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(authorID, roomID, text string, result *classifier.Result) (*emotiondomain.EmotionSample, error) {
	args := m.Called(authorID, roomID, text, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*emotiondomain.EmotionSample), args.Error(1)
}

func (m *MockRecorder) LinkMessage(sampleID, messageID string) error {
	args := m.Called(sampleID, messageID)
	return args.Error(0)
}

func (m *MockRecorder) MarkSupportTriggered(sampleID string) error {
	args := m.Called(sampleID)
	return args.Error(0)
}

// Mock aggregator
type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) ApplyToProfile(userID string, sample *emotiondomain.EmotionSample) error {
	args := m.Called(userID, sample)
	return args.Error(0)
}

func (m *MockAggregator) ApplyToRoom(roomID string, sample *emotiondomain.EmotionSample) error {
	args := m.Called(roomID, sample)
	return args.Error(0)
}

// Mock notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendSupportAlert(ctx context.Context, authorID string, payload *emotionusecase.SupportPayload) (bool, error) {
	args := m.Called(ctx, authorID, payload)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotifier) SendMessageAlert(ctx context.Context, sender *authdomain.User, room *chatdomain.Room, message *chatdomain.Message, recipientIDs []string, result *classifier.Result) error {
	args := m.Called(ctx, sender, room, message, recipientIDs, result)
	return args.Error(0)
}

// Mock user repository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *authdomain.User) error { return nil }

func (m *MockUserRepo) FindByEmail(email string) (*authdomain.User, error) { return nil, nil }

func (m *MockUserRepo) FindByID(id string) (*authdomain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authdomain.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *authdomain.User) error { return nil }

func (m *MockUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error { return nil }

func (m *MockUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return nil, nil
}

func (m *MockUserRepo) DeleteRefreshToken(token string) error { return nil }

func (m *MockUserRepo) DeleteRefreshTokensByUser(userID string) error { return nil }

// Mock room repository
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) Create(room *chatdomain.Room) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockRoomRepo) FindByID(id string) (*chatdomain.Room, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chatdomain.Room), args.Error(1)
}

func (m *MockRoomRepo) ListByUser(userID string) ([]chatdomain.Room, error) { return nil, nil }

func (m *MockRoomRepo) AddMember(roomID, userID string) error {
	args := m.Called(roomID, userID)
	return args.Error(0)
}

func (m *MockRoomRepo) IsMember(roomID, userID string) (bool, error) {
	args := m.Called(roomID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomRepo) MemberIDs(roomID string) ([]string, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Mock message repository
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(message *chatdomain.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepo) FindByID(id string) (*chatdomain.Message, error) { return nil, nil }

func (m *MockMessageRepo) ListByRoom(roomID, beforeID string, limit int) ([]chatdomain.Message, error) {
	return nil, nil
}

func (m *MockMessageRepo) StampEmotion(messageID, emotion string, sentiment float64) error {
	args := m.Called(messageID, emotion, sentiment)
	return args.Error(0)
}

func (m *MockMessageRepo) SoftDelete(messageID string) error { return nil }

type pipelineFixture struct {
	recorder    *MockRecorder
	aggregator  *MockAggregator
	notifier    *MockNotifier
	userRepo    *MockUserRepo
	roomRepo    *MockRoomRepo
	messageRepo *MockMessageRepo
	worker      *usecase.AnalysisWorkerService
}

// newPipelineFixture wires a single-worker pipeline around a fixed
// classification result. Stop() drains the queue and waits for the worker,
// so assertions after it are deterministic.
func newPipelineFixture(result *classifier.Result) *pipelineFixture {
	f := &pipelineFixture{
		recorder:    new(MockRecorder),
		aggregator:  new(MockAggregator),
		notifier:    new(MockNotifier),
		userRepo:    new(MockUserRepo),
		roomRepo:    new(MockRoomRepo),
		messageRepo: new(MockMessageRepo),
	}
	f.worker = usecase.NewAnalysisWorkerService(
		&stubClassifier{result: result},
		f.recorder,
		f.aggregator,
		emotionusecase.NewTriggerPolicy(),
		f.notifier,
		f.userRepo,
		f.roomRepo,
		f.messageRepo,
		1,
	)
	return f
}

func (f *pipelineFixture) run(msg *chatdomain.Message) {
	f.worker.Start()
	f.worker.Enqueue(usecase.AnalysisJob{Message: msg})
	f.worker.Stop()
}

func crisisResult() *classifier.Result {
	return &classifier.Result{
		Label:      classifier.LabelSadness,
		Score:      -0.85,
		Magnitude:  1.2,
		Confidence: 1.0,
		Source:     classifier.SourceFallback,
	}
}

func neutralResult() *classifier.Result {
	return &classifier.Result{
		Label:      classifier.LabelNeutral,
		Score:      0.1,
		Magnitude:  0.2,
		Confidence: 0.02,
		Source:     classifier.SourcePrimary,
	}
}

func sampleFor(msg *chatdomain.Message, result *classifier.Result) *emotiondomain.EmotionSample {
	return &emotiondomain.EmotionSample{
		ID:               "sample-1",
		AuthorID:         msg.SenderID,
		RoomID:           msg.RoomID,
		Text:             msg.Content,
		EmotionLabel:     result.Label,
		SentimentScore:   result.Score,
		Magnitude:        result.Magnitude,
		Confidence:       result.Confidence,
		ClassifierSource: result.Source,
	}
}

func testMessage() *chatdomain.Message {
	return &chatdomain.Message{
		ID:          "msg-1",
		RoomID:      "room-1",
		SenderID:    "user-1",
		Content:     "I feel completely hopeless",
		MessageType: chatdomain.MessageTypeText,
	}
}

func TestPipeline_CrisisMessageTriggersSupportAndMessageAlert(t *testing.T) {
	msg := testMessage()
	result := crisisResult()
	sample := sampleFor(msg, result)
	f := newPipelineFixture(result)

	f.recorder.On("Record", "user-1", "room-1", msg.Content, result).Return(sample, nil)
	f.recorder.On("LinkMessage", "sample-1", "msg-1").Return(nil)
	f.recorder.On("MarkSupportTriggered", "sample-1").Return(nil)
	f.messageRepo.On("StampEmotion", "msg-1", "sadness", -0.85).Return(nil)
	f.aggregator.On("ApplyToProfile", "user-1", sample).Return(nil)
	f.aggregator.On("ApplyToRoom", "room-1", sample).Return(nil)
	f.userRepo.On("FindByID", "user-1").Return(&authdomain.User{ID: "user-1", DisplayName: "Alex"}, nil)
	f.roomRepo.On("FindByID", "room-1").Return(&chatdomain.Room{ID: "room-1", Name: "general", IsGroup: true}, nil)
	f.roomRepo.On("MemberIDs", "room-1").Return([]string{"user-1", "user-2"}, nil)
	f.notifier.On("SendSupportAlert", mock.Anything, "user-1", mock.MatchedBy(func(p *emotionusecase.SupportPayload) bool {
		return p.Title == emotionusecase.SupportTitle && p.Data["type"] == "emotional_support"
	})).Return(true, nil)
	f.notifier.On("SendMessageAlert", mock.Anything, mock.Anything, mock.Anything, msg, []string{"user-2"}, result).Return(nil)

	f.run(msg)

	f.recorder.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.messageRepo.AssertExpectations(t)
	f.aggregator.AssertExpectations(t)
}

func TestPipeline_NeutralMessageOnlySendsMessageAlert(t *testing.T) {
	msg := testMessage()
	msg.Content = "hey, how are you?"
	result := neutralResult()
	sample := sampleFor(msg, result)
	f := newPipelineFixture(result)

	f.recorder.On("Record", "user-1", "room-1", msg.Content, result).Return(sample, nil)
	f.recorder.On("LinkMessage", "sample-1", "msg-1").Return(nil)
	f.messageRepo.On("StampEmotion", "msg-1", "neutral", 0.1).Return(nil)
	f.aggregator.On("ApplyToProfile", mock.Anything, mock.Anything).Return(nil)
	f.aggregator.On("ApplyToRoom", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("FindByID", "user-1").Return(&authdomain.User{ID: "user-1", DisplayName: "Alex"}, nil)
	f.roomRepo.On("FindByID", "room-1").Return(&chatdomain.Room{ID: "room-1"}, nil)
	f.roomRepo.On("MemberIDs", "room-1").Return([]string{"user-1", "user-2"}, nil)
	f.notifier.On("SendMessageAlert", mock.Anything, mock.Anything, mock.Anything, msg, []string{"user-2"}, result).Return(nil)

	f.run(msg)

	f.notifier.AssertNotCalled(t, "SendSupportAlert", mock.Anything, mock.Anything, mock.Anything)
	f.recorder.AssertNotCalled(t, "MarkSupportTriggered", mock.Anything)
	f.notifier.AssertExpectations(t)
}

func TestPipeline_UnattemptedSupportDispatchLeavesFlagUnset(t *testing.T) {
	msg := testMessage()
	result := crisisResult()
	sample := sampleFor(msg, result)
	f := newPipelineFixture(result)

	f.recorder.On("Record", "user-1", "room-1", msg.Content, result).Return(sample, nil)
	f.recorder.On("LinkMessage", "sample-1", "msg-1").Return(nil)
	f.messageRepo.On("StampEmotion", "msg-1", "sadness", -0.85).Return(nil)
	f.aggregator.On("ApplyToProfile", mock.Anything, mock.Anything).Return(nil)
	f.aggregator.On("ApplyToRoom", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("FindByID", "user-1").Return(&authdomain.User{ID: "user-1", DisplayName: "Alex"}, nil)
	f.roomRepo.On("FindByID", "room-1").Return(&chatdomain.Room{ID: "room-1"}, nil)
	f.roomRepo.On("MemberIDs", "room-1").Return([]string{"user-1"}, nil)
	// No active tokens: the dispatcher reports that no send was attempted.
	f.notifier.On("SendSupportAlert", mock.Anything, "user-1", mock.Anything).Return(false, nil)

	f.run(msg)

	f.recorder.AssertNotCalled(t, "MarkSupportTriggered", mock.Anything)
	f.notifier.AssertNotCalled(t, "SendMessageAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPipeline_RecordFailureStillAggregatesAndDispatches(t *testing.T) {
	msg := testMessage()
	result := crisisResult()
	f := newPipelineFixture(result)

	f.recorder.On("Record", "user-1", "room-1", msg.Content, result).Return(nil, errors.New("db down"))
	f.aggregator.On("ApplyToProfile", "user-1", mock.MatchedBy(func(s *emotiondomain.EmotionSample) bool {
		return s.ID == "" && s.SentimentScore == result.Score
	})).Return(nil)
	f.aggregator.On("ApplyToRoom", "room-1", mock.Anything).Return(nil)
	f.userRepo.On("FindByID", "user-1").Return(&authdomain.User{ID: "user-1", DisplayName: "Alex"}, nil)
	f.roomRepo.On("FindByID", "room-1").Return(&chatdomain.Room{ID: "room-1"}, nil)
	f.roomRepo.On("MemberIDs", "room-1").Return([]string{"user-1"}, nil)
	f.notifier.On("SendSupportAlert", mock.Anything, "user-1", mock.Anything).Return(true, nil)

	f.run(msg)

	// Without a persisted sample there is nothing to link, stamp, or flag.
	f.recorder.AssertNotCalled(t, "LinkMessage", mock.Anything, mock.Anything)
	f.messageRepo.AssertNotCalled(t, "StampEmotion", mock.Anything, mock.Anything, mock.Anything)
	f.recorder.AssertNotCalled(t, "MarkSupportTriggered", mock.Anything)
	f.aggregator.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestEnqueue_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	f := newPipelineFixture(neutralResult())

	// Never started: the queue fills up and further jobs must not block.
	// The test passes by completing at all.
	for i := 0; i < 600; i++ {
		f.worker.Enqueue(usecase.AnalysisJob{Message: testMessage()})
	}
}
