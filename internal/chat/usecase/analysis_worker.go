package usecase

import (
	"context"
	"log"
	"sync"

	authrepo "moodchat-backend/internal/auth/repository"
	chatdomain "moodchat-backend/internal/chat/domain"
	chatrepo "moodchat-backend/internal/chat/repository"
	emotiondomain "moodchat-backend/internal/emotion/domain"
	"moodchat-backend/pkg/classifier"
)

// inMemorySample stands in for a sample that could not be persisted, so the
// trigger decision and aggregation can still run on the live result
func inMemorySample(msg *chatdomain.Message, result *classifier.Result) *emotiondomain.EmotionSample {
	return &emotiondomain.EmotionSample{
		AuthorID:         msg.SenderID,
		RoomID:           msg.RoomID,
		Text:             msg.Content,
		EmotionLabel:     result.Label,
		SentimentScore:   result.Score,
		Magnitude:        result.Magnitude,
		Confidence:       result.Confidence,
		ClassifierSource: result.Source,
		CreatedAt:        msg.CreatedAt,
	}
}

// AnalysisJob carries one stored message through the emotion pipeline
type AnalysisJob struct {
	Message *chatdomain.Message
}

// AnalysisWorkerService runs the per-message emotion pipeline as detached
// background work: classify -> record sample -> link -> aggregate -> decide
// support -> dispatch. Every stage fails independently; a failed stage logs
// and the job keeps going wherever the contract allows. Nothing here ever
// propagates back to the send-message response path.
type AnalysisWorkerService struct {
	classifier classifier.Classifier
	recorder   SampleRecorder
	aggregator Aggregator
	policy     SupportPolicy
	notifier   Notifier

	userRepo    authrepo.UserRepository
	roomRepo    chatrepo.RoomRepository
	messageRepo chatrepo.MessageRepository

	jobQueue    chan AnalysisJob
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	mu          sync.Mutex
}

// NewAnalysisWorkerService creates a new analysis worker service
func NewAnalysisWorkerService(
	cls classifier.Classifier,
	recorder SampleRecorder,
	aggregator Aggregator,
	policy SupportPolicy,
	notifier Notifier,
	userRepo authrepo.UserRepository,
	roomRepo chatrepo.RoomRepository,
	messageRepo chatrepo.MessageRepository,
	workerCount int,
) *AnalysisWorkerService {
	if workerCount <= 0 {
		workerCount = 3
	}

	return &AnalysisWorkerService{
		classifier:  cls,
		recorder:    recorder,
		aggregator:  aggregator,
		policy:      policy,
		notifier:    notifier,
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		jobQueue:    make(chan AnalysisJob, 500),
		workerCount: workerCount,
	}
}

// Start starts the analysis workers
func (s *AnalysisWorkerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	for i := 0; i < s.workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}
	s.started = true
	log.Printf("[Pipeline] Started %d analysis workers", s.workerCount)
}

// Stop stops all workers gracefully
func (s *AnalysisWorkerService) Stop() {
	close(s.jobQueue)
	s.workerWg.Wait()
	log.Println("[Pipeline] All analysis workers stopped")
}

// Enqueue hands a job to the workers without ever blocking the caller.
// A full queue drops the job: losing analysis for one message is an
// accepted degradation.
func (s *AnalysisWorkerService) Enqueue(job AnalysisJob) {
	select {
	case s.jobQueue <- job:
	default:
		log.Printf("[Pipeline] Queue full, dropping analysis for message %s", job.Message.ID)
	}
}

func (s *AnalysisWorkerService) worker(id int) {
	defer s.workerWg.Done()

	for job := range s.jobQueue {
		s.processJob(job)
	}

	log.Printf("[Pipeline] Worker %d stopped", id)
}

// processJob runs the pipeline stages for one message
func (s *AnalysisWorkerService) processJob(job AnalysisJob) {
	ctx := context.Background()
	msg := job.Message

	// Classify. The fallback classifier never fails for non-empty input,
	// and empty content was rejected at the entry point.
	result, err := s.classifier.Classify(ctx, msg.Content)
	if err != nil {
		log.Printf("[Pipeline] Classification failed for message %s: %v", msg.ID, err)
		return
	}

	// Record the sample. A storage failure loses analytics for this
	// message but the in-memory result still drives the rest of the run.
	sample, err := s.recorder.Record(msg.SenderID, msg.RoomID, msg.Content, result)
	persisted := err == nil
	if !persisted {
		log.Printf("[Pipeline] Failed to record sample for message %s (analytics lost): %v", msg.ID, err)
		sample = inMemorySample(msg, result)
	}

	if persisted {
		if err := s.recorder.LinkMessage(sample.ID, msg.ID); err != nil {
			log.Printf("[Pipeline] Failed to link sample %s to message %s: %v", sample.ID, msg.ID, err)
		}
		if err := s.messageRepo.StampEmotion(msg.ID, string(result.Label), result.Score); err != nil {
			log.Printf("[Pipeline] Failed to stamp emotion on message %s: %v", msg.ID, err)
		}
	}

	if err := s.aggregator.ApplyToProfile(msg.SenderID, sample); err != nil {
		log.Printf("[Pipeline] Profile aggregation failed for user %s: %v", msg.SenderID, err)
	}
	if err := s.aggregator.ApplyToRoom(msg.RoomID, sample); err != nil {
		log.Printf("[Pipeline] Room aggregation failed for room %s: %v", msg.RoomID, err)
	}

	// Without a push client there is nothing left to dispatch
	if s.notifier == nil {
		return
	}

	sender, err := s.userRepo.FindByID(msg.SenderID)
	if err != nil || sender == nil {
		log.Printf("[Pipeline] Sender %s not found, skipping notifications: %v", msg.SenderID, err)
		return
	}
	room, err := s.roomRepo.FindByID(msg.RoomID)
	if err != nil || room == nil {
		log.Printf("[Pipeline] Room %s not found, skipping notifications: %v", msg.RoomID, err)
		return
	}
	memberIDs, err := s.roomRepo.MemberIDs(msg.RoomID)
	if err != nil {
		log.Printf("[Pipeline] Failed to list members of room %s: %v", msg.RoomID, err)
		memberIDs = nil
	}
	recipients := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id != msg.SenderID {
			recipients = append(recipients, id)
		}
	}

	// Support alert and new-message fanout may run concurrently; neither
	// orders against the room broadcast.
	var wg sync.WaitGroup

	if triggered, payload := s.policy.Evaluate(sample, sender.DisplayName); triggered {
		wg.Add(1)
		go func() {
			defer wg.Done()
			attempted, err := s.notifier.SendSupportAlert(ctx, msg.SenderID, payload)
			if err != nil {
				log.Printf("[Pipeline] Support dispatch failed for user %s: %v", msg.SenderID, err)
			}
			// The flag records an attempted dispatch, so it stays false
			// when the author has no active tokens.
			if attempted && persisted {
				if err := s.recorder.MarkSupportTriggered(sample.ID); err != nil {
					log.Printf("[Pipeline] Failed to mark support flag on sample %s: %v", sample.ID, err)
				}
			}
		}()
	}

	if len(recipients) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.notifier.SendMessageAlert(ctx, sender, room, msg, recipients, result); err != nil {
				log.Printf("[Pipeline] New-message dispatch failed for message %s: %v", msg.ID, err)
			}
		}()
	}

	wg.Wait()
}
