package main

import (
	"log"

	api "moodchat-backend/cmd/api"
	authdomain "moodchat-backend/internal/auth/domain"
	authRepo "moodchat-backend/internal/auth/repository"
	authUsecase "moodchat-backend/internal/auth/usecase"
	chatdomain "moodchat-backend/internal/chat/domain"
	chatRepo "moodchat-backend/internal/chat/repository"
	chatUsecase "moodchat-backend/internal/chat/usecase"
	emotionDelivery "moodchat-backend/internal/emotion/delivery"
	emotiondomain "moodchat-backend/internal/emotion/domain"
	emotionRepo "moodchat-backend/internal/emotion/repository"
	emotionUsecase "moodchat-backend/internal/emotion/usecase"
	"moodchat-backend/internal/notification"
	"moodchat-backend/pkg/classifier"
	"moodchat-backend/pkg/config"
	"moodchat-backend/pkg/database"
	"moodchat-backend/pkg/fcm"
	"moodchat-backend/pkg/realtime"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.DeviceToken{},
		&chatdomain.Room{},
		&chatdomain.RoomMember{},
		&chatdomain.Message{},
		&emotiondomain.EmotionSample{},
		&emotiondomain.UserEmotionProfile{},
		&emotiondomain.RoomEmotionTrend{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	deviceTokenRepo := authRepo.NewDeviceTokenRepository(db)
	roomRepo := chatRepo.NewRoomRepository(db)
	messageRepo := chatRepo.NewMessageRepository(db)
	sampleRepo := emotionRepo.NewSampleRepository(db)
	profileRepo := emotionRepo.NewProfileRepository(db)
	trendRepo := emotionRepo.NewTrendRepository(db)

	// Initialize the classifier stack. A missing Google provider just means
	// every result is tagged as fallback.
	cls := classifier.NewClassifier(classifier.FactoryConfig{
		Provider:        classifier.ProviderType(cfg.SentimentProvider),
		CredentialsFile: cfg.GoogleCredentials,
	})

	// Initialize FCM client (optional, the pipeline runs without push)
	var pushClient notification.PushClient
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		} else {
			pushClient = fcmClient
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, push notifications disabled")
	}

	// Initialize room broadcaster (optional)
	var broadcaster realtime.Broadcaster = realtime.NoopBroadcaster{}
	if cfg.GoogleProjectID != "" {
		pb, err := realtime.NewPubSubBroadcaster(cfg.GoogleProjectID, cfg.PubSubTopic, cfg.GoogleCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize Pub/Sub broadcaster (room broadcast disabled): %v", err)
		} else {
			broadcaster = pb
			defer pb.Close()
		}
	} else {
		log.Printf("[WARN] GOOGLE_PROJECT_ID not configured, room broadcast disabled")
	}

	// Initialize usecases
	deviceRegistry := authUsecase.NewDeviceRegistry(deviceTokenRepo)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)

	recorder := emotionUsecase.NewRecorder(sampleRepo)
	aggregator := emotionUsecase.NewTrendAggregator(profileRepo, trendRepo)
	triggerPolicy := emotionUsecase.NewTriggerPolicy()

	var notifier chatUsecase.Notifier
	if pushClient != nil {
		notifier = notification.NewService(pushClient, deviceRegistry, 0)
	}

	// Background emotion analysis workers
	analysisWorker := chatUsecase.NewAnalysisWorkerService(
		cls, recorder, aggregator, triggerPolicy, notifier,
		userRepo, roomRepo, messageRepo,
		cfg.AnalysisWorkers,
	)
	analysisWorker.Start()
	defer analysisWorker.Stop()

	chatUsecaseInstance := chatUsecase.NewChatUsecase(roomRepo, messageRepo, broadcaster, analysisWorker)

	emotionHandler := emotionDelivery.NewEmotionHandler(profileRepo, trendRepo, sampleRepo, roomRepo)

	// Initialize HTTP handler and start the server
	handler := api.NewHandler(authUsecaseInstance, deviceRegistry, chatUsecaseInstance, emotionHandler, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
