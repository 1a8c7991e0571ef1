package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindwell/config"
	"mindwell/cron"
	"mindwell/database"
	bookingRepo "mindwell/database/repository/booking"
	"mindwell/handlers"
	"mindwell/middleware"
	"mindwell/routes"
	"mindwell/services/booking"
	"mindwell/services/chatbot"
	"mindwell/services/notification"
	"mindwell/services/screening"
	"mindwell/services/tasks"
	"mindwell/services/tracking"
	"mindwell/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	localOnly := cfg.StoreBackend == "memory"

	var fbApp *firebase.App
	if cfg.AuthMode != "jwt" || !localOnly {
		app, err := utils.FirebaseInit(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		fbApp = app
	}

	// Booking store.
	var (
		repo        bookingRepo.BookingRepository
		mongoClient *mongo.Client
	)
	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("Using in-memory booking store; bookings are lost on restart")
		repo = bookingRepo.NewMemoryBookingRepo()
	case "firestore":
		fs, err := fbApp.Firestore(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open Firestore: %v", err)
		}
		defer fs.Close()
		repo = bookingRepo.NewFirestoreBookingRepo(fs)
	default:
		client, err := database.InitDB(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		mongoClient = client
		mongoRepo := bookingRepo.NewMongoBookingRepo(database.Database(client))
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
		}
		repo = mongoRepo
	}

	// Tracking store.
	var (
		kv           tracking.KVStore
		redisClients []*redis.Client
	)
	if localOnly {
		kv = tracking.NewMemoryKVStore()
	} else {
		trackingClient := utils.GetTrackingClient()
		redisClients = append(redisClients, trackingClient)
		kv = tracking.NewRedisKVStore(trackingClient)
	}

	reservations := &booking.DefaultReservationService{
		Repo:         repo,
		MaxAttempts:  cfg.ReservationMaxAttempts,
		RetryBackoff: cfg.RetryBackoff(),
		Location:     cfg.Location(),
		Logger:       logger.Named("booking"),
	}

	// Push notifications and reminders.
	var (
		reminderClient *asynq.Client
		reminderWorker *asynq.Server
	)
	if fbApp != nil && !localOnly {
		fcm, err := fbApp.Messaging(ctx)
		if err != nil {
			logger.Warn("FCM unavailable; booking pushes disabled", zap.Error(err))
		} else {
			notifSvc, err := notification.NewDefaultNotificationService(fcm, logger.Named("notification"))
			if err != nil {
				logger.Sugar().Fatalf("main: %v", err)
			}
			reservations.Notifier = notifSvc

			reminderClient = asynq.NewClient(utils.ReminderQueueOpt())
			reservations.Reminders = &tasks.ReminderScheduler{
				Queue:    reminderClient,
				Lead:     cfg.ReminderLead(),
				Location: cfg.Location(),
				Logger:   logger.Named("reminders"),
			}
			reminderWorker = cron.InitReminderWorker(utils.ReminderQueueOpt(), notifSvc, reservations, logger.Named("reminder-worker"))
		}
	}

	utils.StartHealthMonitor(ctx, redisClients, mongoClient)

	var verifier middleware.TokenVerifier
	switch cfg.AuthMode {
	case "jwt":
		if cfg.JWTSecret == "" {
			logger.Sugar().Fatal("main: AUTH_MODE=jwt requires JWT_SECRET")
		}
		verifier = middleware.JWTVerifier{Secret: []byte(cfg.JWTSecret)}
	default:
		authClient, err := fbApp.Auth(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Firebase Auth: %v", err)
		}
		verifier = middleware.FirebaseVerifier{Client: authClient}
	}

	tracker := tracking.NewTracker(kv)
	handlerBundle := &handlers.HandlerBundle{
		Verifier:    verifier,
		RateLimiter: middleware.NewRateLimiter(cfg.MaxRequestsPerMin),
		Booking:     &handlers.BookingHandler{Service: reservations},
		Therapists:  &handlers.TherapistHandler{Service: reservations},
		Screening:   &handlers.ScreeningHandler{Scorer: screening.NewService(), Tracker: tracker},
		Tracking:    &handlers.TrackingHandler{Tracker: tracker},
		Chat:        &handlers.ChatHandler{Bot: chatbot.New()},
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if reminderClient != nil {
		_ = reminderClient.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
