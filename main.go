// File: beu/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beu/apiclient"
	"beu/config"
	"beu/cron"
	"beu/database"
	draftRepo "beu/database/repository/draft"
	notificationRepo "beu/database/repository/notification"
	reservationRepo "beu/database/repository/reservation"
	"beu/handlers"
	"beu/routes"
	"beu/services/calendar"
	"beu/services/notification"
	"beu/services/post"
	"beu/services/profile"
	"beu/services/reservation"
	"beu/services/schedule"
	"beu/services/storage"
	"beu/services/tasks"
	"beu/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if err := database.InitDB(logger); err != nil {
		logger.Fatal("main: failed to initialize MongoDB", zap.Error(err))
	}
	cacheClient := utils.GetCacheClient()
	draftClient := utils.GetDraftClient()

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	utils.StartHealthMonitor(rootCtx, []*redis.Client{cacheClient, draftClient}, database.MongoClient)

	// repositories.
	reservationMirror := reservationRepo.NewMongoReservationRepo(database.DB())
	notificationMirror := notificationRepo.NewMongoNotificationRepo(database.DB())
	drafts := draftRepo.NewRedisDraftRepo(draftClient, cfg.DraftTTL)

	indexCtx, cancelIndex := context.WithTimeout(rootCtx, 15*time.Second)
	if err := reservationMirror.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("main: reservation mirror indexes", zap.Error(err))
	}
	if err := notificationMirror.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("main: notification mirror indexes", zap.Error(err))
	}
	cancelIndex()

	// queue.
	asynqClient := asynq.NewClient(cron.RedisOpt())
	defer asynqClient.Close()
	enqueuer := tasks.NewEnqueuer(asynqClient, cfg.MirrorMaxAge)

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, logger.Named("apiclient"))
	worker := cron.InitWorker(&cron.TaskHandlers{
		API:          api,
		Mirror:       reservationMirror,
		ServiceToken: cfg.APIServiceToken,
		Logger:       logger.Named("worker"),
	})

	var photoStore storage.StorageService
	if cld, err := utils.NewCloudinary(); err != nil {
		logger.Warn("main: photo uploads disabled", zap.Error(err))
	} else {
		photoStore = storage.NewCloudinaryStorage(cld, cfg.CloudinaryFolder)
	}

	// services.
	calendarOpts := calendar.Options{
		Location:     config.Location(),
		Locale:       calendar.MustLocale(cfg.Locale),
		PrimaryColor: cfg.ThemePrimaryColor,
		WindowRadius: cfg.WeekWindowRadius,
	}.WithDefaults()

	reservationService := reservation.NewDefaultReservationService(api, reservationMirror, enqueuer, calendarOpts, reservation.Config{
		PublicBaseURL: cfg.PublicBaseURL,
		MirrorMaxAge:  cfg.MirrorMaxAge,
	}, logger.Named("reservations"))

	notificationService, err := notification.NewDefaultNotificationService(api, notificationMirror, calendarOpts, logger.Named("notifications"))
	if err != nil {
		logger.Fatal("main: notification service", zap.Error(err))
	}
	scheduleService := schedule.NewDefaultScheduleService(api, drafts, enqueuer, calendarOpts.Locale, logger.Named("schedule"))
	postService := post.NewDefaultPostService(api, post.NewRedisPostCache(cacheClient, cfg.PostCacheTTL), photoStore, logger.Named("posts"))
	profileService := profile.NewDefaultProfileService(api, logger.Named("profiles"))

	handlerBundle := &handlers.HandlerBundle{
		Calendar:      handlers.NewCalendarHandler(reservationService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Schedule:      handlers.NewScheduleHandler(scheduleService),
		Reservations:  handlers.NewReservationHandler(reservationService),
		Posts:         handlers.NewPostHandler(postService),
		Profiles:      handlers.NewProfileHandler(profileService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	stopBackground()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: mongo disconnect", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
