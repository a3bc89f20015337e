package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomops-data/internal/config"
	"roomops-data/internal/database"
	"roomops-data/internal/domain"
	httpapi "roomops-data/internal/http"
	applog "roomops-data/internal/logger"
	"roomops-data/internal/notify"
	"roomops-data/internal/repository"
	"roomops-data/internal/reset"
	"roomops-data/internal/service"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := applog.NewLogger(cfg.Log.Level, cfg.Log.Format, "roomops-data")
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	// 日结边界使用的本地时区；未配置时取进程本地时区
	loc := time.Local
	if cfg.Reset.Timezone != "" {
		if l, err := time.LoadLocation(cfg.Reset.Timezone); err == nil {
			loc = l
		} else {
			logger.Warn("Invalid RESET_TIMEZONE, falling back to local", zap.Error(err))
		}
	}

	// 通知下沉（fire-and-forget；任何 sink 连不上都降级为 nop）
	var notifier notify.Notifier = notify.NewNopNotifier()
	var redisClient *redis.Client
	var mqttNotifier *notify.MQTTNotifier
	switch cfg.Notify.Mode {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		notifier = notify.NewRedisNotifier(redisClient, cfg.Notify.Stream, logger)
	case "mqtt":
		if n, err := notify.NewMQTTNotifier(&cfg.MQTT, logger); err == nil {
			mqttNotifier = n
			notifier = n
		} else {
			logger.Warn("MQTT notifier unavailable, events disabled", zap.Error(err))
		}
	case "webhook":
		if cfg.Notify.WebhookURL != "" {
			notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, logger)
		}
	}

	// 数据访问层：DB 可用走 postgres，否则落内存 repo 支持联测
	var (
		db           *sql.DB
		roomsRepo    repository.RoomsRepo
		tasksRepo    repository.TasksRepo
		ordersRepo   repository.WorkOrdersRepo
		commentsRepo repository.RoomCommentsRepo
		usersRepo    repository.UsersRepo
		reportsRepo  repository.ReportsRepo
	)
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			logger.Info("DB enabled for roomops-data")
		} else {
			logger.Warn("DB enabled but connection failed, falling back to memory repos", zap.Error(err))
		}
	}
	if db != nil {
		roomsRepo = repository.NewPostgresRoomsRepo(db)
		tasksRepo = repository.NewPostgresTasksRepo(db)
		ordersRepo = repository.NewPostgresWorkOrdersRepo(db)
		commentsRepo = repository.NewPostgresRoomCommentsRepo(db)
		usersRepo = repository.NewPostgresUsersRepo(db)
		reportsRepo = repository.NewPostgresReportsRepo(db)
	} else {
		roomsRepo = repository.NewMemoryRoomsRepo()
		tasksRepo = repository.NewMemoryTasksRepo()
		ordersRepo = repository.NewMemoryWorkOrdersRepo()
		commentsRepo = repository.NewMemoryRoomCommentsRepo()
		memUsers := repository.NewMemoryUsersRepo()
		// Seed the reserved system identity so audit comments resolve in dev too.
		memUsers.UpsertUser(domain.SystemUserID, "System", "system")
		usersRepo = memUsers
		reportsRepo = repository.NewMemoryReportsRepo()
	}

	// 日结引擎：编排器 + 午夜调度器（显式注入，不用包级单例）
	orchestrator := reset.NewOrchestrator(
		roomsRepo, tasksRepo, ordersRepo, commentsRepo, usersRepo, reportsRepo,
		notifier, loc, logger)
	scheduler := reset.NewScheduler(orchestrator, loc, logger)

	roomService := service.NewRoomService(roomsRepo, notifier, logger)
	taskService := service.NewTaskService(tasksRepo, notifier, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterResetRoutes(httpapi.NewResetHandler(orchestrator, reportsRepo, logger))
	router.RegisterRoomRoutes(httpapi.NewRoomHandler(roomService, logger))
	router.RegisterTaskRoutes(httpapi.NewTaskHandler(taskService, logger))
	router.RegisterWorkOrderRoutes(httpapi.NewWorkOrderHandler(ordersRepo, logger))
	router.RegisterCommentRoutes(httpapi.NewCommentHandler(commentsRepo, logger))

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if mqttNotifier != nil {
		mqttNotifier.Close()
	}
	_ = database.Close(db)
}
