package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apphardware "github.com/possuite/backend/internal/application/hardware"
	appkds "github.com/possuite/backend/internal/application/kds"
	"github.com/possuite/backend/internal/application/ordering"
	appprinting "github.com/possuite/backend/internal/application/printing"
	approuting "github.com/possuite/backend/internal/application/routing"
	"github.com/possuite/backend/internal/infrastructure/config"
	"github.com/possuite/backend/internal/infrastructure/dispatch"
	"github.com/possuite/backend/internal/infrastructure/event"
	"github.com/possuite/backend/internal/infrastructure/logger"
	"github.com/possuite/backend/internal/infrastructure/persistence"
	infraprinting "github.com/possuite/backend/internal/infrastructure/printing"
	"github.com/possuite/backend/internal/infrastructure/realtime"
	"github.com/possuite/backend/internal/interfaces/http/handler"
	"github.com/possuite/backend/internal/interfaces/http/middleware"
	"github.com/possuite/backend/internal/interfaces/http/router"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	rvcRepo := persistence.NewGormRevenueCenterRepository(db.DB)
	menuItemRepo := persistence.NewGormMenuItemRepository(db.DB)
	printerRepo := persistence.NewGormPrinterRepository(db.DB)
	displayRepo := persistence.NewGormKitchenDisplayRepository(db.DB)
	orderDeviceRepo := persistence.NewGormOrderDeviceRepository(db.DB)
	printClassRepo := persistence.NewGormPrintClassRepository(db.DB)
	routeRepo := persistence.NewGormPrintClassRouteRepository(db.DB)
	checkRepo := persistence.NewGormCheckRepository(db.DB)
	ticketRepo := persistence.NewGormKdsTicketRepository(db.DB)
	jobRepo := persistence.NewGormPrintJobRepository(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Realtime fanout: in-process websocket hub plus Redis for other
	// server instances. The bridge replays frames from those instances
	// into the local hub, skipping our own by instance id.
	hub := realtime.NewHub(log)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	instanceID := uuid.NewString()
	streamPublisher := realtime.NewFanoutPublisher(hub, realtime.NewRedisPublisher(redisClient, instanceID, log))

	bridge := realtime.NewRedisBridge(redisClient, hub, instanceID, log)
	if err := bridge.Start(context.Background()); err != nil {
		log.Warn("Realtime bridge unavailable, cross-instance events disabled", zap.Error(err))
	} else {
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			if err := bridge.Stop(stopCtx); err != nil {
				log.Error("Error stopping realtime bridge", zap.Error(err))
			}
		}()
	}

	ticketStream := realtime.NewTicketStream(streamPublisher, log)
	eventBus.Subscribe(ticketStream, ticketStream.EventTypes()...)

	// Print agent bridge for serial/usb printers
	agentHub := infraprinting.NewAgentHub(log)

	// Application services
	deviceService := apphardware.NewDeviceService(printerRepo, displayRepo, orderDeviceRepo, log)
	configService := approuting.NewConfigService(printClassRepo, routeRepo, menuItemRepo, rvcRepo, log)
	resolverService := approuting.NewResolverService(menuItemRepo, rvcRepo, routeRepo, orderDeviceRepo, printerRepo, displayRepo, log)
	printService := appprinting.NewPrintService(jobRepo, printerRepo, eventBus, cfg.Dispatch.JobTTL, log)
	fanoutService := appprinting.NewOrderFanoutService(
		checkRepo, menuItemRepo, rvcRepo, propertyRepo, ticketRepo,
		resolverService, printService, eventBus, log,
	)
	ticketService := appkds.NewTicketService(ticketRepo, displayRepo, checkRepo, eventBus, log)
	checkService := ordering.NewCheckService(checkRepo, menuItemRepo, propertyRepo, rvcRepo, eventBus, log)

	checkListener := appkds.NewCheckListener(ticketService, log)
	eventBus.Subscribe(checkListener, checkListener.EventTypes()...)

	// Delivery driver
	transport := infraprinting.NewTCPTransport(cfg.Dispatch.DialTimeout)
	dispatcher := dispatch.NewDispatcher(jobRepo, printerRepo, transport, agentHub, eventBus, log, dispatch.Options{
		Interval:  cfg.Dispatch.Interval,
		BatchSize: cfg.Dispatch.BatchSize,
	})
	agentHub.SetResultHandler(dispatcher.HandleAgentResult)

	if cfg.Dispatch.Enabled {
		if err := dispatcher.Start(context.Background()); err != nil {
			log.Fatal("Failed to start dispatcher", zap.Error(err))
		}
		defer func() {
			if err := dispatcher.Stop(context.Background()); err != nil {
				log.Error("Error stopping dispatcher", zap.Error(err))
			}
		}()
	} else {
		log.Warn("Print dispatcher disabled, queued jobs will not be delivered")
	}

	// Display liveness supervision
	sweeper := dispatch.NewDisplaySweeper(displayRepo, eventBus, log, dispatch.SweeperOptions{
		OfflineAfter: cfg.Kds.OfflineAfter,
	})
	if err := sweeper.Start(context.Background()); err != nil {
		log.Fatal("Failed to start display sweeper", zap.Error(err))
	}
	defer func() {
		if err := sweeper.Stop(context.Background()); err != nil {
			log.Error("Error stopping display sweeper", zap.Error(err))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.PropertyContext())

	router.Setup(engine, router.Handlers{
		System:  handler.NewSystemHandler(db, version),
		Device:  handler.NewDeviceHandler(deviceService),
		Routing: handler.NewRoutingHandler(configService, resolverService),
		Order:   handler.NewOrderHandler(checkService, fanoutService, ticketService),
		Print:   handler.NewPrintHandler(printService),
		Kds:     handler.NewKdsHandler(ticketService, hub),
		Agent:   handler.NewAgentHandler(agentHub),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
