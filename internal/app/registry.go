package app

import (
	"database/sql"
	"net/http"

	"go-timely/internal/clockapi"
	"go-timely/internal/config"
	"go-timely/internal/deeplink"
	"go-timely/internal/events"
	"go-timely/internal/geofence"
	"go-timely/internal/kvstore"
	"go-timely/internal/lastevent"
	"go-timely/internal/location"
	"go-timely/internal/messaging/kafka"
	"go-timely/internal/middleware"
	"go-timely/internal/reconcile"
	"go-timely/internal/shared/response"
	"go-timely/internal/timeclock"
	"go-timely/internal/triggerlog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type deps struct {
	rdb    *redis.Client
	gormDB *gorm.DB
	sqlDB  *sql.DB
	bus    *events.Bus
	logger *zap.Logger
}

// modules exposes what BuildApp wires to transports after registration.
type modules struct {
	resolver    *lastevent.Resolver
	fixes       *location.FixStore
	monitor     *geofence.SoftwareMonitor
	coordinator *geofence.Coordinator
	close       func()
}

func registerModules(router *gin.Engine, cfg config.Config, d deps) *modules {
	// --- Stores & Clients ---
	kv := kvstore.NewRedisStore(d.rdb, cfg.RedisPrefix)
	apiClient := clockapi.NewHTTPClient(cfg.APIURL, cfg.APITimeout, kv, d.logger)
	fixes := location.NewFixStore(kv)
	provider := location.NewProvider(fixes, d.logger)

	resolver := lastevent.NewResolver(apiClient, lastevent.WithLogger(d.logger), lastevent.WithTimezone(cfg.Timezone))
	unsubscribeResolver := resolver.Subscribe(d.bus)

	// --- Optional persistence ---
	var (
		coreOpts     = []reconcile.Option{reconcile.WithScheme(cfg.DeeplinkScheme), reconcile.WithLogger(d.logger)}
		ingestorOpts = []deeplink.Option{deeplink.WithScheme(cfg.DeeplinkScheme), deeplink.WithLogger(d.logger)}
		geofenceOpts = []geofence.Option{geofence.WithPublisher(d.bus), geofence.WithLogger(d.logger)}
		triggerSvc   triggerlog.Service
		unsubscribes = []func(){unsubscribeResolver}
	)
	if d.gormDB != nil {
		triggerSvc = triggerlog.NewService(triggerlog.NewRepository(d.gormDB), d.logger)
		coreOpts = append(coreOpts, reconcile.WithObserver(triggerSvc))
		geofenceOpts = append(geofenceOpts, geofence.WithObserver(triggerSvc))
	}
	if d.sqlDB != nil {
		sink := kafka.NewOutboxSink(kafka.NewOutboxRepository(d.sqlDB), cfg.InstanceID, d.logger)
		unsubscribes = append(unsubscribes, sink.Subscribe(d.bus))
		ingestorOpts = append(ingestorOpts, deeplink.WithNavigator(sink))
		geofenceOpts = append(geofenceOpts, geofence.WithNotifier(sink))
	}

	// --- Services ---
	timeclockService := timeclock.NewService(apiClient, provider, resolver, d.bus, d.logger)
	core := reconcile.NewCore(timeclockService, coreOpts...)
	ingestor := deeplink.NewIngestor(core, resolver, kv, ingestorOpts...)

	monitor := geofence.NewSoftwareMonitor(kv, d.logger)
	var module geofence.Module = geofence.Unavailable()
	if cfg.GeofenceEnabled {
		module = monitor
	}
	coordinator := geofence.NewCoordinator(module, apiClient, apiClient, kv, geofenceOpts...)

	// --- Handlers ---
	timeclockHandler := timeclock.NewHandler(timeclockService)
	deeplinkHandler := deeplink.NewHandler(ingestor)
	geofenceHandler := geofence.NewHandler(coordinator)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "instance": cfg.InstanceID}, nil)
	})

	auth := []gin.HandlerFunc{
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(d.logger),
	}

	api := router.Group("/api/v1")
	{
		timeclock.RegisterRoutes(api, timeclockHandler, d.rdb, auth...)
		deeplink.RegisterRoutes(api, deeplinkHandler, cfg.RateLimitRPS, cfg.RateLimitBurst, auth...)
		geofence.RegisterRoutes(api, geofenceHandler, auth...)
		if triggerSvc != nil {
			triggerlog.RegisterRoutes(api, triggerlog.NewHandler(triggerSvc), auth...)
		}
	}

	return &modules{
		resolver:    resolver,
		fixes:       fixes,
		monitor:     monitor,
		coordinator: coordinator,
		close: func() {
			ingestor.Close()
			core.Close()
			coordinator.Close()
			for _, unsubscribe := range unsubscribes {
				unsubscribe()
			}
		},
	}
}
