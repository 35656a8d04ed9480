package bootstrap

import (
	"context"
	"errors"
	"log"
	"time"

	"settings-core/internal/capability"
	"settings-core/internal/config"
	"settings-core/internal/controller"
	"settings-core/internal/handler"
	"settings-core/internal/pkg/logger"
	"settings-core/internal/repository/contract"
	"settings-core/internal/repository/implementation"
	"settings-core/internal/repository/memory"
	"settings-core/internal/service"
	"settings-core/internal/statebus"
	"settings-core/internal/viewmodel"
	"settings-core/internal/websocket"

	pktNats "settings-core/pkg/nats"

	"github.com/redis/go-redis/v9"
)

const containerModule = "Container"

type Container struct {
	Logger   logger.ILogger
	Bus      *statebus.Bus
	Settings *viewmodel.Settings

	// Controllers
	SettingsController    controller.ISettingsController
	PreferencesController controller.IPreferencesController
	AccountController     controller.IAccountController

	// WebSockets
	StateStreamHandler *handler.StateStreamHandler
	WebSocketHub       *websocket.Hub

	cfg       *config.Config
	store     *memory.PreferencesStore
	snapshots contract.PreferencesSnapshotRepository
	natsPub   *pktNats.Publisher
	natsSink  *service.NatsTelemetrySink
	rdb       *redis.Client
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	bus := statebus.NewWithBuffer(sysLogger, cfg.Settings.StreamBufferSize)

	c := &Container{
		Logger: sysLogger,
		Bus:    bus,
		cfg:    cfg,
	}

	// 2. Infrastructure
	// Redis
	if cfg.Settings.Persistence == config.PersistenceRedis {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		c.rdb = redis.NewClient(opt)
		if _, err := c.rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.snapshots = implementation.NewRedisPreferencesSnapshotRepository(c.rdb, cfg.Settings.SnapshotTTL)
	}

	// 3. Capabilities
	c.store = c.loadPreferences(context.Background())

	mockAccount := service.NewMockAccountService(
		service.WithLatency(cfg.Settings.MockLatency),
		service.WithLogger(sysLogger),
	)
	account := service.NewTracedAccountService(mockAccount)

	telemetry := c.newTelemetrySink(sysLogger)

	// 4. Settings session
	c.Settings = viewmodel.NewSettings(viewmodel.Dependencies{
		Preferences: c.store,
		Account:     account,
		Telemetry:   telemetry,
		Events:      bus,
		Logger:      sysLogger,
		Exporter:    viewmodel.JSONExporter(cfg.Settings.ExportLatency),
	})

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/state_stream.log")
	c.WebSocketHub = websocket.NewHub(c.rdb, wsLogger)
	c.StateStreamHandler = handler.NewStateStreamHandler(bus, c.WebSocketHub, wsLogger)

	// 6. Controllers
	c.SettingsController = controller.NewSettingsController(c.Settings)
	c.PreferencesController = controller.NewPreferencesController(c.Settings)
	c.AccountController = controller.NewAccountController(c.Settings)

	return c
}

// loadPreferences restores the last saved snapshot when persistence is on.
// Any failure falls back to defaults.
func (c *Container) loadPreferences(ctx context.Context) *memory.PreferencesStore {
	if c.snapshots == nil {
		return memory.NewPreferencesStore()
	}

	snapshot, err := c.snapshots.Load(ctx, c.cfg.Settings.ProfileKey)
	if err != nil {
		if !errors.Is(err, contract.ErrSnapshotNotFound) {
			c.Logger.Warn(containerModule, "Failed to load preferences snapshot, using defaults", map[string]interface{}{"error": err.Error()})
		}
		return memory.NewPreferencesStore()
	}

	c.Logger.Info(containerModule, "Preferences restored", map[string]interface{}{
		"profile":  c.cfg.Settings.ProfileKey,
		"saved_at": snapshot.SavedAt,
	})
	return memory.NewPreferencesStoreFromSnapshot(snapshot)
}

func (c *Container) newTelemetrySink(log logger.ILogger) capability.TelemetrySink {
	enabled := c.store.AnalyticsEnabled()

	if c.cfg.Telemetry.Sink == config.TelemetrySinkNats {
		pub, err := pktNats.NewPublisher(c.cfg.App.NatsURL)
		if err == nil {
			c.natsPub = pub
			c.natsSink = service.NewNatsTelemetrySink(pub, log, enabled)
			return c.natsSink
		}
		log.Warn(containerModule, "Failed to connect to NATS Publisher, falling back to log sink", map[string]interface{}{"error": err.Error()})
	}
	return service.NewLoggingTelemetrySink(log, enabled)
}

// Start runs the websocket hub and the bus-to-hub forwarder until ctx is done.
func (c *Container) Start(ctx context.Context) {
	go c.WebSocketHub.Run(ctx)
	go func() {
		if err := c.StateStreamHandler.Forward(ctx); err != nil {
			c.Logger.Error(containerModule, "State stream stopped", map[string]interface{}{"error": err})
		}
	}()
}

// SaveSnapshot persists the current preferences. It is a no-op without Redis.
func (c *Container) SaveSnapshot(ctx context.Context) error {
	if c.snapshots == nil {
		return nil
	}
	return c.snapshots.Save(ctx, c.cfg.Settings.ProfileKey, c.store.Snapshot())
}

// Close waits for in-flight actions, saves preferences and releases
// infrastructure.
func (c *Container) Close(ctx context.Context) error {
	c.Settings.Wait()

	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := c.SaveSnapshot(saveCtx)
	if err != nil {
		c.Logger.Error(containerModule, "Failed to save preferences snapshot", map[string]interface{}{"error": err})
	}

	if c.natsSink != nil {
		c.natsSink.Flush()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.Bus.Close()
	_ = c.Logger.Sync()
	return err
}
