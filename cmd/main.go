package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "roast_monitor/docs"
	"roast_monitor/internal/announce"
	"roast_monitor/internal/handlers"
	"roast_monitor/internal/lifecycle"
	"roast_monitor/internal/logger"
	"roast_monitor/internal/milestone"
	"roast_monitor/internal/models"
	"roast_monitor/internal/repository"
	"roast_monitor/internal/repository/db"
	"roast_monitor/internal/series"
	"roast_monitor/internal/server"
	"roast_monitor/internal/service"
	"roast_monitor/internal/synchronizer"
	"roast_monitor/internal/transport"
	"roast_monitor/internal/ui"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
)

// @title        Roast Monitor API
// @version      1.0
// @description  Live roast session of a roaster controller: chart series, milestones, control gating and operator commands.
// @BasePath     /
func main() {
	configErr := loadConfig()

	log := logger.Init(viper.GetString("log.level"), viper.GetString("log.format"))
	if configErr != nil {
		log.Fatalw("error reading config", "err", configErr)
	}

	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	incidents := service.NewIncidentService(repos.IncidentRepo, log.Named("incidents"))
	board := ui.NewBoard()
	sink := series.NewSink()

	var renderer synchronizer.Renderer
	if announcer := startAnnouncer(ctx, log); announcer != nil {
		renderer = announcer
	}

	var syncer *synchronizer.Synchronizer
	device := transport.NewClient(deviceConfig(), func(env models.Envelope) {
		syncer.Dispatch(env)
	}, log.Named("transport"))

	syncer = synchronizer.New(synchronizer.Deps{
		Lifecycle: lifecycle.NewMachine(),
		Sink:      sink,
		Tracker:   milestone.NewTracker(),
		Panel:     board,
		Commands:  device,
		Renderer:  renderer,
		Incidents: incidents,
		Metrics:   synchronizer.NewMetrics(reg),
		Log:       log.Named("synchronizer"),
	})

	services := service.NewService(incidents, service.Deps{
		Board:    board,
		Sink:     sink,
		Sessions: syncer,
		Actions:  syncer,
	})
	apiHandler := handlers.NewHandler(services, log, reg)

	go syncer.Run(ctx)
	go func() {
		if err := device.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("device transport stopped", "err", err)
		}
	}()

	srv := &server.Server{}
	runHTTPServer(srv, httpConfig(), apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.SetDefault("port", "8000")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("log.format", logger.FormatConsole)
	viper.SetDefault("db.dsn", db.MemoryDSN)
	viper.SetDefault("device.url", "ws://localhost:5000/socket")
	viper.SetDefault("device.handshake_timeout", 10*time.Second)
	viper.SetDefault("device.write_timeout", 5*time.Second)
	viper.SetDefault("device.min_backoff", time.Second)
	viper.SetDefault("device.max_backoff", 32*time.Second)
	viper.SetDefault("mqtt.client_id", announce.DefaultTopicPrefix)
	viper.SetDefault("mqtt.topic_prefix", announce.DefaultTopicPrefix)

	// ROAST_DEVICE_URL overrides device.url
	viper.SetEnvPrefix("roast")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// openDB initializes the SQLite incident store using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dsn := viper.GetString("db.dsn")
	if dsn == db.MemoryDSN {
		log.Infow("incident log kept in memory", "dsn", dsn)
	}
	return db.InitDB(dsn)
}

func deviceConfig() transport.Config {
	return transport.Config{
		URL:              viper.GetString("device.url"),
		HandshakeTimeout: viper.GetDuration("device.handshake_timeout"),
		WriteTimeout:     viper.GetDuration("device.write_timeout"),
		ReadTimeout:      viper.GetDuration("device.read_timeout"),
		MinBackoff:       viper.GetDuration("device.min_backoff"),
		MaxBackoff:       viper.GetDuration("device.max_backoff"),
	}
}

func httpConfig() server.Config {
	return server.Config{
		Port:              viper.GetString("port"),
		ReadHeaderTimeout: viper.GetDuration("http.read_header_timeout"),
		WriteTimeout:      viper.GetDuration("http.write_timeout"),
		IdleTimeout:       viper.GetDuration("http.idle_timeout"),
	}
}

// startAnnouncer connects to the MQTT broker when one is configured. A broker
// that cannot be reached disables announcements instead of stopping startup.
func startAnnouncer(ctx context.Context, log *logger.Logger) *announce.Announcer {
	broker := viper.GetString("mqtt.broker")
	if broker == "" {
		return nil
	}
	pub, err := announce.NewMQTTPublisher(broker, viper.GetString("mqtt.client_id"))
	if err != nil {
		log.Warnw("mqtt announcements disabled", "broker", broker, "err", err)
		return nil
	}
	a := announce.New(pub, viper.GetString("mqtt.topic_prefix"), log.Named("announce"))
	go a.Run(ctx)
	log.Infow("mqtt announcements enabled", "broker", broker, "topic", a.MilestoneTopic())
	return a
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg server.Config, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(cfg, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop transport, synchronizer and announcer
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	_ = log.Sync()
}
