package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/krishkishore714-max/Drainage-congestion/internal/artifact"
	"github.com/krishkishore714-max/Drainage-congestion/internal/handlers"
	"github.com/krishkishore714-max/Drainage-congestion/internal/logger"
	"github.com/krishkishore714-max/Drainage-congestion/internal/repository"
	"github.com/krishkishore714-max/Drainage-congestion/internal/server"
	"github.com/krishkishore714-max/Drainage-congestion/internal/service"
)

const defaultSimTick = 1 * time.Second

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// load model artifacts; a missing/corrupt artifact disables inference
	// but the dashboard stays up and reports "model not loaded".
	arts := loadArtifacts(log)

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, arts)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start simulated sensor feed (via composed service)
	go services.Simulator.Run(ctx, simTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repository.InitDB(dbPath)
}

// loadArtifacts resolves the model directory and loads the scaler/classifier
// once for the process lifetime. Returns nil when unavailable.
func loadArtifacts(log *logger.Logger) *artifact.Artifacts {
	dir := viper.GetString("model.dir")
	if dir == "" {
		// Default: artifacts/ next to the running binary's working directory.
		dir = "artifacts"
	}
	arts, err := artifact.Load(dir)
	if err != nil {
		log.Warnw("model artifacts unavailable; inference disabled", "dir", dir, "err", err)
		return nil
	}
	log.Infow("model artifacts loaded",
		"dir", filepath.Clean(dir),
		"classifier", arts.Classifier.Kind(),
		"probabilities", arts.SupportsProbabilities(),
	)
	return arts
}

// simTick reads the simulator tick from config, falling back to the default.
func simTick() time.Duration {
	if d := viper.GetDuration("simulator.tick"); d > 0 {
		return d
	}
	return defaultSimTick
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
