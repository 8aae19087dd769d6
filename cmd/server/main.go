package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"blackjack-server/internal/config"
	"blackjack-server/internal/mux"
	"blackjack-server/pkg/db"
	"blackjack-server/pkg/history"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 5

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (overrides the config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *addr != "" {
		cfg.Addr = *addr
	}

	game, err := blackjack.NewGame(logrus.WithField("component", "game"), cfg.TableOptions())
	if err != nil {
		logrus.WithError(err).Fatal("invalid table options")
	}

	if cfg.AdminKeyHash == "" {
		logrus.Warn("no admin key hash configured, admin sessions are disabled")
	}

	recorder := newRecorder(cfg)
	dealer := room.NewDealer(logrus.WithField("component", "dealer"), game, recorder)
	dealer.StartShift()
	defer dealer.EndShift()

	pitBoss := room.NewPitBoss(logrus.WithField("component", "pitBoss"), room.NewLobby(cfg.LobbyID, cfg.AdminKeyHash), dealer)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, recorder))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-signals:
			logrus.WithField("signal", sig).Info("received signal")
			pitBoss.Shutdown()
		case <-pitBoss.ShutdownRequested():
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"lobby":   cfg.LobbyID,
		"seats":   cfg.Table.MaxSeats,
		"version": Version,
	}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("server failed")
	}

	logrus.Info("server stopped")
}

// newRecorder returns the Postgres history when a DSN is configured, otherwise an in-memory one
func newRecorder(cfg config.Config) history.Recorder {
	if cfg.PGDSN == "" {
		return history.NewMemory(cfg.HistoryRows)
	}

	dbh := db.Instance()
	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	return history.NewPostgres(dbh)
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
