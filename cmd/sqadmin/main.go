package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/sqadmin/internal/db"
	"gitlab.com/ranfdev/sqadmin/internal/domain"
	"gitlab.com/ranfdev/sqadmin/internal/models"
	"gitlab.com/ranfdev/sqadmin/internal/routes"
	"gitlab.com/ranfdev/sqadmin/internal/tracker"
)

const usage = `Usage:
	- start
	- migrate [up/down/drop]
`

func main() {
	if len(os.Args) == 1 {
		fmt.Print(usage + "\n")
		return
	}
	envConfig, err := models.ReadEnvConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	switch os.Args[1] {
	case "start":
		server := SqadminServer{EnvConfig: envConfig}
		server.Setup()
		server.Run()
	case "migrate":
		if len(os.Args) < 3 {
			fmt.Print(usage + "\n")
			return
		}
		switch os.Args[2] {
		case "up":
			err = db.MigrateUp(envConfig.DatabaseURL)
		case "down":
			err = db.MigrateDown(envConfig.DatabaseURL)
		case "drop":
			err = db.Drop(envConfig.DatabaseURL)
		default:
			fmt.Print(usage + "\n")
			return
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println("Done")
	default:
		fmt.Print(usage + "\n")
	}
}

type SqadminServer struct {
	models.EnvConfig
	addr       string
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	database   *db.SharedDB
	tracker    *tracker.Client
}

func (server *SqadminServer) setupLogger() {
	var writer io.Writer
	if server.Debug {
		writer = zerolog.ConsoleWriter{Out: os.Stdout}
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		writer = os.Stdout
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	server.logger = zerolog.New(writer).With().Timestamp().Logger()
}
func (server *SqadminServer) setupDB() {
	err := db.MigrateUp(server.DatabaseURL)
	if err != nil {
		server.logger.Fatal().Err(err).Send()
	}
	database, err := db.Connect(context.Background(), server.DatabaseURL)
	if err != nil {
		server.logger.Fatal().AnErr("Connecting to db", err).Send()
	}
	server.database = database
}
func (server *SqadminServer) setupTracker() {
	config := tracker.DefaultConfig(server.TrackerURL)
	config.Path = server.TrackerStatsPath
	config.Timeout = server.TrackerTimeout
	config.Logger = server.logger
	server.tracker = tracker.NewClient(config)
}
func (server *SqadminServer) setupRouter() {
	reports := domain.NewReportService(server.database, server.database, server.database, server.logger)
	stats := domain.NewStatsService(server.database, server.tracker, server.logger)
	server.router = routes.NewRouter(&server.EnvConfig, reports, stats, server.database, server.logger)
}
func (server *SqadminServer) setupHttpServer() {
	server.addr = fmt.Sprintf(":%s", server.EnvConfig.Port)
	server.httpServer = &http.Server{
		Addr:         server.addr,
		Handler:      server.router,
		ReadTimeout:  1 * time.Minute,
		WriteTimeout: 1 * time.Minute,
	}
}
func (server *SqadminServer) Setup() {
	server.setupLogger()
	server.setupDB()
	server.setupTracker()
	server.setupRouter()
	server.setupHttpServer()
}
func (server *SqadminServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.httpServer.Shutdown(ctx); err != nil {
		server.logger.Error().
			Err(err).
			Msg("Error shutting down")
	}
	server.database.Close()
}
func (server *SqadminServer) Run() {
	server.logger.Info().Str("server_address", server.addr).Msg("Server is starting")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		err := server.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.logger.Fatal().Err(err).Msg("Listening")
		}
	}()
	server.logger.Info().Msg("Ready")

	<-ctx.Done()
	stop() // Stop listening for signals
	server.logger.Info().Msg("Shutting down gracefully")
	server.Shutdown()
}
