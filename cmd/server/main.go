package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chattyhq/chatty/internal/api"
	"github.com/chattyhq/chatty/internal/config"
	"github.com/chattyhq/chatty/internal/database"
	"github.com/chattyhq/chatty/internal/server"
	"github.com/chattyhq/chatty/internal/stats"
	_ "github.com/lib/pq"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

var (
	addr           string
	dsn            string
	allowedOrigins stringSliceFlag
)

func main() {
	flag.StringVar(&addr, "addr", "", "server address (overrides CHATTY_SERVER_ADDR)")
	flag.StringVar(&dsn, "dsn", "", "database connection string (overrides CHATTY_DATABASE_DSN)")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	logger := log.New(os.Stderr, "[chatty] ", log.LstdFlags)

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("config:", err)
	}
	if addr != "" {
		cfg.ServerAddr = addr
	}
	if dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if len(allowedOrigins) > 0 {
		cfg.AllowedOrigins = allowedOrigins
	}

	dbConn, err := database.NewPgChattyRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close:", err)
		}
	}()

	if err := dbConn.Migrate(); err != nil {
		logger.Fatal("migrate:", err)
	}

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)

	registry := server.NewRoomRegistry()
	statsUpdater.RegisterGauge("NumActiveRooms", registry.NumRooms)

	dispatcher := server.NewDispatcher(logger, registry, statsUpdater)

	srv := api.NewChattyApp(mux, logger, dispatcher, dbConn, statsUpdater, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("stopping client connections...")
	dispatcher.Shutdown()

	logger.Println("shutdown complete")
}
