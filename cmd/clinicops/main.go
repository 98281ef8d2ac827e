package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/config"
	"bjh.co.th/clinicops/internal/logging"
	"bjh.co.th/clinicops/internal/masker"
	"bjh.co.th/clinicops/internal/server"
	"bjh.co.th/clinicops/internal/version"
)

func main() {
	fmt.Println(version.Banner())

	//
	// Flags
	//
	configPath := flag.String("config", "config.yaml", "path to config file")
	routesFlag := flag.Bool("routes", false, "print routes and exit")
	migrateFlag := flag.Bool("migrate", false, "apply schema migrations before serving")
	demoFlag := flag.Bool("demo", false, "load sample data on an empty database (for demos)")
	flag.Parse()

	//
	// Load configuration
	//
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Migrate = cfg.Migrate || *migrateFlag
	cfg.DemoMode = *demoFlag

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := masker.LogConfigs(logger, cfg); err != nil {
		logger.Warn("log config", zap.Error(err))
	}

	//
	// Build server (Echo, DB, services, etc.)
	//
	srv, err := server.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}
	defer srv.DB.Close()

	//
	// Routes inspection mode
	//
	if *routesFlag {
		routes := srv.Echo.Routes()
		sort.Slice(routes, func(i, j int) bool {
			return routes[i].Path < routes[j].Path
		})

		for _, r := range routes {
			fmt.Printf("%-6s %s\n", r.Method, r.Path)
		}

		return
	}

	//
	// Normal server startup
	//
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("environment", cfg.Environment))
		if err := srv.Echo.StartServer(srv.HTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Echo.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
