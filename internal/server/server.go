package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	mwsvc "bjh.co.th/clinicops/internal/middleware"
	mwecho "github.com/labstack/echo/v4/middleware"

	"bjh.co.th/clinicops/internal/appointment"
	"bjh.co.th/clinicops/internal/callstats"
	"bjh.co.th/clinicops/internal/config"
	"bjh.co.th/clinicops/internal/demodata"
	"bjh.co.th/clinicops/internal/lead"
	"bjh.co.th/clinicops/internal/lookup"
	"bjh.co.th/clinicops/internal/postgres"
	"bjh.co.th/clinicops/internal/respcache"
	"bjh.co.th/clinicops/internal/revenue"
	"bjh.co.th/clinicops/internal/sheets"
	"bjh.co.th/clinicops/internal/visit"

	adminhttp "bjh.co.th/clinicops/internal/http/admin"
	apihttp "bjh.co.th/clinicops/internal/http/api"
)

type Server struct {
	Echo *echo.Echo
	HTTP *http.Server
	DB   *sqlx.DB
}

func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	//
	// Database
	//
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	srv, err := build(ctx, cfg, db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return srv, nil
}

func build(ctx context.Context, cfg *config.Config, db *sqlx.DB, logger *zap.Logger) (*Server, error) {
	if cfg.Migrate {
		if err := postgres.RunMigrations(db.DB, logger); err != nil {
			return nil, err
		}
	}

	// Load demo data if requested and there are no appointments yet
	if cfg.DemoMode {
		loaded, err := demodata.LoadIfEmpty(ctx, db)
		if err != nil {
			return nil, err
		}
		if loaded {
			logger.Info("demo data loaded")
		}
	}

	//
	// Google Sheets
	//
	var getter sheets.ValuesGetter
	if missing := cfg.Sheets.MissingSheetsVars(); len(missing) > 0 {
		logger.Warn("google sheets not configured", zap.Strings("missing", missing))
		getter = sheets.Unavailable(missing)
	} else {
		gc, err := sheets.NewGoogleClient(ctx, cfg.Sheets)
		if err != nil {
			return nil, fmt.Errorf("google sheets client: %w", err)
		}
		getter = gc
	}

	//
	// Response caches
	//
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := respcache.NewMetrics(reg)

	newCache := func(name string, ttl time.Duration) *respcache.Cache {
		return respcache.New(name, ttl,
			respcache.WithGrace(cfg.Cache.SweepGrace),
			respcache.WithMetrics(metrics),
			respcache.WithLogger(logger.Named("cache")),
		)
	}
	caches := apihttp.Caches{
		CRM:        newCache("crm-advanced", cfg.Cache.DatabaseTTL),
		Revenue:    newCache("n-clinic-db", cfg.Cache.DatabaseTTL),
		Film:       newCache("film-data", cfg.Cache.SheetsTTL),
		CallStatus: newCache("film-call-status", cfg.Cache.CallStatusTTL),
	}

	//
	// Domain services
	//
	appointmentSvc := appointment.NewService(db, logger.Named("appointment"))
	visitSvc := visit.NewService(db, appointmentSvc, logger.Named("visit"))
	leadSvc := lead.NewService(db, logger.Named("lead"))
	lookupSvc := lookup.NewService(db)
	revenueSvc := revenue.NewService(db)
	callStatsSvc := callstats.NewService(db, logger.Named("callstats"))
	sheetsReader := sheets.NewReader(getter, cfg.Sheets.SpreadsheetID, logger.Named("sheets"))

	//
	// Handlers
	//
	apiHandler := apihttp.NewHandler(
		appointmentSvc,
		visitSvc,
		leadSvc,
		lookupSvc,
		revenueSvc,
		callStatsSvc,
		sheetsReader,
		caches,
	)

	adminSvc := adminhttp.NewService(appointmentSvc, caches.CRM, caches.Revenue, caches.Film, caches.CallStatus)
	adminHandler := adminhttp.NewHandler(adminSvc)

	//
	// Echo
	//
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Health endpoints
	e.GET("/livez", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/readyz", func(c echo.Context) error {
		pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return c.String(http.StatusServiceUnavailable, "DB not ready")
		}
		return c.String(http.StatusOK, "Ready")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Middleware
	e.Use(mwsvc.RequestLogger(logger))
	e.Use(mwecho.Recover())
	e.Use(mwsvc.Version())

	// Dashboard API
	apiGroup := e.Group("/api")
	apihttp.RegisterRoutes(apiGroup, apiHandler)

	// Admin API
	adminGroup := apiGroup.Group("/admin")
	adminGroup.Use(mwsvc.AdminAPIKeyAuth(cfg.AdminAPIKey))
	adminhttp.RegisterRoutes(adminGroup, adminHandler)

	//
	// HTTP server
	//
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		Echo: e,
		HTTP: srv,
		DB:   db,
	}, nil
}
