package postgres_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"bjh.co.th/clinicops/internal/config"
	"bjh.co.th/clinicops/internal/postgres"
)

func TestDSN(t *testing.T) {
	base := config.Database{
		Host:             "db.internal",
		Port:             5432,
		User:             "postgres",
		Name:             "postgres",
		SSLMode:          "disable",
		ConnectTimeout:   10 * time.Second,
		StatementTimeout: 30 * time.Second,
	}

	t.Run("builds key value form with timeouts", func(t *testing.T) {
		cfg := base
		cfg.Password = "it's secret"

		dsn, err := postgres.DSN(cfg)
		if err != nil {
			t.Fatalf("DSN: %v", err)
		}
		for _, want := range []string{
			"host=db.internal", "port=5432", "dbname=postgres", "sslmode=disable",
			`password='it\'s secret'`, "connect_timeout=10", "statement_timeout=30000",
		} {
			if !strings.Contains(dsn, want) {
				t.Errorf("expected %q in %q", want, dsn)
			}
		}
	})

	t.Run("adds missing parameters to url form", func(t *testing.T) {
		cfg := base
		cfg.URL = "postgres://u:p@db:5432/clinic?sslmode=require"

		dsn, err := postgres.DSN(cfg)
		if err != nil {
			t.Fatalf("DSN: %v", err)
		}
		if !strings.Contains(dsn, "sslmode=require") {
			t.Errorf("url sslmode should win, got %q", dsn)
		}
		if !strings.Contains(dsn, "statement_timeout=30000") || !strings.Contains(dsn, "connect_timeout=10") {
			t.Errorf("expected timeouts in %q", dsn)
		}
	})

	t.Run("rejects non postgres url", func(t *testing.T) {
		cfg := base
		cfg.URL = "mysql://u:p@db/clinic"
		if _, err := postgres.DSN(cfg); err == nil {
			t.Fatal("expected error for mysql scheme")
		}
	})
}

func TestTable(t *testing.T) {
	if got := postgres.Table("b_appointment"); got != `"BJH-Server"."b_appointment"` {
		t.Errorf("unexpected table name %s", got)
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	dup := &pq.Error{Code: "23505"}
	if !postgres.IsUniqueConstraintError(fmt.Errorf("create: %w", dup)) {
		t.Error("expected wrapped 23505 to be a unique violation")
	}
	if postgres.IsUniqueConstraintError(&pq.Error{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if postgres.IsUniqueConstraintError(errors.New("boom")) {
		t.Error("plain error is not a unique violation")
	}
}
