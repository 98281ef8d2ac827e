// Package postgres opens the shared connection pool and owns the schema
// migrations for the "BJH-Server" tables.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"bjh.co.th/clinicops/internal/config"
)

// DSN builds the lib/pq connection string. Timeouts travel as connection
// parameters so every pooled connection carries them.
func DSN(cfg config.Database) (string, error) {
	connectSecs := strconv.Itoa(int(cfg.ConnectTimeout / time.Second))
	statementMs := strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)

	if cfg.URL != "" {
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("parse database url: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
		}
		q := u.Query()
		if q.Get("sslmode") == "" && cfg.SSLMode != "" {
			q.Set("sslmode", cfg.SSLMode)
		}
		if q.Get("connect_timeout") == "" && cfg.ConnectTimeout > 0 {
			q.Set("connect_timeout", connectSecs)
		}
		if q.Get("statement_timeout") == "" && cfg.StatementTimeout > 0 {
			q.Set("statement_timeout", statementMs)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	parts := []string{
		"host=" + quoteValue(cfg.Host),
		"port=" + strconv.Itoa(cfg.Port),
		"user=" + quoteValue(cfg.User),
		"dbname=" + quoteValue(cfg.Name),
		"sslmode=" + quoteValue(cfg.SSLMode),
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+quoteValue(cfg.Password))
	}
	if cfg.ConnectTimeout > 0 {
		parts = append(parts, "connect_timeout="+connectSecs)
	}
	if cfg.StatementTimeout > 0 {
		parts = append(parts, "statement_timeout="+statementMs)
	}
	return strings.Join(parts, " "), nil
}

// quoteValue escapes a key/value DSN value the way libpq expects.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// Open connects the process-wide pool and verifies it with a ping bounded by
// the connect timeout. The caller owns Close.
func Open(ctx context.Context, cfg config.Database) (*sqlx.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(min(cfg.MaxConns, 5))
	db.SetConnMaxIdleTime(cfg.IdleTimeout)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Table returns the schema-qualified, quoted name of a clinic table.
func Table(name string) string {
	return QuoteIdent(Schema) + "." + QuoteIdent(name)
}
