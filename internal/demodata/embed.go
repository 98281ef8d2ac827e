// Package demodata provides sample data for demo deployments.
package demodata

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bjh.co.th/clinicops/internal/postgres"
)

//go:embed sample.sql
var sampleSQL embed.FS

// Load inserts demo data into the database.
// This should only be called after migrations.
func Load(ctx context.Context, db *sqlx.DB) error {
	data, err := sampleSQL.ReadFile("sample.sql")
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, string(data))
	return err
}

// LoadIfEmpty loads the demo data only when no appointment exists yet, so an
// existing deployment is never touched. It reports whether data was loaded.
func LoadIfEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var n int
	q := "SELECT COUNT(*) FROM " + postgres.Table("b_appointment")
	if err := db.GetContext(ctx, &n, q); err != nil {
		return false, fmt.Errorf("count appointments: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := Load(ctx, db); err != nil {
		return false, fmt.Errorf("load demo data: %w", err)
	}
	return true, nil
}
