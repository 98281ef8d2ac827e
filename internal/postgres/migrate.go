package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/GuiaBolso/darwin"
	"go.uber.org/zap"
)

// Schema is the Postgres schema every clinic table lives in.
const Schema = "BJH-Server"

// defineMigrations returns a slice of database migrations
// Each migration is defined in a separate row (versioned by major db release)
// comments must only appear after sql on a line and cannot span lines (comments are stripped before checksum calc)
// *NEVER* change/remove a step once released! (because a checksum of the script is saved with the migration)
//
// Every step is IF NOT EXISTS so the migrations can run against the
// production schema, which predates this service.
func defineMigrations() []darwin.Migration {
	m := []darwin.Migration{

		{Version: 1.00, Description: "Create Schema 'BJH-Server'", Script: `
		CREATE SCHEMA IF NOT EXISTS "BJH-Server";`},

		{Version: 1.01, Description: "Create Table 'b_appointment'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."b_appointment" (
			record_no BIGSERIAL PRIMARY KEY,
			code VARCHAR(64) NOT NULL DEFAULT '',
			appoint_code VARCHAR(64) NOT NULL UNIQUE,
			register_date TIMESTAMP,
			start_date TIMESTAMP,
			end_date TIMESTAMP,
			prefix VARCHAR(32),
			name VARCHAR(255),
			surname VARCHAR(255),
			nickname VARCHAR(255),
			display_name VARCHAR(255),
			mobilephone VARCHAR(64),
			email VARCHAR(255),
			activity VARCHAR(255),
			note TEXT,
			doctor_code VARCHAR(64),
			doctor_name VARCHAR(255),
			dest_code VARCHAR(64),
			dest_name VARCHAR(255),
			organize VARCHAR(255),
			bind_code VARCHAR(64),
			bind_date TIMESTAMP
		);`},

		{Version: 1.02, Description: "Create Index 'idx_appointment_code'", Script: `
		CREATE INDEX IF NOT EXISTS idx_appointment_code ON "BJH-Server"."b_appointment" (code);`},

		{Version: 1.03, Description: "Create Index 'idx_appointment_start_date'", Script: `
		CREATE INDEX IF NOT EXISTS idx_appointment_start_date ON "BJH-Server"."b_appointment" (start_date ASC NULLS LAST);`},

		{Version: 1.04, Description: "Create Table 'b_visit'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."b_visit" (
			record_no BIGSERIAL PRIMARY KEY,
			vn VARCHAR(36) NOT NULL UNIQUE,
			cn VARCHAR(64) NOT NULL,
			doctor_code VARCHAR(64),
			room_code VARCHAR(64),
			start_date TIMESTAMP,
			end_date TIMESTAMP,
			cc TEXT,
			pi TEXT,
			pe TEXT,
			dx TEXT,
			note_result TEXT,
			status VARCHAR(32) NOT NULL DEFAULT 'open'
		);`},

		{Version: 1.05, Description: "Create Index 'idx_visit_cn'", Script: `
		CREATE INDEX IF NOT EXISTS idx_visit_cn ON "BJH-Server"."b_visit" (cn);`},

		{Version: 1.06, Description: "Create Table 'bjh_all_leads'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."bjh_all_leads" (
			id SERIAL PRIMARY KEY,
			status TEXT, source TEXT, interested_product TEXT, doctor TEXT, contact_staff TEXT,
			customer_name TEXT, phone TEXT, note TEXT, last_followup TEXT, next_followup TEXT,
			consult_date DATE, surgery_date DATE, appointment_time TEXT, got_contact_date TEXT,
			booked_consult_date TEXT, booked_surgery_date TEXT, proposed_amount TEXT, customer_code TEXT,
			star_flag TEXT, country TEXT, car_call_time TEXT, lat TEXT, long TEXT, photo_note TEXT,
			gender TEXT, age TEXT, occupation TEXT, from_province TEXT, travel_method TEXT,
			contact_prefer_date TEXT, contact_prefer_time TEXT, free_program TEXT, event_id TEXT,
			html_link TEXT, ical_uid TEXT, log TEXT, doc_calendar TEXT, doc_event_id TEXT,
			doc_html_link TEXT, doc_ical_uid TEXT, line_note TEXT, line_doctor_note TEXT, ivr TEXT,
			transfer_to TEXT, status_call TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`},

		{Version: 1.07, Description: "Create Table 'country_options'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."country_options" (
			id SERIAL PRIMARY KEY,
			country_name VARCHAR(255) NOT NULL UNIQUE
		);`},

		{Version: 1.08, Description: "Create Table 'product_options'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."product_options" (
			id SERIAL PRIMARY KEY,
			product_name VARCHAR(255) NOT NULL UNIQUE
		);`},

		{Version: 1.09, Description: "Create Table 'source_options'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."source_options" (
			id SERIAL PRIMARY KEY,
			source_name VARCHAR(255) NOT NULL UNIQUE
		);`},

		{Version: 1.10, Description: "Create Table 'n_staff'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."n_staff" (
			code VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255),
			surname VARCHAR(255),
			nickname VARCHAR(255)
		);`},

		{Version: 1.11, Description: "Create Table 'n_saleIncentive'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."n_saleIncentive" (
			sale_code VARCHAR(64) PRIMARY KEY,
			sale_date TIMESTAMP NOT NULL,
			item_name VARCHAR(255),
			emp_code VARCHAR(64),
			emp_name VARCHAR(255)
		);`},

		{Version: 1.12, Description: "Create Table 'agents'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."agents" (
			agent_id VARCHAR(16) PRIMARY KEY,
			agent_name VARCHAR(255) NOT NULL DEFAULT ''
		);`},

		{Version: 1.13, Description: "Create Table 'hourly_call_stats'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."hourly_call_stats" (
			date DATE NOT NULL,
			hour_slot VARCHAR(8) NOT NULL,
			agent_id VARCHAR(16) NOT NULL REFERENCES "BJH-Server"."agents" (agent_id),
			outgoing_calls INTEGER NOT NULL DEFAULT 0,
			incoming_calls INTEGER NOT NULL DEFAULT 0,
			successful_calls INTEGER NOT NULL DEFAULT 0,
			total_duration_seconds INTEGER NOT NULL DEFAULT 0,
			CONSTRAINT pk_hourly_call_stats PRIMARY KEY (date, hour_slot, agent_id)
		);`},

		{Version: 1.14, Description: "Create Table 'call_logs'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."call_logs" (
			id BIGSERIAL PRIMARY KEY,
			agent_id VARCHAR(16) NOT NULL,
			customer_phone VARCHAR(32),
			customer_name VARCHAR(255),
			call_type VARCHAR(16) NOT NULL DEFAULT 'outgoing',
			call_status VARCHAR(16) NOT NULL DEFAULT 'answered',
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ,
			duration_seconds INTEGER,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`},

		{Version: 1.15, Description: "Create Table 'fb_tags'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."fb_tags" (
			id SERIAL PRIMARY KEY,
			name VARCHAR(64) NOT NULL UNIQUE
		);`},

		{Version: 1.16, Description: "Create Table 'fb_customer_tags'", Script: `
		CREATE TABLE IF NOT EXISTS "BJH-Server"."fb_customer_tags" (
			customer_id VARCHAR(64) NOT NULL,
			tag_id INTEGER NOT NULL REFERENCES "BJH-Server"."fb_tags" (id) ON DELETE CASCADE,
			assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT pk_fb_customer_tags PRIMARY KEY (customer_id, tag_id)
		);`},

		// Deployments created before 2.00 have no visit link column; the
		// appointment repository probes for it at runtime.
		{Version: 2.00, Description: "Add Column 'b_appointment.vn'", Script: `
		ALTER TABLE "BJH-Server"."b_appointment" ADD COLUMN IF NOT EXISTS vn VARCHAR(36);`},
	}
	return m
}

// changes returns a user-friendly display of database version changes
func changes(v1, v2 float64) string {
	if v1 != v2 {
		return fmt.Sprintf("DB Version: %.2f (migrated from %.2f to %.2f)", v2, v1, v2)
	}
	return fmt.Sprintf("DB Version: %.2f", v1)
}

// currentVersion reads from migration table to get the latest version and number of steps applied
func currentVersion(db *sql.DB) (count int, ver float64, err error) {
	// might not have any migrations yet...
	s := `SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'darwin_migrations';`
	err = db.QueryRow(s).Scan(&count)
	if err != nil || count == 0 {
		return 0, 0, err
	}

	s = `SELECT COUNT(*), COALESCE(MAX(version), 0) FROM darwin_migrations;`
	err = db.QueryRow(s).Scan(&count, &ver)
	return count, ver, err
}

// minifiedMigrations returns our migrations with minified scripts so comments or formatting changes
// will not generate a new checksum
func minifiedMigrations() []darwin.Migration {
	migrations := defineMigrations()
	for i := range migrations {
		migrations[i].Script = minify(migrations[i].Script)
	}
	return migrations
}

// minify strips comments and collapses whitespace. Case is preserved because
// the schema name is a quoted identifier.
func minify(script string) string {
	b := strings.Builder{}
	s := strings.ReplaceAll(script, "/*", "--")
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		if i := strings.Index(line, "--"); i != -1 {
			line = line[0:i]
		}
		b.WriteString(strings.TrimSpace(line) + "\n")
	}
	result := strings.TrimSpace(strings.NewReplacer("\t", " ", "\n", " ").Replace(b.String()))
	before := 0
	for len(result) != before {
		before = len(result)
		result = strings.ReplaceAll(result, "  ", " ")
	}
	return strings.TrimSpace(result)
}

// progress returns the steps attempted during this migration
func progress(ch <-chan darwin.MigrationInfo) string {
	var b strings.Builder

	for info := range ch {
		_, _ = fmt.Fprintf(&b, "v%.2f: \"%s\" (%s) Error: %v\n",
			info.Migration.Version, info.Migration.Description, info.Status.String(), info.Error)
	}
	return b.String()
}

// SchemaScript returns the migration definitions as a string for display (without comments)
func SchemaScript() string {
	var b strings.Builder

	schema := defineMigrations()
	for _, m := range schema {
		_, _ = fmt.Fprintf(&b, "-- %s (%.2f)\n%s\n\n", m.Description, m.Version, minify(m.Script))
	}
	return b.String()
}

// RunMigrations applies all migrations to an already-open *sql.DB.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	count, v1, err := currentVersion(db)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}

	migrations := minifiedMigrations()
	if count == len(migrations) && v1 == migrations[count-1].Version {
		logger.Info("database schema is current", zap.String("version", fmt.Sprintf("%.2f", v1)))
		return nil // already up to date
	}

	// setup for the migrations
	driver := darwin.NewGenericDriver(db, darwin.PostgresDialect{})
	infoChan := make(chan darwin.MigrationInfo, len(migrations))
	d := darwin.New(driver, migrations, infoChan)

	// perform the migrations
	var v2 float64
	if err := d.Migrate(); err != nil {
		close(infoChan)
		_, v2, _ = currentVersion(db)
		prog := progress(infoChan)
		logger.Error("migration failed",
			zap.Float64("from", v1),
			zap.Float64("to", v2),
			zap.String("progress", prog),
			zap.Error(err),
		)
		return fmt.Errorf("migration error: %w\n%s", err, prog)
	}
	close(infoChan)

	_, v2, err = currentVersion(db)
	if err != nil {
		return err
	}

	logger.Info(changes(v1, v2))
	return nil
}
