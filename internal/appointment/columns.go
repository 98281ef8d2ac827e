package appointment

import (
	"context"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/postgres"
)

// columnCache resolves the select list once per process. A schema change
// made after the first probe is not seen until restart.
type columnCache struct {
	once    sync.Once
	columns []string
}

func (c *columnCache) get(ctx context.Context, db *sqlx.DB, logger *zap.Logger) []string {
	c.once.Do(func() {
		c.columns = probeColumns(context.WithoutCancel(ctx), db, logger)
	})
	return c.columns
}

// probeColumns returns the base columns plus whichever optional columns the
// deployed table has. If the probe fails the optional columns are treated as
// absent.
func probeColumns(ctx context.Context, db *sqlx.DB, logger *zap.Logger) []string {
	cols := append([]string(nil), baseColumns...)

	var found []string
	err := db.SelectContext(ctx, &found, probeColumnsSQL, postgres.Schema, tableName, pq.Array(optionalColumns))
	if err != nil {
		logger.Warn("unable to inspect optional columns; continuing without them",
			zap.String("table", tableName),
			zap.Strings("columns", optionalColumns),
			zap.Error(err),
		)
		return cols
	}

	available := make(map[string]bool, len(found))
	for _, name := range found {
		available[strings.ToLower(name)] = true
	}
	for _, name := range optionalColumns {
		if available[strings.ToLower(name)] {
			cols = append(cols, name)
		}
	}
	return cols
}

func hasColumn(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}

func selectList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = postgres.QuoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}
