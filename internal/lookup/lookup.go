// Package lookup serves the small option tables used by lead forms.
package lookup

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/postgres"
)

type Option struct {
	Value string `db:"value" json:"value"`
	Label string `db:"label" json:"label"`
}

// Kinds of option table, named by their prefix.
const (
	Country = "country"
	Product = "product"
	Source  = "source"
)

// Kinds lists every served option table in route order.
var Kinds = []string{Country, Product, Source}

var kinds = map[string]bool{
	Country: true,
	Product: true,
	Source:  true,
}

const optionsSQL = `
SELECT %[1]s AS "value", %[1]s AS "label"
FROM %[2]s
ORDER BY id
`

type Service struct {
	db *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// Options lists the entries of the <kind>_options table in insertion order.
func (s *Service) Options(ctx context.Context, kind string) ([]Option, error) {
	if !kinds[kind] {
		return nil, apperr.NotFound("option list", kind)
	}

	q := fmt.Sprintf(optionsSQL, postgres.QuoteIdent(kind+"_name"), postgres.Table(kind+"_options"))
	out := []Option{}
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("get %s options: %w", kind, err)
	}
	return out, nil
}
