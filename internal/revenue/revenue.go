// Package revenue reports clinic sales joined with staff and lead data.
package revenue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/postgres"
)

type Sale struct {
	SaleCode       string  `db:"sale_code" json:"sale_code"`
	SaleDate       *string `db:"sale_date" json:"sale_date"`
	ItemName       *string `db:"item_name" json:"item_name"`
	ProposedAmount *int64  `db:"proposed_amount" json:"proposed_amount"`
	ContactStaff   *string `db:"contact_staff" json:"contact_staff"`
	FullName       string  `db:"full_name" json:"full_name"`
}

// Filter narrows sales by sale date and contact person. Month is only
// applied together with Year. ContactPerson "all" is the same as unset.
type Filter struct {
	Month         string `query:"month"`
	Year          string `query:"year"`
	ContactPerson string `query:"contact_person"`
}

// CacheKey identifies the filter in the response cache.
func (f Filter) CacheKey() string {
	return fmt.Sprintf("n-clinic-db-%s-%s-%s", orAll(f.Month), orAll(f.Year), orAll(f.ContactPerson))
}

// Echo returns the filter as reported back to clients.
func (f Filter) Echo() map[string]string {
	return map[string]string{
		"month":          orAll(f.Month),
		"year":           orAll(f.Year),
		"contact_person": orAll(f.ContactPerson),
	}
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

// Report is the filtered sales list with the sum of proposed amounts.
type Report struct {
	Sales []Sale
	Total decimal.Decimal
}

const salesSQL = `SELECT s.sale_code, TO_CHAR(s.sale_date::date, 'YYYY-MM-DD') AS sale_date, s.item_name, ` +
	`CASE WHEN bl.proposed_amount::text ~ '^[0-9,]+$' THEN ROUND(CAST(REPLACE(bl.proposed_amount::text, ',', '') AS NUMERIC))::INTEGER ELSE NULL END AS proposed_amount, ` +
	`n.nickname AS contact_staff, CONCAT(n.name, ' ', n.surname) AS full_name ` +
	`FROM %s AS s ` +
	`LEFT JOIN %s AS n ON s.emp_code = n.code ` +
	`LEFT JOIN %s AS bl ON s.emp_name = bl.contact_staff AND s.sale_date::date = bl.surgery_date::date ` +
	`WHERE DATE(s.sale_date) <= DATE(NOW()) AND bl.proposed_amount IS NOT NULL`

// BuildSalesQuery renders the sales query for f.
func BuildSalesQuery(f Filter) (string, []any, error) {
	var b strings.Builder
	fmt.Fprintf(&b, salesSQL,
		postgres.Table("n_saleIncentive"), postgres.Table("n_staff"), postgres.Table("bjh_all_leads"))

	var args []any
	if f.Year != "" {
		year, err := strconv.Atoi(f.Year)
		if err != nil || year < 1 {
			return "", nil, apperr.Validation("invalid year %q", f.Year)
		}
		if f.Month != "" {
			month, err := strconv.Atoi(f.Month)
			if err != nil || month < 1 || month > 12 {
				return "", nil, apperr.Validation("invalid month %q", f.Month)
			}
			args = append(args, month)
			fmt.Fprintf(&b, " AND EXTRACT(MONTH FROM s.sale_date::date) = $%d", len(args))
		}
		args = append(args, year)
		fmt.Fprintf(&b, " AND EXTRACT(YEAR FROM s.sale_date::date) = $%d", len(args))
	}

	if f.ContactPerson != "" && f.ContactPerson != "all" {
		args = append(args, f.ContactPerson)
		fmt.Fprintf(&b, " AND n.nickname = $%d", len(args))
	}

	b.WriteString(" ORDER BY s.sale_date::date ASC")
	return b.String(), args, nil
}

type Service struct {
	db *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// Sales lists sales up to today matching f.
func (s *Service) Sales(ctx context.Context, f Filter) (*Report, error) {
	q, args, err := BuildSalesQuery(f)
	if err != nil {
		return nil, err
	}

	sales := []Sale{}
	if err := s.db.SelectContext(ctx, &sales, q, args...); err != nil {
		return nil, fmt.Errorf("get sales: %w", err)
	}

	total := decimal.Zero
	for _, sale := range sales {
		if sale.ProposedAmount != nil {
			total = total.Add(decimal.NewFromInt(*sale.ProposedAmount))
		}
	}
	return &Report{Sales: sales, Total: total}, nil
}
