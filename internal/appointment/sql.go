package appointment

import "bjh.co.th/clinicops/internal/postgres"

const tableName = "b_appointment"

var table = postgres.Table(tableName)

// baseColumns exist on every deployment, in select order.
var baseColumns = []string{
	"record_no",
	"code",
	"appoint_code",
	"register_date",
	"start_date",
	"end_date",
	"prefix",
	"name",
	"surname",
	"nickname",
	"display_name",
	"mobilephone",
	"email",
	"activity",
	"note",
	"doctor_code",
	"doctor_name",
	"dest_code",
	"dest_name",
	"organize",
	"bind_code",
	"bind_date",
}

// optionalColumns are probed at runtime before use.
var optionalColumns = []string{"vn"}

const probeColumnsSQL = `
SELECT column_name
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2 AND column_name = ANY($3::text[])
`

// Templates take the select list and table name.
const listByCNSQL = `SELECT %s FROM %s WHERE "code" = $1 ORDER BY "start_date" DESC`

const getByCodeSQL = `SELECT %s FROM %s WHERE "appoint_code" = $1 LIMIT 1`

const deleteByCodeSQL = `DELETE FROM %s WHERE "appoint_code" = $1`

const linkVisitSQL = `UPDATE %s SET "vn" = $1 WHERE "appoint_code" = $2`
