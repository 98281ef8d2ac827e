package visit

import "bjh.co.th/clinicops/internal/postgres"

const defaultStatus = "open"

var table = postgres.Table("b_visit")

const visitColumns = `record_no, vn, cn, doctor_code, room_code, start_date, end_date, cc, pi, pe, dx, note_result, status`

// Templates take the table name.
const getVisitSQL = `
SELECT ` + visitColumns + `
FROM %s
WHERE vn = $1
`

const listVisitsByCNSQL = `
SELECT ` + visitColumns + `
FROM %s
WHERE cn = $1
ORDER BY start_date DESC
`

const deleteVisitSQL = `
DELETE FROM %s
WHERE vn = $1
`
