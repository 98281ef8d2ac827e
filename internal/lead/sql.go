package lead

import "bjh.co.th/clinicops/internal/postgres"

var table = postgres.Table("bjh_all_leads")

// Statuses that place a lead on the calendar.
const (
	StatusConsult = "นัด Consult"
	StatusSurgery = "นัดพร้อมทำ"
)

// Templates take the table name.
const listAllLeadsSQL = `SELECT * FROM %s ORDER BY id DESC`

const deleteLeadSQL = `DELETE FROM %s WHERE id = $1`

const calendarSelectSQL = `SELECT id, appointment_time, status, customer_name, phone, interested_product, doctor, contact_staff, proposed_amount, star_flag, country, note, surgery_date, consult_date FROM %s WHERE 1=1`

const calendarOrderSQL = ` ORDER BY CASE WHEN status = 'นัด Consult' THEN consult_date::date WHEN status = 'นัดพร้อมทำ' THEN surgery_date::date END ASC, appointment_time ASC`
