package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"go.uber.org/zap/zaptest"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/appointment"
	"bjh.co.th/clinicops/internal/callstats"
	"bjh.co.th/clinicops/internal/http/api"
	"bjh.co.th/clinicops/internal/lead"
	"bjh.co.th/clinicops/internal/lookup"
	"bjh.co.th/clinicops/internal/respcache"
	"bjh.co.th/clinicops/internal/revenue"
	"bjh.co.th/clinicops/internal/sheets"
	"bjh.co.th/clinicops/internal/testutil"
	"bjh.co.th/clinicops/internal/visit"
)

type fakeGetter struct {
	rows  [][]any
	err   error
	calls int
}

func (f *fakeGetter) Values(context.Context, string, string) ([][]any, error) {
	f.calls++
	return f.rows, f.err
}

type harness struct {
	e      *echo.Echo
	mock   sqlmock.Sqlmock
	sheet  *fakeGetter
	caches api.Caches
	now    time.Time
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithGetter(t, nil)
}

func newHarnessWithGetter(t *testing.T, getter sheets.ValuesGetter) *harness {
	t.Helper()
	db, mock := testutil.NewRegexpMockDB(t)
	logger := zaptest.NewLogger(t)

	hs := &harness{
		mock: mock,
		now:  time.Date(2025, 11, 25, 3, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return hs.now }

	if getter == nil {
		hs.sheet = &fakeGetter{}
		getter = hs.sheet
	}
	reader := sheets.NewReader(getter, "sheet-1", logger)
	reader.SetClock(clock)

	hs.caches = api.Caches{
		CRM:        respcache.New("crm-advanced", 30*time.Second, respcache.WithClock(clock)),
		Revenue:    respcache.New("n-clinic-db", 30*time.Second, respcache.WithClock(clock)),
		Film:       respcache.New("film-data", 20*time.Second, respcache.WithClock(clock)),
		CallStatus: respcache.New("film-call-status", 10*time.Second, respcache.WithClock(clock)),
	}

	appts := appointment.NewService(db, logger)
	h := api.NewHandler(
		appts,
		visit.NewService(db, appts, logger),
		lead.NewService(db, logger),
		lookup.NewService(db),
		revenue.NewService(db),
		callstats.NewService(db, logger, callstats.WithClock(clock)),
		reader,
		hs.caches,
	)
	h.SetClock(clock)

	hs.e = echo.New()
	api.RegisterRoutes(hs.e.Group("/api"), h)
	return hs
}

func (hs *harness) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	hs.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return out
}

func (hs *harness) expectProbe() {
	hs.mock.ExpectQuery(`information_schema\.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
}

func TestListAppointments(t *testing.T) {
	t.Run("returns envelope with data and timestamp", func(t *testing.T) {
		hs := newHarness(t)
		hs.expectProbe()
		hs.mock.ExpectQuery(regexp.QuoteMeta(`FROM "BJH-Server"."b_appointment" WHERE DATE("start_date") >= $1 AND "doctor_code" = $2`)).
			WithArgs("2025-11-01", "D1").
			WillReturnRows(sqlmock.NewRows([]string{"record_no", "code", "appoint_code"}).
				AddRow(int64(7), "CN1", "A-1"))

		rec := hs.do(http.MethodGet, "/api/appointments?from=2025-11-01&doctor_code=D1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body)
		}

		resp := decode(t, rec)
		if resp["success"] != true {
			t.Errorf("expected success, got %v", resp["success"])
		}
		if resp["timestamp"] != "2025-11-25T03:00:00Z" {
			t.Errorf("unexpected timestamp %v", resp["timestamp"])
		}
		data, _ := resp["data"].([]any)
		if len(data) != 1 {
			t.Fatalf("expected 1 appointment, got %v", resp["data"])
		}
		row := data[0].(map[string]any)
		if row["appoint_code"] != "A-1" || row["record_no"] != float64(7) {
			t.Errorf("unexpected row %v", row)
		}
		if _, ok := row["doctor_name"]; !ok {
			t.Error("normalised rows carry every field")
		}
	})

	t.Run("database error returns empty data", func(t *testing.T) {
		hs := newHarness(t)
		hs.expectProbe()
		hs.mock.ExpectQuery(`FROM "BJH-Server"\."b_appointment"`).
			WillReturnError(errors.New("connection reset"))

		rec := hs.do(http.MethodGet, "/api/appointments", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}
		resp := decode(t, rec)
		if resp["success"] != false {
			t.Errorf("expected success=false, got %v", resp["success"])
		}
		if !strings.Contains(resp["error"].(string), "connection reset") {
			t.Errorf("expected raw error text, got %v", resp["error"])
		}
		if data, ok := resp["data"].([]any); !ok || len(data) != 0 {
			t.Errorf("expected empty data list, got %v", resp["data"])
		}
	})
}

func TestCreateAppointmentRequiresAppointCode(t *testing.T) {
	hs := newHarness(t)

	rec := hs.do(http.MethodPost, "/api/customers/CN1/appointments", `{"name":"Somchai"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["error"] != "appoint_code is required" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestUpdateAppointmentIgnoresPathParams(t *testing.T) {
	hs := newHarness(t)
	hs.expectProbe()
	hs.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "BJH-Server"."b_appointment" SET "note" = $1 WHERE "appoint_code" = $2`)).
		WithArgs("bring x-ray", "A-1").
		WillReturnRows(sqlmock.NewRows([]string{"record_no", "code", "appoint_code", "note"}).
			AddRow(int64(3), "CN1", "A-1", "bring x-ray"))

	rec := hs.do(http.MethodPut, "/api/appointments/A-1", `{"note":"bring x-ray"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	if resp := decode(t, rec); resp["note"] != "bring x-ray" {
		t.Errorf("unexpected body %v", resp)
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	hs := newHarness(t)
	hs.expectProbe()
	hs.mock.ExpectQuery(`WHERE "appoint_code" = \$1 LIMIT 1`).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"record_no"}))

	rec := hs.do(http.MethodGet, "/api/appointments/NOPE", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["error"] != "appointment not found (NOPE)" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestDeleteAppointment(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     int
	}{
		{"deletes existing appointment", 1, http.StatusNoContent},
		{"unknown appoint_code is not found", 0, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := newHarness(t)
			hs.mock.ExpectExec(`DELETE FROM "BJH-Server"\."b_appointment"`).
				WithArgs("A-9").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			rec := hs.do(http.MethodDelete, "/api/appointments/A-9", "")
			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestLinkAppointmentVisitRequiresVN(t *testing.T) {
	hs := newHarness(t)

	rec := hs.do(http.MethodPut, "/api/appointments/A-1/visit", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestVisitRoutes(t *testing.T) {
	t.Run("customer without visits lists empty", func(t *testing.T) {
		hs := newHarness(t)
		hs.mock.ExpectQuery(`FROM "BJH-Server"\."b_visit"`).
			WithArgs("CN1").
			WillReturnRows(sqlmock.NewRows([]string{"record_no", "vn", "cn", "status"}))

		rec := hs.do(http.MethodGet, "/api/customers/CN1/visits", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("expected empty list, got %s", rec.Body)
		}
	})

	t.Run("missing visit is not found", func(t *testing.T) {
		hs := newHarness(t)
		hs.mock.ExpectQuery(`FROM "BJH-Server"\."b_visit"`).
			WithArgs("V-404").
			WillReturnRows(sqlmock.NewRows([]string{"record_no"}))

		rec := hs.do(http.MethodGet, "/api/visits/V-404", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("delete returns no content", func(t *testing.T) {
		hs := newHarness(t)
		hs.mock.ExpectExec(`DELETE FROM "BJH-Server"\."b_visit"`).
			WithArgs("V-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := hs.do(http.MethodDelete, "/api/visits/V-1", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
	})
}

func TestLeadSheet(t *testing.T) {
	hs := newHarness(t)
	hs.mock.ExpectQuery(`FROM "BJH-Server"\."bjh_all_leads"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "mystery"}).
			AddRow(int64(2), "นัด Consult", "x"))

	rec := hs.do(http.MethodGet, "/api/customer-data", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	resp := decode(t, rec)
	if resp["totalRecords"] != float64(1) {
		t.Errorf("expected totalRecords 1, got %v", resp["totalRecords"])
	}
	all := resp["data"].(map[string]any)["all_data"].([]any)
	header := all[0].([]any)
	if header[1] != "สถานะ" || header[2] != "mystery" {
		t.Errorf("unexpected header row %v", header)
	}
}

func TestApplyLeadAction(t *testing.T) {
	t.Run("invalid action", func(t *testing.T) {
		hs := newHarness(t)
		rec := hs.do(http.MethodPost, "/api/customer-data", `{"action":"archive","data":{"id":1}}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if resp := decode(t, rec); resp["error"] != "Invalid action" {
			t.Errorf("unexpected error %v", resp["error"])
		}
	})

	t.Run("update flushes calendar cache", func(t *testing.T) {
		hs := newHarness(t)
		hs.caches.CRM.Set("crm-advanced-all-all-all-all", &api.CalendarResponse{Success: true})
		hs.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "BJH-Server"."bjh_all_leads" SET "status" = $1, updated_at = NOW() WHERE id = $2 RETURNING *`)).
			WithArgs("นัดพร้อมทำ", int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(int64(5), "นัดพร้อมทำ"))

		rec := hs.do(http.MethodPost, "/api/customer-data", `{"action":"update","data":{"id":5,"สถานะ":"นัดพร้อมทำ"}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
		}
		resp := decode(t, rec)
		if resp["message"] != "Customer updated successfully" {
			t.Errorf("unexpected message %v", resp["message"])
		}
		if hs.caches.CRM.Len() != 0 {
			t.Error("expected calendar cache to be flushed after a write")
		}
	})
}

func TestLeadCalendarCaching(t *testing.T) {
	hs := newHarness(t)
	hs.mock.ExpectQuery(`FROM "BJH-Server"\."bjh_all_leads" WHERE 1=1`).
		WithArgs("2025-11-25").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "phone", "consult_date", "proposed_amount"}).
			AddRow(int64(9), "นัด Consult", "081-234-5678", "2025-11-25 00:00:00", "150,000"))

	target := "/api/crm-advanced?startDate=2025-11-25&endDate=2025-11-25"
	first := hs.do(http.MethodGet, target, "")
	if first.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", first.Code, first.Body)
	}
	if got := first.Header().Get("X-Cache-Status"); got != "MISS" {
		t.Errorf("expected MISS, got %q", got)
	}

	resp := decode(t, first)
	if resp["total"] != float64(1) || resp["source"] != "PostgreSQL Database" {
		t.Errorf("unexpected envelope %v", resp)
	}
	entry := resp["data"].([]any)[0].(map[string]any)
	if entry["displayDate"] != "2025-11-25" || entry["proposed_amount"] != float64(150000) || entry["phoneE164"] != "+66812345678" {
		t.Errorf("unexpected entry %v", entry)
	}
	filters := resp["debug"].(map[string]any)["filters"].(map[string]any)
	if filters["month"] != "all" || filters["startDate"] != "2025-11-25" {
		t.Errorf("unexpected debug filters %v", filters)
	}

	hs.now = hs.now.Add(10 * time.Second)
	second := hs.do(http.MethodGet, target, "")
	if got := second.Header().Get("X-Cache-Status"); got != "HIT" {
		t.Errorf("expected HIT within ttl, got %q", got)
	}
	if second.Body.String() != first.Body.String() {
		t.Error("cached response should be served unchanged")
	}
}

func TestLeadCalendarRejectsBadMonth(t *testing.T) {
	hs := newHarness(t)
	rec := hs.do(http.MethodGet, "/api/crm-advanced?month=13&year=2025", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestOptions(t *testing.T) {
	hs := newHarness(t)
	hs.mock.ExpectQuery(`FROM "BJH-Server"\."source_options"`).
		WillReturnRows(sqlmock.NewRows([]string{"value", "label"}).AddRow("Facebook", "Facebook"))

	rec := hs.do(http.MethodGet, "/api/source-options", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := decode(t, rec)["data"].([]any)
	if len(data) != 1 || data[0].(map[string]any)["label"] != "Facebook" {
		t.Errorf("unexpected options %v", data)
	}
}

func TestSalesStaleOnError(t *testing.T) {
	hs := newHarness(t)
	hs.mock.ExpectQuery(`FROM "BJH-Server"\."n_saleIncentive"`).
		WillReturnRows(sqlmock.NewRows([]string{"sale_code", "sale_date", "item_name", "proposed_amount", "contact_staff", "full_name"}).
			AddRow("S-1", "2025-11-20", "Lasik", int64(1000), "สา", "Sa Dee").
			AddRow("S-2", "2025-11-21", "Lasik", int64(2500), "สา", "Sa Dee"))
	hs.mock.ExpectQuery(`FROM "BJH-Server"\."n_saleIncentive"`).
		WillReturnError(errors.New("too many connections"))

	first := hs.do(http.MethodGet, "/api/n-clinic-db", "")
	if first.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", first.Code, first.Body)
	}
	resp := decode(t, first)
	if resp["total"] != float64(2) || resp["totalAmount"] != "3500" {
		t.Errorf("unexpected totals %v %v", resp["total"], resp["totalAmount"])
	}

	hs.now = hs.now.Add(31 * time.Second)
	second := hs.do(http.MethodGet, "/api/n-clinic-db", "")
	if second.Code != http.StatusOK {
		t.Fatalf("expected stale fallback, got %d", second.Code)
	}
	if got := second.Header().Get("X-Cache-Status"); got != "STALE" {
		t.Errorf("expected STALE, got %q", got)
	}
}

func TestPhoneCount(t *testing.T) {
	hs := newHarness(t)
	hs.mock.ExpectQuery(`COUNT\(DISTINCT ct\.customer_id\)`).
		WithArgs("2025-11-25").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	rec := hs.do(http.MethodGet, "/api/phone-count", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["count"] != float64(4) || resp["date"] != "2025-11-25" {
		t.Errorf("unexpected body %v", resp)
	}
}

func TestLogCallRequiresAgent(t *testing.T) {
	hs := newHarness(t)
	rec := hs.do(http.MethodPost, "/api/call-matrix", `{"customer_phone":"0812345678"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["error"] != "agent_id and start_time are required" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestCallMatrixRejectsBadDate(t *testing.T) {
	hs := newHarness(t)
	rec := hs.do(http.MethodGet, "/api/call-matrix?date=25/11/2025", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSheetsNotConfigured(t *testing.T) {
	hs := newHarnessWithGetter(t, sheets.Unavailable{"GOOGLE_SPREADSHEET_ID"})

	for _, target := range []string{"/api/surgery-schedule", "/api/google-sheets-film-data", "/api/google-sheets-film-call-status"} {
		t.Run(target, func(t *testing.T) {
			rec := hs.do(http.MethodGet, target, "")
			if rec.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected status 503, got %d", rec.Code)
			}
			missing, _ := decode(t, rec)["missing"].([]any)
			if len(missing) != 1 || missing[0] != "GOOGLE_SPREADSHEET_ID" {
				t.Errorf("expected missing var list, got %v", missing)
			}
		})
	}
}

func TestFilmData(t *testing.T) {
	t.Run("counts are cached per date", func(t *testing.T) {
		hs := newHarness(t)
		hs.sheet.rows = [][]any{
			{"ชื่อ", "ผู้ติดต่อ", "วันที่ได้นัด consult", "วันที่ได้นัดผ่าตัด"},
			{"ก", "สา", "25/11/2025", ""},
			{"ข", "มุก", "2025-11-25", "25/11/2025"},
			{"ค", "คนอื่น", "25/11/2025", ""},
		}

		first := hs.do(http.MethodGet, "/api/google-sheets-film-data", "")
		if first.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", first.Code, first.Body)
		}
		resp := decode(t, first)
		if resp["success"] != true || resp["date"] != "2025-11-25" {
			t.Errorf("unexpected envelope %v", resp)
		}
		if resp["totalConsults"] != float64(2) || resp["totalSurgeries"] != float64(1) {
			t.Errorf("unexpected totals %v / %v", resp["totalConsults"], resp["totalSurgeries"])
		}

		second := hs.do(http.MethodGet, "/api/google-sheets-film-data?date=2025-11-25", "")
		if got := second.Header().Get("X-Cache-Status"); got != "HIT" {
			t.Errorf("expected HIT for same date key, got %q", got)
		}
		if hs.sheet.calls != 1 {
			t.Errorf("expected one sheet read, got %d", hs.sheet.calls)
		}
	})

	t.Run("missing headers report available ones", func(t *testing.T) {
		hs := newHarness(t)
		hs.sheet.rows = [][]any{{"ชื่อ", "เบอร์โทร"}}

		rec := hs.do(http.MethodGet, "/api/google-sheets-film-data?date=2025-11-25", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}
		resp := decode(t, rec)
		if resp["error"] != "Required columns not found in Film data sheet" {
			t.Errorf("unexpected error %v", resp["error"])
		}
		if headers, _ := resp["availableHeaders"].([]any); len(headers) != 2 {
			t.Errorf("expected available headers, got %v", resp["availableHeaders"])
		}
	})
}

func TestFilmCallStatus(t *testing.T) {
	t.Run("outgoing calls are cached for ten seconds", func(t *testing.T) {
		hs := newHarness(t)
		hs.sheet.rows = [][]any{
			{"AS", "AT", "AU"},
			{"ชื่อ", "เบอร์โทร", "status_call"},
			{"สมชาย", "0812345678", sheets.StatusOutgoing},
			{"สมหญิง", "0899999999", "โทรแล้ว"},
		}

		first := hs.do(http.MethodGet, "/api/google-sheets-film-call-status", "")
		if first.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", first.Code, first.Body)
		}
		if got := first.Header().Get("X-Cache-Status"); got != "MISS" {
			t.Errorf("expected MISS, got %q", got)
		}
		resp := decode(t, first)
		if resp["success"] != true || resp["total"] != float64(1) {
			t.Errorf("unexpected envelope %v", resp)
		}
		data, _ := resp["data"].([]any)
		if len(data) != 1 {
			t.Fatalf("expected one call, got %v", resp["data"])
		}
		if call := data[0].(map[string]any); call["id"] != "film-2" || call["phone"] != "0812345678" {
			t.Errorf("unexpected call %v", call)
		}

		hs.now = hs.now.Add(9 * time.Second)
		if got := hs.do(http.MethodGet, "/api/google-sheets-film-call-status", "").Header().Get("X-Cache-Status"); got != "HIT" {
			t.Errorf("expected HIT within ttl, got %q", got)
		}
		hs.now = hs.now.Add(2 * time.Second)
		if got := hs.do(http.MethodGet, "/api/google-sheets-film-call-status", "").Header().Get("X-Cache-Status"); got != "MISS" {
			t.Errorf("expected MISS after ttl, got %q", got)
		}
		if hs.sheet.calls != 2 {
			t.Errorf("expected two sheet reads, got %d", hs.sheet.calls)
		}
	})

	t.Run("missing headers report available ones", func(t *testing.T) {
		hs := newHarness(t)
		hs.sheet.rows = [][]any{{"ชื่อ", "หมอ"}}

		rec := hs.do(http.MethodGet, "/api/google-sheets-film-call-status", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}
		resp := decode(t, rec)
		if resp["error"] != `Required columns "status_call" or "เบอร์โทร" not found in Film_dev sheet` {
			t.Errorf("unexpected error %v", resp["error"])
		}
		if headers, _ := resp["availableHeaders"].([]any); len(headers) != 2 {
			t.Errorf("expected available headers, got %v", resp["availableHeaders"])
		}
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Validation("bad"), http.StatusBadRequest},
		{"not found", apperr.NotFound("visit", "V1"), http.StatusNotFound},
		{"not configured", &apperr.MissingConfig{Vars: []string{"X"}}, http.StatusServiceUnavailable},
		{"unique violation", &pq.Error{Code: "23505"}, http.StatusConflict},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := api.StatusFor(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
