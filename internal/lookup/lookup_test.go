package lookup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/lookup"
	"bjh.co.th/clinicops/internal/testutil"
)

func TestOptions(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := lookup.NewService(db)

	mock.ExpectQuery(`SELECT "country_name" AS "value", "country_name" AS "label" FROM "BJH-Server"."country_options" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"value", "label"}).
			AddRow("ไทย", "ไทย").
			AddRow("Myanmar", "Myanmar"))

	got, err := svc.Options(context.Background(), lookup.Country)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(got) != 2 || got[0].Value != "ไทย" || got[1].Label != "Myanmar" {
		t.Errorf("unexpected options %+v", got)
	}
}

func TestOptionsEmptyTable(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := lookup.NewService(db)

	mock.ExpectQuery(`SELECT "source_name" AS "value", "source_name" AS "label" FROM "BJH-Server"."source_options" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"value", "label"}))

	got, err := svc.Options(context.Background(), lookup.Source)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestOptionsUnknownKind(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	svc := lookup.NewService(db)

	_, err := svc.Options(context.Background(), "doctor")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
