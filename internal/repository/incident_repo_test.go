package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"roast_monitor/internal/models"
	"roast_monitor/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goccy/go-json"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

const selectIncidents = `SELECT id, occurred_at, kind, message, meta FROM incidents`

var incidentColumns = []string{"id", "occurred_at", "kind", "message", "meta"}

func TestAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer sqlDB.Close()

	repo := NewIncidentSQLite(sqlDB)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO incidents (id, occurred_at, kind, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "DATA_QUALITY", "out-of-order sample on bean_temp", `{"x":20}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Append(ctx(t), models.Incident{
		Kind:        "  data_quality ",
		Description: "out-of-order sample on bean_temp",
		Metadata:    map[string]any{"x": 20},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_KeepsGivenIDAndTime(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer sqlDB.Close()

	at := time.Date(2025, 6, 1, 8, 0, 0, 250e6, time.FixedZone("CEST", 2*3600))
	mock.ExpectExec("INSERT INTO incidents").
		WithArgs("id-1", "2025-06-01 06:00:00.250", "ERROR_EVENT", "boom", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewIncidentSQLite(sqlDB).Append(ctx(t), models.Incident{
		ID: "id-1", OccurredAt: at, Kind: models.IncidentErrorEvent, Description: "boom",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectExec("INSERT INTO incidents").
		WillReturnError(errors.New("down"))

	err = NewIncidentSQLite(sqlDB).Append(ctx(t), models.Incident{Kind: "error_event", Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer sqlDB.Close()

	js, _ := json.Marshal(map[string]any{"series": "bean_temp"})
	rows := sqlmock.NewRows(incidentColumns).
		AddRow("1", "2025-01-01 10:00:00.000", "DATA_QUALITY", "m1", string(js)).
		AddRow("2", "2025-01-01 11:00:00.000", "ERROR_EVENT", "m2", nil).
		AddRow("3", "2025-01-01 12:00:00.000", "PROTOCOL_ANOMALY", "m3", "{not json")

	mock.ExpectQuery(regexp.QuoteMeta(selectIncidents + ` ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := NewIncidentSQLite(sqlDB).List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3, got %d", len(got))
	}
	if want := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC); !got[0].OccurredAt.Equal(want) {
		t.Fatalf("occurred_at: got %v, want %v", got[0].OccurredAt, want)
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
	if got[2].Metadata != "{not json" {
		t.Fatalf("malformed meta should be kept raw, got %#v", got[2].Metadata)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer sqlDB.Close()

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := selectIncidents + ` WHERE occurred_at >= ? AND occurred_at <= ? AND kind = ? ORDER BY occurred_at ASC`
	rows := sqlmock.NewRows(incidentColumns).
		AddRow("2", "2025-01-01 11:00:00.000", "COMMAND_FAILED", "b", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2025-01-01 11:00:00.000", "2025-01-01 12:00:00.000", "COMMAND_FAILED").
		WillReturnRows(rows)

	got, err := NewIncidentSQLite(sqlDB).List(ctx(t), from, to, " command_failed ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestList_BadTimestamp(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer sqlDB.Close()

	rows := sqlmock.NewRows(incidentColumns).AddRow("x", "yesterday", "DATA_QUALITY", "msg", nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectIncidents + ` ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	if _, err := NewIncidentSQLite(sqlDB).List(ctx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestIncidentSQLite_RoundTripInMemory(t *testing.T) {
	sqlDB, err := db.InitDB("file:incident_roundtrip?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer sqlDB.Close()

	repo := NewRepository(sqlDB).IncidentRepo
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, kind := range []string{models.IncidentErrorEvent, models.IncidentDataQuality, models.IncidentDataQuality} {
		err := repo.Append(ctx(t), models.Incident{
			OccurredAt:  base.Add(time.Duration(i) * time.Minute),
			Kind:        kind,
			Description: "incident",
		})
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	got, err := repo.List(ctx(t), base.Add(30*time.Second), time.Time{}, "data_quality")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if !got[0].OccurredAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("unexpected first incident time %v", got[0].OccurredAt)
	}
}
