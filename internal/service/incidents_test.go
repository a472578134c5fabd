package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"roast_monitor/internal/models"
)

// fakeIncidentRepo is a minimal stub that satisfies repository.IncidentRepo.
type fakeIncidentRepo struct {
	gotCtx  context.Context
	gotFrom time.Time
	gotTo   time.Time
	gotKind string

	incidents []models.Incident
	err       error
	appendErr error

	appended []models.Incident
	calls    int
}

func (f *fakeIncidentRepo) List(ctx context.Context, from, to time.Time, kind string) ([]models.Incident, error) {
	f.calls++
	f.gotCtx = ctx
	f.gotFrom = from
	f.gotTo = to
	f.gotKind = kind
	return f.incidents, f.err
}

func (f *fakeIncidentRepo) Append(ctx context.Context, in models.Incident) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, in)
	return nil
}

func fixedZone(name string, offsetSec int) *time.Location {
	return time.FixedZone(name, offsetSec)
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(fixedZone("UTC+3", 3*3600), 2025, time.August, 1, 12, 34, 56),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

func Test_normalizeKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "empty stays empty", in: "", exp: ""},
		{name: "trim spaces", in: "  ERROR_EVENT ", exp: "ERROR_EVENT"},
		{name: "uppercase", in: "data_quality", exp: "DATA_QUALITY"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeKind(c.in); got != c.exp {
				t.Fatalf("normalizeKind(%q) = %q; want %q", c.in, got, c.exp)
			}
		})
	}
}

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	fromLocal := mustTimeIn(fixedZone("UTC+2", 2*3600), 2025, time.September, 10, 10, 0, 0)
	toUTC := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       LogFilter
		wantFrom time.Time
		wantTo   time.Time
		wantKind string
		wantErr  error
	}{
		{name: "all zero/empty ok", in: LogFilter{}},
		{
			name: "from after to -> error",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
			},
			wantErr: errInvalidTimeRange,
		},
		{
			name:     "normalize tz and kind",
			in:       LogFilter{From: fromLocal, To: toUTC, Kind: " protocol_anomaly "},
			wantFrom: time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC),
			wantTo:   toUTC,
			wantKind: "PROTOCOL_ANOMALY",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gotFrom, gotTo, gotKind, err := normalizeAndValidateFilter(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v; got %v", tc.wantErr, err)
			}
			if !gotFrom.Equal(tc.wantFrom) {
				t.Fatalf("from: got %v; want %v", gotFrom, tc.wantFrom)
			}
			if !gotTo.Equal(tc.wantTo) {
				t.Fatalf("to: got %v; want %v", gotTo, tc.wantTo)
			}
			if gotKind != tc.wantKind {
				t.Fatalf("kind: got %q; want %q", gotKind, tc.wantKind)
			}
		})
	}
}

func TestIncidentService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	frepo := &fakeIncidentRepo{incidents: []models.Incident{{ID: "1"}}}
	svc := NewIncidentService(frepo, nil)

	fromLocal := mustTimeIn(fixedZone("UTC+5", 5*3600), 2025, time.October, 1, 10, 0, 0)
	toLocal := mustTimeIn(fixedZone("UTC-2", -2*3600), 2025, time.October, 1, 12, 30, 0)

	out, err := svc.List(context.Background(), LogFilter{From: fromLocal, To: toLocal, Kind: "  error_event "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("unexpected incidents: %+v", out)
	}
	if frepo.calls != 1 {
		t.Fatalf("repo List should be called once, got %d", frepo.calls)
	}

	wantFrom := time.Date(2025, time.October, 1, 5, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, time.October, 1, 14, 30, 0, 0, time.UTC)
	if !frepo.gotFrom.Equal(wantFrom) || !frepo.gotTo.Equal(wantTo) {
		t.Fatalf("repo got [%v, %v]; want [%v, %v]", frepo.gotFrom, frepo.gotTo, wantFrom, wantTo)
	}
	if frepo.gotKind != "ERROR_EVENT" {
		t.Fatalf("repo gotKind=%q; want %q", frepo.gotKind, "ERROR_EVENT")
	}
}

func TestIncidentService_List_ValidationError(t *testing.T) {
	t.Parallel()

	frepo := &fakeIncidentRepo{}
	svc := NewIncidentService(frepo, nil)

	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange; got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.calls)
	}
}

func TestIncidentService_List_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &fakeIncidentRepo{err: errors.New("db down")}
	svc := NewIncidentService(frepo, nil)

	if _, err := svc.List(context.Background(), LogFilter{}); !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}

func TestIncidentService_Report(t *testing.T) {
	t.Parallel()

	frepo := &fakeIncidentRepo{}
	svc := NewIncidentService(frepo, nil)
	at := time.Date(2025, 5, 5, 5, 5, 5, 0, fixedZone("UTC+1", 3600))
	svc.now = func() time.Time { return at }

	svc.Report(context.Background(), " data_quality", "out-of-order sample on bean_temp", map[string]any{"x": 20.0})

	if len(frepo.appended) != 1 {
		t.Fatalf("expected 1 appended incident, got %d", len(frepo.appended))
	}
	got := frepo.appended[0]
	if got.ID == "" {
		t.Fatal("incident id should be generated")
	}
	if got.Kind != models.IncidentDataQuality {
		t.Fatalf("kind: got %q", got.Kind)
	}
	if !got.OccurredAt.Equal(at) || got.OccurredAt.Location() != time.UTC {
		t.Fatalf("occurred_at: got %v", got.OccurredAt)
	}
}

func TestIncidentService_ReportSwallowsStoreError(t *testing.T) {
	t.Parallel()

	svc := NewIncidentService(&fakeIncidentRepo{appendErr: errors.New("disk full")}, nil)

	// must not panic or block
	svc.Report(context.Background(), models.IncidentErrorEvent, "boom", nil)
}
