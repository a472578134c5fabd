package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"roast_monitor/internal/logger"
	"roast_monitor/internal/models"
	"roast_monitor/internal/repository"

	"github.com/google/uuid"
)

type IncidentService struct {
	repo repository.IncidentRepo
	log  *logger.Logger
	now  func() time.Time
}

func NewIncidentService(repo repository.IncidentRepo, log *logger.Logger) *IncidentService {
	if log == nil {
		log = logger.Nop()
	}
	return &IncidentService{repo: repo, log: log, now: time.Now}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// Report stores an incident. Storage failures are logged, never returned.
func (s *IncidentService) Report(ctx context.Context, kind, description string, metadata any) {
	in := models.Incident{
		ID:          uuid.NewString(),
		OccurredAt:  s.now().UTC(),
		Kind:        normalizeKind(kind),
		Description: description,
		Metadata:    metadata,
	}
	if err := s.repo.Append(ctx, in); err != nil {
		s.log.Errorw("incident_store_failed", "kind", in.Kind, "description", description, "err", err)
		return
	}
	s.log.Debugw("incident_recorded", "id", in.ID, "kind", in.Kind)
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeKind trims spaces and uppercases the incident kind.
func normalizeKind(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}
	return from, to, normalizeKind(f.Kind), nil
}

func (s *IncidentService) List(ctx context.Context, f LogFilter) ([]models.Incident, error) {
	from, to, kind, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, kind)
}
