package repository

import (
	"context"
	"database/sql"
	"time"

	"roast_monitor/internal/models"
)

type IncidentRepo interface {
	Append(ctx context.Context, in models.Incident) error
	List(ctx context.Context, from, to time.Time, kind string) ([]models.Incident, error)
}

type Repository struct {
	IncidentRepo IncidentRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		IncidentRepo: NewIncidentSQLite(db),
	}
}
