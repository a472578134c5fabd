package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"roast_monitor/internal/models"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// timeLayout sorts lexically, so range filters work on the text column.
const timeLayout = "2006-01-02 15:04:05.000"

type IncidentSQLite struct {
	db *sql.DB
}

func NewIncidentSQLite(db *sql.DB) *IncidentSQLite { return &IncidentSQLite{db: db} }

// Append inserts an incident. Empty ID and zero OccurredAt are filled in.
func (r *IncidentSQLite) Append(ctx context.Context, in models.Incident) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now().UTC()
	}

	var metaPtr *string
	if in.Metadata != nil {
		if b, err := json.Marshal(in.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO incidents (id, occurred_at, kind, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`,
		in.ID,
		in.OccurredAt.UTC().Format(timeLayout),
		strings.ToUpper(strings.TrimSpace(in.Kind)),
		in.Description,
		metaPtr,
	)
	return err
}

// List returns incidents in [from, to] (inclusive, zero means open) of the
// given kind (empty means any), oldest first.
func (r *IncidentSQLite) List(ctx context.Context, from, to time.Time, kind string) ([]models.Incident, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(timeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(timeLayout))
	}
	if kind = strings.ToUpper(strings.TrimSpace(kind)); kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, kind)
	}

	q := `SELECT id, occurred_at, kind, message, meta FROM incidents`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Incident, 0, 64)
	for rows.Next() {
		var (
			in      models.Incident
			at      string
			metaStr sql.NullString
		)
		if err := rows.Scan(&in.ID, &at, &in.Kind, &in.Description, &metaStr); err != nil {
			return nil, err
		}
		if in.OccurredAt, err = time.ParseInLocation(timeLayout, at, time.UTC); err != nil {
			return nil, err
		}

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				in.Metadata = v
			} else {
				in.Metadata = metaStr.String
			}
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
