package models

import "time"

// Incident kinds.
const (
	IncidentErrorEvent      = "ERROR_EVENT"
	IncidentProtocolAnomaly = "PROTOCOL_ANOMALY"
	IncidentDataQuality     = "DATA_QUALITY"
	IncidentCommandFailed   = "COMMAND_FAILED"
)

// Incident is one entry of the session's incident log.
type Incident struct {
	ID          string    `json:"id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Kind        string    `json:"kind"`        // ERROR_EVENT | PROTOCOL_ANOMALY | DATA_QUALITY | COMMAND_FAILED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
