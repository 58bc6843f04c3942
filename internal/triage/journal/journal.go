// Package journal appends lifecycle events to a MariaDB audit table. The
// journal is write-only; queues are never rebuilt from it.
package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/c14220110/poliklinik-triage/internal/triage/events"
)

const schema = `
	CREATE TABLE IF NOT EXISTS triage_event (
		id_event        CHAR(36)     NOT NULL PRIMARY KEY,
		event_type      VARCHAR(32)  NOT NULL,
		status          VARCHAR(16)  NULL,
		id_patient      INT          NULL,
		id_practitioner INT          NULL,
		category        VARCHAR(16)  NOT NULL,
		occurred_at     DATETIME(6)  NOT NULL
	)`

const insertEvent = `
	INSERT INTO triage_event
		(id_event, event_type, status, id_patient, id_practitioner, category, occurred_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

type Journal struct {
	DB *sql.DB
}

func New(db *sql.DB) *Journal {
	return &Journal{DB: db}
}

// EnsureSchema creates the event table when it does not exist yet.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	if _, err := j.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create triage_event: %w", err)
	}
	return nil
}

func (j *Journal) Publish(ctx context.Context, e events.Event) error {
	_, err := j.DB.ExecContext(ctx, insertEvent,
		e.ID.String(),
		e.Type,
		nullString(string(e.Status)),
		nullInt(e.PatientID),
		nullInt(e.PractitionerID),
		e.Category.String(),
		e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("journal %s %s: %w", e.Type, e.ID, err)
	}
	return nil
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
