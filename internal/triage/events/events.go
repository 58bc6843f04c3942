// Package events describes patient lifecycle notifications and the publishers
// that fan them out to the websocket feed and the audit journal.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

const (
	TypePatientRegistered = "patient.registered"
	TypePatientWithdrawn  = "patient.withdrawn"
	TypePatientAssigned   = "patient.assigned"
	TypePatientDischarged = "patient.discharged"
	TypePractitionerHired = "practitioner.hired"
)

// Event is one lifecycle transition.
type Event struct {
	ID             uuid.UUID           `json:"id"`
	Type           string              `json:"type"`
	Status         models.PatientState `json:"status,omitempty"`
	PatientID      int                 `json:"patient_id,omitempty"`
	PractitionerID int                 `json:"practitioner_id,omitempty"`
	Category       models.Category     `json:"category"`
	OccurredAt     time.Time           `json:"occurred_at"`
}

func New(eventType string, status models.PatientState, category models.Category) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Status:     status,
		Category:   category,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
