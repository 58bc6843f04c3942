package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-triage/internal/triage/events"
	"github.com/c14220110/poliklinik-triage/internal/triage/facility"
	"github.com/c14220110/poliklinik-triage/internal/triage/metrics"
	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

const publishTimeout = 3 * time.Second

// TriageService is the single entry point of the console and the HTTP API.
// It runs one operation at a time against the facility, then records metrics,
// logs the outcome and publishes the lifecycle event.
type TriageService struct {
	mu       sync.Mutex
	facility *facility.Facility
	log      zerolog.Logger
	events   events.Publisher
	metrics  *metrics.Recorder
}

func NewTriageService(log zerolog.Logger, pub events.Publisher, rec *metrics.Recorder) *TriageService {
	if pub == nil {
		pub = events.Discard{}
	}
	if rec == nil {
		rec = metrics.NewRecorder()
	}
	return &TriageService{
		facility: facility.New(),
		log:      log.With().Str("component", "triage").Logger(),
		events:   pub,
		metrics:  rec,
	}
}

func (s *TriageService) Metrics() *metrics.Recorder {
	return s.metrics
}

func (s *TriageService) RegisterPatient(ctx context.Context, id int, name string, age int, category models.Category) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	p := models.NewPatient(id, name, age, category)
	err := s.facility.RegisterPatient(p)
	s.finish("register_patient", start, err, func(e *zerolog.Event) {
		e.Int("patient_id", id).Str("category", category.String())
	})
	if err != nil {
		return models.Patient{}, err
	}

	evt := events.New(events.TypePatientRegistered, models.StateRegistered, category)
	evt.PatientID = id
	s.publish(ctx, evt)
	return p, nil
}

func (s *TriageService) WithdrawPatient(ctx context.Context, id int) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	p, err := s.facility.WithdrawPatient(id)
	s.finish("withdraw_patient", start, err, func(e *zerolog.Event) {
		e.Int("patient_id", id)
	})
	if err != nil {
		return models.Patient{}, err
	}

	evt := events.New(events.TypePatientWithdrawn, models.StateWithdrawn, p.Category)
	evt.PatientID = p.ID
	s.publish(ctx, evt)
	return p, nil
}

func (s *TriageService) WaitingRoom(_ context.Context) []models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facility.WaitingRoom()
}

func (s *TriageService) PeekNextPatient(_ context.Context) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facility.PeekNextPatient()
}

func (s *TriageService) HirePractitioner(ctx context.Context, id int, name string, age int, category models.Category) (models.Practitioner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	p := models.NewPractitioner(id, name, age, category)
	err := s.facility.HirePractitioner(p)
	s.finish("hire_practitioner", start, err, func(e *zerolog.Event) {
		e.Int("practitioner_id", id).Str("category", category.String())
	})
	if err != nil {
		return models.Practitioner{}, err
	}

	evt := events.New(events.TypePractitionerHired, "", category)
	evt.PractitionerID = id
	s.publish(ctx, evt)
	return p, nil
}

func (s *TriageService) Practitioners(_ context.Context, category models.Category) ([]models.Roster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facility.Practitioners(category)
}

// AssignNextPatient routes the waiting-room head to the selected practitioner.
func (s *TriageService) AssignNextPatient(ctx context.Context, practitionerID int) (models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	a, err := s.facility.AssignNextPatient(practitionerID)
	s.finish("assign_patient", start, err, func(e *zerolog.Event) {
		e.Int("practitioner_id", practitionerID)
		if err == nil {
			e.Int("patient_id", a.Patient.ID).Str("category", a.Patient.Category.String()).Int("position", a.Position)
		}
	})
	if err != nil {
		return models.Assignment{}, err
	}

	evt := events.New(events.TypePatientAssigned, models.StateAssigned, a.Patient.Category)
	evt.PatientID = a.Patient.ID
	evt.PractitionerID = practitionerID
	s.publish(ctx, evt)
	return a, nil
}

// TreatPatient discharges the next patient of the selected practitioner.
func (s *TriageService) TreatPatient(ctx context.Context, category models.Category, practitionerID int) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()

	p, err := s.facility.TreatPatient(category, practitionerID)
	s.finish("treat_patient", start, err, func(e *zerolog.Event) {
		e.Str("category", category.String()).Int("practitioner_id", practitionerID)
		if err == nil {
			e.Int("patient_id", p.ID)
		}
	})
	if err != nil {
		return models.Patient{}, err
	}

	evt := events.New(events.TypePatientDischarged, models.StateDischarged, category)
	evt.PatientID = p.ID
	evt.PractitionerID = practitionerID
	s.publish(ctx, evt)
	return p, nil
}

func (s *TriageService) WorkQueue(_ context.Context, category models.Category, practitionerID int) ([]models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facility.WorkQueue(category, practitionerID)
}

func (s *TriageService) LocatePatient(_ context.Context, id int) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facility.LocatePatient(id)
}

func (s *TriageService) Snapshot(_ context.Context) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facility.Snapshot()
}

// DisplayWaitingRoom writes the waiting room listing to w.
func (s *TriageService) DisplayWaitingRoom(_ context.Context, w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facility.DisplayWaitingRoom(w)
}

// DisplayDepartment writes the practitioner listing of one department to w.
func (s *TriageService) DisplayDepartment(_ context.Context, category models.Category, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, err := s.facility.Department(category)
	if err != nil {
		return err
	}
	reg.Display(w)
	return nil
}

// finish records metrics and logs the outcome. Callers hold s.mu.
func (s *TriageService) finish(op string, start time.Time, err error, fields func(*zerolog.Event)) {
	result := ResultLabel(err)
	s.metrics.Observe(op, result, time.Since(start))
	s.metrics.SetQueues(s.facility.Snapshot())

	var e *zerolog.Event
	if err != nil {
		e = s.log.Warn().Err(err)
	} else {
		e = s.log.Info()
	}
	fields(e)
	e.Str("op", op).Str("result", result).Dur("latency", time.Since(start)).Msg("triage operation")
}

// publish ignores caller cancellation and is bounded by publishTimeout.
func (s *TriageService) publish(ctx context.Context, evt events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.Error().Err(err).Str("event", evt.Type).Str("event_id", evt.ID.String()).Msg("publish event failed")
	}
}

// ResultLabel names the error kind of err for metrics and logs.
func ResultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, models.ErrEmptyQueue):
		return "empty_queue"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrNoCapacity):
		return "no_capacity"
	case errors.Is(err, models.ErrNoPractitioners):
		return "no_practitioners"
	case errors.Is(err, models.ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, models.ErrNothingToTreat):
		return "nothing_to_treat"
	case errors.Is(err, models.ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, models.ErrCategoryMismatch):
		return "category_mismatch"
	case errors.Is(err, models.ErrUnknownCategory):
		return "unknown_category"
	default:
		return "error"
	}
}
