// Package facility composes the waiting room and the department directory and
// runs the routing and treatment protocols.
//
// A Facility is not safe for concurrent use; callers serialize access.
package facility

import (
	"fmt"
	"io"

	"github.com/c14220110/poliklinik-triage/internal/triage/department"
	"github.com/c14220110/poliklinik-triage/internal/triage/models"
	"github.com/c14220110/poliklinik-triage/internal/triage/queue"
)

type Facility struct {
	waiting   *queue.PatientQueue
	directory *department.Directory

	// active tracks where every patient still in the system is queued.
	active map[int]models.Location
}

func New() *Facility {
	return &Facility{
		waiting:   queue.New(),
		directory: department.NewDirectory(),
		active:    make(map[int]models.Location),
	}
}

// RegisterPatient puts a new patient at the tail of the waiting room.
func (f *Facility) RegisterPatient(p models.Patient) error {
	if !p.Category.Valid() {
		return fmt.Errorf("register patient %d: %w", p.ID, models.ErrUnknownCategory)
	}
	if _, ok := f.active[p.ID]; ok {
		return fmt.Errorf("register patient %d: %w", p.ID, models.ErrDuplicateID)
	}
	f.waiting.Enqueue(p)
	f.active[p.ID] = models.Location{PatientID: p.ID, State: models.StateRegistered, Category: p.Category}
	return nil
}

// WithdrawPatient removes a patient from the waiting room. Patients already
// assigned to a practitioner cannot be withdrawn.
func (f *Facility) WithdrawPatient(id int) (models.Patient, error) {
	p, err := f.waiting.RemoveByID(id)
	if err != nil {
		return models.Patient{}, err
	}
	delete(f.active, id)
	return p, nil
}

// WaitingRoom lists unassigned patients in arrival order.
func (f *Facility) WaitingRoom() []models.Patient {
	return f.waiting.Patients()
}

// DisplayWaitingRoom prints the waiting room in arrival order.
func (f *Facility) DisplayWaitingRoom(w io.Writer) {
	f.waiting.Display(w)
}

// PeekNextPatient returns the waiting-room head without removing it.
func (f *Facility) PeekNextPatient() (models.Patient, error) {
	p, err := f.waiting.Peek()
	if err != nil {
		return models.Patient{}, fmt.Errorf("peek waiting room: %w", err)
	}
	return p, nil
}

// HirePractitioner adds a practitioner to the department of its category.
func (f *Facility) HirePractitioner(p models.Practitioner) error {
	reg, err := f.directory.Department(p.Category)
	if err != nil {
		return err
	}
	return reg.AddPractitioner(p)
}

// Practitioners lists the department's practitioners with their queue sizes.
func (f *Facility) Practitioners(c models.Category) ([]models.Roster, error) {
	reg, err := f.directory.Department(c)
	if err != nil {
		return nil, err
	}
	return reg.Roster(), nil
}

// Department exposes a registry for display by the outer layers.
func (f *Facility) Department(c models.Category) (*department.Registry, error) {
	return f.directory.Department(c)
}

// AssignNextPatient moves the waiting-room head into the work queue of the
// chosen practitioner. On any failure nothing is moved.
func (f *Facility) AssignNextPatient(practitionerID int) (models.Assignment, error) {
	next, err := f.waiting.Peek()
	if err != nil {
		return models.Assignment{}, fmt.Errorf("assign next patient: %w", err)
	}
	reg, err := f.directory.Department(next.Category)
	if err != nil {
		return models.Assignment{}, err
	}
	if reg.IsEmpty() {
		return models.Assignment{}, fmt.Errorf("assign patient %d to %s: %w", next.ID, next.Category, models.ErrNoCapacity)
	}
	work, ok := reg.SearchByID(practitionerID)
	if !ok {
		return models.Assignment{}, fmt.Errorf("assign patient %d to practitioner %d in %s: %w",
			next.ID, practitionerID, next.Category, models.ErrInvalidSelection)
	}
	practitioner, _ := reg.Practitioner(practitionerID)

	// Take the current head rather than the peeked copy.
	p, err := f.waiting.Dequeue()
	if err != nil {
		return models.Assignment{}, fmt.Errorf("assign next patient: %w", err)
	}
	work.Enqueue(p)
	f.active[p.ID] = models.Location{
		PatientID:      p.ID,
		State:          models.StateAssigned,
		Category:       p.Category,
		PractitionerID: practitionerID,
	}
	return models.Assignment{Patient: p, Practitioner: practitioner, Position: work.Len()}, nil
}

// TreatPatient discharges the head of the chosen practitioner's work queue.
func (f *Facility) TreatPatient(c models.Category, practitionerID int) (models.Patient, error) {
	reg, err := f.directory.Department(c)
	if err != nil {
		return models.Patient{}, err
	}
	if reg.IsEmpty() {
		return models.Patient{}, fmt.Errorf("treat in %s: %w", c, models.ErrNoPractitioners)
	}
	p, err := reg.TreatByID(practitionerID)
	if err != nil {
		return models.Patient{}, err
	}
	delete(f.active, p.ID)
	return p, nil
}

// WorkQueue lists the patients assigned to one practitioner.
func (f *Facility) WorkQueue(c models.Category, practitionerID int) ([]models.Patient, error) {
	reg, err := f.directory.Department(c)
	if err != nil {
		return nil, err
	}
	work, ok := reg.SearchByID(practitionerID)
	if !ok {
		return nil, fmt.Errorf("work queue of practitioner %d in %s: %w", practitionerID, c, models.ErrInvalidSelection)
	}
	return work.Patients(), nil
}

// LocatePatient reports where an active patient is queued.
func (f *Facility) LocatePatient(id int) (models.Location, error) {
	loc, ok := f.active[id]
	if !ok {
		return models.Location{}, fmt.Errorf("locate patient %d: %w", id, models.ErrNotFound)
	}
	return loc, nil
}

func (f *Facility) Snapshot() models.Snapshot {
	s := models.Snapshot{Waiting: f.waiting.Len()}
	f.directory.Each(func(r *department.Registry) {
		s.Departments = append(s.Departments, models.DepartmentSnapshot{
			Category:      r.Category(),
			Practitioners: r.Len(),
			Assigned:      r.Assigned(),
		})
	})
	return s
}
