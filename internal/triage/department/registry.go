// Package department keeps the practitioners of the facility grouped by
// category, each practitioner owning its own work queue.
package department

import (
	"fmt"
	"io"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
	"github.com/c14220110/poliklinik-triage/internal/triage/queue"
)

type member struct {
	practitioner models.Practitioner
	work         *queue.PatientQueue
}

// Registry holds the practitioners of one category in hiring order.
type Registry struct {
	category models.Category
	members  []member
	index    map[int]int // practitioner ID -> position in members
}

func NewRegistry(category models.Category) *Registry {
	return &Registry{
		category: category,
		index:    make(map[int]int),
	}
}

func (r *Registry) Category() models.Category {
	return r.category
}

// AddPractitioner appends p with a fresh, empty work queue.
func (r *Registry) AddPractitioner(p models.Practitioner) error {
	if p.Category != r.category {
		return fmt.Errorf("hire %d into %s: %w", p.ID, r.category, models.ErrCategoryMismatch)
	}
	if _, ok := r.index[p.ID]; ok {
		return fmt.Errorf("hire %d into %s: %w", p.ID, r.category, models.ErrDuplicateID)
	}
	r.index[p.ID] = len(r.members)
	r.members = append(r.members, member{practitioner: p, work: queue.New()})
	return nil
}

func (r *Registry) IsEmpty() bool {
	return len(r.members) == 0
}

func (r *Registry) Len() int {
	return len(r.members)
}

// Practitioners returns the practitioners in hiring order.
func (r *Registry) Practitioners() []models.Practitioner {
	out := make([]models.Practitioner, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m.practitioner)
	}
	return out
}

// Roster returns the practitioners with the length of their work queues.
func (r *Registry) Roster() []models.Roster {
	out := make([]models.Roster, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, models.Roster{Practitioner: m.practitioner, Queued: m.work.Len()})
	}
	return out
}

// Assigned counts the patients waiting in all work queues of this department.
func (r *Registry) Assigned() int {
	n := 0
	for _, m := range r.members {
		n += m.work.Len()
	}
	return n
}

// Practitioner looks up a practitioner by ID.
func (r *Registry) Practitioner(id int) (models.Practitioner, bool) {
	i, ok := r.index[id]
	if !ok {
		return models.Practitioner{}, false
	}
	return r.members[i].practitioner, true
}

// SearchByID returns the work queue of the practitioner with the given ID.
// It reports false instead of failing when no such practitioner exists here.
func (r *Registry) SearchByID(id int) (*queue.PatientQueue, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.members[i].work, true
}

// TreatByID discharges the head of the practitioner's work queue.
func (r *Registry) TreatByID(id int) (models.Patient, error) {
	work, ok := r.SearchByID(id)
	if !ok {
		return models.Patient{}, fmt.Errorf("treat by practitioner %d in %s: %w", id, r.category, models.ErrInvalidSelection)
	}
	p, err := work.Dequeue()
	if err != nil {
		return models.Patient{}, fmt.Errorf("treat by practitioner %d in %s: %w", id, r.category, models.ErrNothingToTreat)
	}
	return p, nil
}

// Display writes one line per practitioner, enough to pick one by ID.
func (r *Registry) Display(w io.Writer) {
	if r.IsEmpty() {
		fmt.Fprintln(w, "No doctors in this department.")
		return
	}
	for _, m := range r.members {
		fmt.Fprintf(w, "%s | Patients waiting: %d\n", m.practitioner, m.work.Len())
	}
}
