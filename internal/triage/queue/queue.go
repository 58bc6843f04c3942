// Package queue holds the arrival-ordered patient queues used for the waiting
// room and for every practitioner's work queue.
package queue

import (
	"fmt"
	"io"
	"slices"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

// PatientQueue is a FIFO of patients. The zero value is an empty queue.
type PatientQueue struct {
	items []models.Patient
}

func New() *PatientQueue {
	return &PatientQueue{}
}

// Enqueue appends p at the tail.
func (q *PatientQueue) Enqueue(p models.Patient) {
	q.items = append(q.items, p)
}

// Dequeue removes and returns the head.
func (q *PatientQueue) Dequeue() (models.Patient, error) {
	if len(q.items) == 0 {
		return models.Patient{}, models.ErrEmptyQueue
	}
	head := q.items[0]
	q.items[0] = models.Patient{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return head, nil
}

// Peek returns the head without removing it.
func (q *PatientQueue) Peek() (models.Patient, error) {
	if len(q.items) == 0 {
		return models.Patient{}, models.ErrEmptyQueue
	}
	return q.items[0], nil
}

// RemoveByID removes the first patient with the given ID, scanning in arrival
// order. The remaining patients keep their relative order.
func (q *PatientQueue) RemoveByID(id int) (models.Patient, error) {
	i := q.indexOf(id)
	if i < 0 {
		return models.Patient{}, fmt.Errorf("remove patient %d: %w", id, models.ErrNotFound)
	}
	p := q.items[i]
	q.items = slices.Delete(q.items, i, i+1)
	return p, nil
}

func (q *PatientQueue) Contains(id int) bool {
	return q.indexOf(id) >= 0
}

func (q *PatientQueue) indexOf(id int) int {
	return slices.IndexFunc(q.items, func(p models.Patient) bool { return p.ID == id })
}

func (q *PatientQueue) IsEmpty() bool {
	return len(q.items) == 0
}

func (q *PatientQueue) Len() int {
	return len(q.items)
}

// Patients returns a copy of the queue in arrival order.
func (q *PatientQueue) Patients() []models.Patient {
	out := make([]models.Patient, len(q.items))
	copy(out, q.items)
	return out
}

// Display writes one line per patient in arrival order.
func (q *PatientQueue) Display(w io.Writer) {
	if q.IsEmpty() {
		fmt.Fprintln(w, "Queue is empty.")
		return
	}
	for i, p := range q.items {
		fmt.Fprintf(w, "%d. %s\n", i+1, p)
	}
}
