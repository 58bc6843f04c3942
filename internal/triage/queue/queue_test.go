package queue

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

func patient(id int) models.Patient {
	return models.NewPatient(id, "P", 30, models.General)
}

func drainIDs(t *testing.T, q *PatientQueue) []int {
	t.Helper()
	var ids []int
	for !q.IsEmpty() {
		p, err := q.Dequeue()
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

func TestPatientQueue_FIFO(t *testing.T) {
	q := New()
	for _, id := range []int{5, 3, 9, 1} {
		q.Enqueue(patient(id))
	}
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, []int{5, 3, 9, 1}, drainIDs(t, q))
	assert.True(t, q.IsEmpty())
}

func TestPatientQueue_InterleavedFIFO(t *testing.T) {
	q := New()
	q.Enqueue(patient(1))
	q.Enqueue(patient(2))
	p, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	q.Enqueue(patient(3))
	assert.Equal(t, []int{2, 3}, drainIDs(t, q))
}

func TestPatientQueue_EmptyErrors(t *testing.T) {
	q := New()
	_, err := q.Dequeue()
	assert.ErrorIs(t, err, models.ErrEmptyQueue)
	_, err = q.Peek()
	assert.ErrorIs(t, err, models.ErrEmptyQueue)

	var zero PatientQueue
	assert.True(t, zero.IsEmpty())
	_, err = zero.Dequeue()
	assert.ErrorIs(t, err, models.ErrEmptyQueue)
}

func TestPatientQueue_PeekDoesNotRemove(t *testing.T) {
	q := New()
	q.Enqueue(patient(42))
	p, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 42, p.ID)
	assert.Equal(t, 1, q.Len())
}

func TestPatientQueue_RemoveByID(t *testing.T) {
	tests := []struct {
		name   string
		ids    []int
		remove int
		want   []int
	}{
		{"head", []int{1, 2, 3}, 1, []int{2, 3}},
		{"middle", []int{1, 2, 3}, 2, []int{1, 3}},
		{"tail", []int{1, 2, 3}, 3, []int{1, 2}},
		{"only", []int{7}, 7, nil},
		{"first of duplicates", []int{4, 8, 4}, 4, []int{8, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New()
			for _, id := range tt.ids {
				q.Enqueue(patient(id))
			}
			p, err := q.RemoveByID(tt.remove)
			require.NoError(t, err)
			assert.Equal(t, tt.remove, p.ID)
			assert.Equal(t, tt.want, drainIDs(t, q))
		})
	}
}

func TestPatientQueue_RemoveByIDMissing(t *testing.T) {
	q := New()
	_, err := q.RemoveByID(999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	q.Enqueue(patient(1))
	_, err = q.RemoveByID(2)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 1, q.Len())
}

func TestPatientQueue_PatientsIsCopy(t *testing.T) {
	q := New()
	q.Enqueue(patient(1))
	snap := q.Patients()
	snap[0].ID = 100
	p, _ := q.Peek()
	assert.Equal(t, 1, p.ID)
	assert.True(t, q.Contains(1))
	assert.False(t, q.Contains(100))
}

func TestPatientQueue_Display(t *testing.T) {
	var buf bytes.Buffer
	q := New()
	q.Display(&buf)
	assert.Equal(t, "Queue is empty.\n", buf.String())

	buf.Reset()
	q.Enqueue(models.NewPatient(101, "A. Lee", 40, models.Emergency))
	q.Enqueue(models.NewPatient(102, "B. Ong", 7, models.Pediatric))
	q.Display(&buf)
	assert.Equal(t,
		"1. ID: 101 | Name: A. Lee | Age: 40 | Case: Emergency\n"+
			"2. ID: 102 | Name: B. Ong | Age: 7 | Case: Pediatric\n",
		buf.String())
	assert.Equal(t, 2, q.Len())
}
