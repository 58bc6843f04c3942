package department

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

func TestRegistry_AddAndSearch(t *testing.T) {
	r := NewRegistry(models.Emergency)
	assert.True(t, r.IsEmpty())

	require.NoError(t, r.AddPractitioner(models.NewPractitioner(7, "Dr. Kim", 45, models.Emergency)))
	require.NoError(t, r.AddPractitioner(models.NewPractitioner(3, "Dr. Park", 38, models.Emergency)))
	assert.Equal(t, 2, r.Len())

	ids := []int{}
	for _, p := range r.Practitioners() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{7, 3}, ids, "hiring order is kept")

	work, ok := r.SearchByID(3)
	require.True(t, ok)
	assert.True(t, work.IsEmpty())

	work2, ok := r.SearchByID(3)
	require.True(t, ok)
	assert.Same(t, work, work2, "each practitioner owns one work queue")

	_, ok = r.SearchByID(99)
	assert.False(t, ok)

	p, ok := r.Practitioner(7)
	require.True(t, ok)
	assert.Equal(t, "Dr. Kim", p.Name)
}

func TestRegistry_AddRejects(t *testing.T) {
	r := NewRegistry(models.ICU)
	require.NoError(t, r.AddPractitioner(models.NewPractitioner(1, "Dr. A", 40, models.ICU)))

	err := r.AddPractitioner(models.NewPractitioner(1, "Dr. B", 50, models.ICU))
	assert.ErrorIs(t, err, models.ErrDuplicateID)

	err = r.AddPractitioner(models.NewPractitioner(2, "Dr. C", 50, models.Surgical))
	assert.ErrorIs(t, err, models.ErrCategoryMismatch)

	assert.Equal(t, 1, r.Len())
}

func TestRegistry_TreatByID(t *testing.T) {
	r := NewRegistry(models.General)
	require.NoError(t, r.AddPractitioner(models.NewPractitioner(5, "Dr. Lim", 33, models.General)))

	_, err := r.TreatByID(5)
	assert.ErrorIs(t, err, models.ErrNothingToTreat)

	_, err = r.TreatByID(6)
	assert.ErrorIs(t, err, models.ErrInvalidSelection)

	work, _ := r.SearchByID(5)
	work.Enqueue(models.NewPatient(10, "X", 20, models.General))
	work.Enqueue(models.NewPatient(11, "Y", 21, models.General))
	assert.Equal(t, 2, r.Assigned())

	p, err := r.TreatByID(5)
	require.NoError(t, err)
	assert.Equal(t, 10, p.ID)
	assert.Equal(t, 1, work.Len())
	assert.Equal(t, []models.Roster{{Practitioner: models.NewPractitioner(5, "Dr. Lim", 33, models.General), Queued: 1}}, r.Roster())
}

func TestRegistry_Display(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(models.Pediatric)
	r.Display(&buf)
	assert.Equal(t, "No doctors in this department.\n", buf.String())

	buf.Reset()
	require.NoError(t, r.AddPractitioner(models.NewPractitioner(9, "Dr. Tan", 50, models.Pediatric)))
	r.Display(&buf)
	assert.Equal(t, "Dr. ID: 9 | Name: Dr. Tan | Age: 50 | Dept: Pediatric | Patients waiting: 0\n", buf.String())
}

func TestDirectory_TotalLookup(t *testing.T) {
	d := NewDirectory()
	for _, c := range models.Categories() {
		r, err := d.Department(c)
		require.NoError(t, err)
		assert.Equal(t, c, r.Category())
		assert.True(t, r.IsEmpty())
	}

	_, err := d.Department(models.Category(7))
	assert.ErrorIs(t, err, models.ErrUnknownCategory)

	seen := 0
	d.Each(func(*Registry) { seen++ })
	assert.Equal(t, models.CategoryCount, seen)
}
