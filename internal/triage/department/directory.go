package department

import (
	"fmt"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

// Directory holds exactly one Registry per category, created up front.
type Directory struct {
	registries [models.CategoryCount]*Registry
}

func NewDirectory() *Directory {
	d := &Directory{}
	for _, c := range models.Categories() {
		d.registries[c] = NewRegistry(c)
	}
	return d
}

// Department returns the registry for c. Lookup of a valid category never fails.
func (d *Directory) Department(c models.Category) (*Registry, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("department lookup: %w: %d", models.ErrUnknownCategory, int(c))
	}
	return d.registries[c], nil
}

// Each calls fn for every department in category order.
func (d *Directory) Each(fn func(*Registry)) {
	for _, r := range d.registries {
		fn(r)
	}
}
