package models

import "fmt"

// Practitioner is a doctor working in exactly one department.
// Category is fixed at hiring and decides the department.
type Practitioner struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Category Category `json:"category"`
}

func NewPractitioner(id int, name string, age int, category Category) Practitioner {
	return Practitioner{ID: id, Name: name, Age: age, Category: category}
}

func (p Practitioner) String() string {
	return fmt.Sprintf("Dr. ID: %d | Name: %s | Age: %d | Dept: %s", p.ID, p.Name, p.Age, p.Category)
}

// Roster is a practitioner together with the size of its work queue.
type Roster struct {
	Practitioner
	Queued int `json:"queued"`
}

// Assignment is the result of routing the waiting-room head to a practitioner.
type Assignment struct {
	Patient      Patient      `json:"patient"`
	Practitioner Practitioner `json:"practitioner"`
	Position     int          `json:"position"`
}

// DepartmentSnapshot summarizes one department for the dashboard.
type DepartmentSnapshot struct {
	Category      Category `json:"category"`
	Practitioners int      `json:"practitioners"`
	Assigned      int      `json:"assigned"`
}

// Snapshot summarizes the whole facility.
type Snapshot struct {
	Waiting     int                  `json:"waiting"`
	Departments []DepartmentSnapshot `json:"departments"`
}
