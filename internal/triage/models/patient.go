package models

import "fmt"

// Input bounds the console and HTTP layers validate before calling the core.
const (
	MinID              = 1
	MaxID              = 999999
	MinPatientAge      = 0
	MaxPatientAge      = 120
	MinPractitionerAge = 22
	MaxPractitionerAge = 100
)

// Patient is a person under care.
// A Patient is never modified after registration; identity is the ID.
type Patient struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Category Category `json:"category"`
}

func NewPatient(id int, name string, age int, category Category) Patient {
	return Patient{ID: id, Name: name, Age: age, Category: category}
}

func (p Patient) String() string {
	return fmt.Sprintf("ID: %d | Name: %s | Age: %d | Case: %s", p.ID, p.Name, p.Age, p.Category)
}

// PatientState is the lifecycle position of a patient.
type PatientState string

const (
	StateRegistered PatientState = "Registered"
	StateAssigned   PatientState = "Assigned"
	StateDischarged PatientState = "Discharged"
	StateWithdrawn  PatientState = "Withdrawn"
)

// Location tells where an active patient currently waits.
type Location struct {
	PatientID      int          `json:"patient_id"`
	State          PatientState `json:"state"`
	Category       Category     `json:"category"`
	PractitionerID int          `json:"practitioner_id,omitempty"`
}
