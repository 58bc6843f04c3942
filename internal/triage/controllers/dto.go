package controllers

// PatientRequest is the body of POST /api/patients.
type PatientRequest struct {
	ID       int    `json:"id" validate:"min=1,max=999999"`
	Name     string `json:"name" validate:"required,max=100"`
	Age      int    `json:"age" validate:"min=0,max=120"`
	Category string `json:"category" validate:"required"`
}

// PractitionerRequest is the body of POST /api/practitioners.
type PractitionerRequest struct {
	ID       int    `json:"id" validate:"min=1,max=999999"`
	Name     string `json:"name" validate:"required,max=100"`
	Age      int    `json:"age" validate:"min=22,max=100"`
	Category string `json:"category" validate:"required"`
}

type AssignRequest struct {
	PractitionerID int `json:"practitioner_id" validate:"min=1,max=999999"`
}

type TreatRequest struct {
	Category       string `json:"category" validate:"required"`
	PractitionerID int    `json:"practitioner_id" validate:"min=1,max=999999"`
}
