package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
	"github.com/c14220110/poliklinik-triage/internal/triage/services"
	"github.com/c14220110/poliklinik-triage/pkg/utils"
)

type TriageController struct {
	Service *services.TriageService
}

func NewTriageController(service *services.TriageService) *TriageController {
	return &TriageController{Service: service}
}

// RegisterPatient adds a patient to the tail of the waiting room.
func (tc *TriageController) RegisterPatient(c echo.Context) error {
	var req PatientRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return utils.JSON(c, http.StatusBadRequest, msg, nil)
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return respondError(c, err)
	}

	p, err := tc.Service.RegisterPatient(c.Request().Context(), req.ID, req.Name, req.Age, category)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusCreated, "Patient "+p.Name+" added to Waiting Room", p)
}

func (tc *TriageController) ListWaiting(c echo.Context) error {
	patients := tc.Service.WaitingRoom(c.Request().Context())
	return utils.JSON(c, http.StatusOK, "Waiting room retrieved successfully", patients)
}

func (tc *TriageController) PeekNext(c echo.Context) error {
	p, err := tc.Service.PeekNextPatient(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusOK, "Next patient retrieved successfully", p)
}

func (tc *TriageController) LocatePatient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return utils.JSON(c, http.StatusBadRequest, err.Error(), nil)
	}
	loc, err := tc.Service.LocatePatient(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusOK, "Patient located", loc)
}

// WithdrawPatient removes a patient who is still in the waiting room.
func (tc *TriageController) WithdrawPatient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return utils.JSON(c, http.StatusBadRequest, err.Error(), nil)
	}
	p, err := tc.Service.WithdrawPatient(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusOK, "Patient "+p.Name+" removed from Waiting Room", p)
}

func (tc *TriageController) HirePractitioner(c echo.Context) error {
	var req PractitionerRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return utils.JSON(c, http.StatusBadRequest, msg, nil)
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return respondError(c, err)
	}

	p, err := tc.Service.HirePractitioner(c.Request().Context(), req.ID, req.Name, req.Age, category)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusCreated, "Doctor "+p.Name+" hired", p)
}

func (tc *TriageController) ListPractitioners(c echo.Context) error {
	raw := c.QueryParam("category")
	if raw == "" {
		return utils.JSON(c, http.StatusBadRequest, "category query parameter is required", nil)
	}
	category, err := models.ParseCategory(raw)
	if err != nil {
		return respondError(c, err)
	}
	roster, err := tc.Service.Practitioners(c.Request().Context(), category)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusOK, "Doctors retrieved successfully", roster)
}

func (tc *TriageController) WorkQueue(c echo.Context) error {
	category, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return utils.JSON(c, http.StatusBadRequest, err.Error(), nil)
	}
	patients, err := tc.Service.WorkQueue(c.Request().Context(), category, id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusOK, "Work queue retrieved successfully", patients)
}

// AssignNextPatient routes the waiting-room head to the chosen doctor.
func (tc *TriageController) AssignNextPatient(c echo.Context) error {
	var req AssignRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return utils.JSON(c, http.StatusBadRequest, msg, nil)
	}
	a, err := tc.Service.AssignNextPatient(c.Request().Context(), req.PractitionerID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusOK, "Patient "+a.Patient.Name+" assigned to "+a.Practitioner.Name, a)
}

// TreatPatient discharges the next patient of the chosen doctor.
func (tc *TriageController) TreatPatient(c echo.Context) error {
	var req TreatRequest
	if msg := bindAndValidate(c, &req); msg != "" {
		return utils.JSON(c, http.StatusBadRequest, msg, nil)
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return respondError(c, err)
	}
	p, err := tc.Service.TreatPatient(c.Request().Context(), category, req.PractitionerID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.JSON(c, http.StatusOK, "Patient "+p.Name+" treated and discharged", p)
}

func (tc *TriageController) Dashboard(c echo.Context) error {
	return utils.JSON(c, http.StatusOK, "Dashboard retrieved successfully", tc.Service.Snapshot(c.Request().Context()))
}

// bindAndValidate returns a client-facing message when the body is rejected.
func bindAndValidate(c echo.Context, req interface{}) string {
	if err := c.Bind(req); err != nil {
		return "Invalid request payload"
	}
	switch r := req.(type) {
	case *PatientRequest:
		r.Name = strings.TrimSpace(r.Name)
	case *PractitionerRequest:
		r.Name = strings.TrimSpace(r.Name)
	}
	if err := c.Validate(req); err != nil {
		return validationMessage(err)
	}
	return ""
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	if id < models.MinID || id > models.MaxID {
		return 0, fmt.Errorf("%s must be between %d and %d", name, models.MinID, models.MaxID)
	}
	return id, nil
}

// respondError maps core error kinds onto HTTP statuses.
func respondError(c echo.Context, err error) error {
	status, message := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, models.ErrNotFound):
		status, message = http.StatusNotFound, "Patient not found"
	case errors.Is(err, models.ErrInvalidSelection):
		status, message = http.StatusUnprocessableEntity, "Invalid Doctor ID"
	case errors.Is(err, models.ErrUnknownCategory):
		status, message = http.StatusUnprocessableEntity, "Unknown category"
	case errors.Is(err, models.ErrEmptyQueue):
		status, message = http.StatusConflict, "Waiting room is empty"
	case errors.Is(err, models.ErrNoCapacity):
		status, message = http.StatusConflict, "No doctors available in this department"
	case errors.Is(err, models.ErrNoPractitioners):
		status, message = http.StatusConflict, "No doctors in this department"
	case errors.Is(err, models.ErrNothingToTreat):
		status, message = http.StatusConflict, "This doctor has no patients waiting"
	case errors.Is(err, models.ErrDuplicateID):
		status, message = http.StatusConflict, "ID is already in use"
	case errors.Is(err, models.ErrCategoryMismatch):
		status, message = http.StatusUnprocessableEntity, "Category does not match department"
	}
	return utils.JSON(c, status, message, nil)
}
