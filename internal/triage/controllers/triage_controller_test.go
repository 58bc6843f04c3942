package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/poliklinik-triage/internal/triage/services"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupEcho(t *testing.T) *echo.Echo {
	t.Helper()
	tc := NewTriageController(services.NewTriageService(zerolog.Nop(), nil, nil))
	e := echo.New()
	e.Validator = NewRequestValidator()
	api := e.Group("/api")
	api.POST("/patients", tc.RegisterPatient)
	api.GET("/patients/waiting", tc.ListWaiting)
	api.GET("/patients/next", tc.PeekNext)
	api.GET("/patients/:id", tc.LocatePatient)
	api.DELETE("/patients/:id", tc.WithdrawPatient)
	api.POST("/practitioners", tc.HirePractitioner)
	api.GET("/practitioners", tc.ListPractitioners)
	api.GET("/practitioners/:category/:id/queue", tc.WorkQueue)
	api.POST("/assignments", tc.AssignNextPatient)
	api.POST("/treatments", tc.TreatPatient)
	api.GET("/dashboard", tc.Dashboard)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.Equal(t, rec.Code, env.Status)
	return rec.Code, env
}

func TestTriageController_EmergencyFlow(t *testing.T) {
	e := setupEcho(t)

	code, env := do(t, e, http.MethodPost, "/api/patients", `{"id":101,"name":" A. Lee ","age":40,"category":"Emergency"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Patient A. Lee added to Waiting Room", env.Message)

	code, _ = do(t, e, http.MethodPost, "/api/practitioners", `{"id":7,"name":"Dr. Kim","age":52,"category":"1"}`)
	require.Equal(t, http.StatusCreated, code)

	code, env = do(t, e, http.MethodGet, "/api/patients/next", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":101,"name":"A. Lee","age":40,"category":"Emergency"}`, string(env.Data))

	code, env = do(t, e, http.MethodPost, "/api/assignments", `{"practitioner_id":7}`)
	require.Equal(t, http.StatusOK, code)
	var a struct {
		Position int `json:"position"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &a))
	assert.Equal(t, 1, a.Position)

	code, env = do(t, e, http.MethodGet, "/api/practitioners/emergency/7/queue", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":101,"name":"A. Lee","age":40,"category":"Emergency"}]`, string(env.Data))

	code, env = do(t, e, http.MethodGet, "/api/patients/101", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"patient_id":101,"state":"Assigned","category":"Emergency","practitioner_id":7}`, string(env.Data))

	code, _ = do(t, e, http.MethodPost, "/api/treatments", `{"category":"Emergency","practitioner_id":7}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, e, http.MethodGet, "/api/patients/101", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, e, http.MethodGet, "/api/patients/waiting", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestTriageController_ErrorMapping(t *testing.T) {
	e := setupEcho(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"empty waiting room", http.MethodPost, "/api/assignments", `{"practitioner_id":7}`, http.StatusConflict},
		{"peek empty", http.MethodGet, "/api/patients/next", "", http.StatusConflict},
		{"withdraw unknown", http.MethodDelete, "/api/patients/999", "", http.StatusNotFound},
		{"bad path id", http.MethodDelete, "/api/patients/abc", "", http.StatusBadRequest},
		{"id out of range", http.MethodPost, "/api/patients", `{"id":0,"name":"X","age":30,"category":"General"}`, http.StatusBadRequest},
		{"age out of range", http.MethodPost, "/api/patients", `{"id":1,"name":"X","age":121,"category":"General"}`, http.StatusBadRequest},
		{"blank name", http.MethodPost, "/api/patients", `{"id":1,"name":"   ","age":30,"category":"General"}`, http.StatusBadRequest},
		{"young doctor", http.MethodPost, "/api/practitioners", `{"id":1,"name":"Dr. Y","age":21,"category":"General"}`, http.StatusBadRequest},
		{"unknown category", http.MethodPost, "/api/patients", `{"id":1,"name":"X","age":30,"category":"Dental"}`, http.StatusUnprocessableEntity},
		{"malformed json", http.MethodPost, "/api/patients", `{"id":`, http.StatusBadRequest},
		{"treat empty department", http.MethodPost, "/api/treatments", `{"category":"ICU","practitioner_id":3}`, http.StatusConflict},
		{"missing category query", http.MethodGet, "/api/practitioners", "", http.StatusBadRequest},
		{"unknown category path", http.MethodGet, "/api/practitioners/9/1/queue", "", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := do(t, e, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestTriageController_AssignmentFailures(t *testing.T) {
	e := setupEcho(t)

	code, _ := do(t, e, http.MethodPost, "/api/patients", `{"id":5,"name":"M. Cruz","age":33,"category":"Surgical"}`)
	require.Equal(t, http.StatusCreated, code)

	code, env := do(t, e, http.MethodPost, "/api/assignments", `{"practitioner_id":7}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "No doctors available in this department", env.Message)

	code, _ = do(t, e, http.MethodPost, "/api/practitioners", `{"id":3,"name":"Dr. Ito","age":44,"category":"Surgical"}`)
	require.Equal(t, http.StatusCreated, code)

	code, env = do(t, e, http.MethodPost, "/api/assignments", `{"practitioner_id":99}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Invalid Doctor ID", env.Message)

	code, _ = do(t, e, http.MethodPost, "/api/treatments", `{"category":"Surgical","practitioner_id":3}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, e, http.MethodPost, "/api/patients", `{"id":5,"name":"Dup","age":20,"category":"General"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, env = do(t, e, http.MethodGet, "/api/practitioners?category=surgical", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":3,"name":"Dr. Ito","age":44,"category":"Surgical","queued":0}]`, string(env.Data))
}

func TestTriageController_Dashboard(t *testing.T) {
	e := setupEcho(t)
	do(t, e, http.MethodPost, "/api/patients", `{"id":1,"name":"A","age":30,"category":"General"}`)

	code, env := do(t, e, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, code)
	var snap struct {
		Waiting     int `json:"waiting"`
		Departments []struct {
			Category string `json:"category"`
		} `json:"departments"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, 1, snap.Waiting)
	assert.Len(t, snap.Departments, 5)
	assert.Equal(t, "General", snap.Departments[0].Category)
}
