package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-triage/config"
	"github.com/c14220110/poliklinik-triage/internal/triage/controllers"
	"github.com/c14220110/poliklinik-triage/internal/triage/metrics"
	"github.com/c14220110/poliklinik-triage/ws"
)

// Init registers the triage API, the live feed and the metrics endpoint.
func Init(e *echo.Echo, cfg *config.Config, tc *controllers.TriageController, hub *ws.Hub, rec *metrics.Recorder) {
	e.Validator = controllers.NewRequestValidator()

	api := e.Group("/api")

	// Waiting room
	patients := api.Group("/patients")
	patients.POST("", tc.RegisterPatient)
	patients.GET("/waiting", tc.ListWaiting)
	patients.GET("/next", tc.PeekNext)
	patients.GET("/:id", tc.LocatePatient)
	patients.DELETE("/:id", tc.WithdrawPatient)

	// Departments
	practitioners := api.Group("/practitioners")
	practitioners.POST("", tc.HirePractitioner)
	practitioners.GET("", tc.ListPractitioners)
	practitioners.GET("/:category/:id/queue", tc.WorkQueue)

	// Routing and treatment
	api.POST("/assignments", tc.AssignNextPatient)
	api.POST("/treatments", tc.TreatPatient)

	api.GET("/dashboard", tc.Dashboard)

	e.GET("/ws", ws.ServeWS(hub, cfg.OriginAllowed))
	e.GET("/metrics", echo.WrapHandler(rec.Handler()))
}
