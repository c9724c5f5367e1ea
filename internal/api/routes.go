package api

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/inferloop/mlcanary/internal/api/handlers"
	"github.com/inferloop/mlcanary/internal/api/middleware"
	"github.com/inferloop/mlcanary/internal/controller"
)

// Router holds the API handlers
type Router struct {
	predictHandler *handlers.PredictHandler
	adminHandler   *handlers.AdminHandler
	statusHandler  *handlers.StatusHandler
}

// NewRouter creates the API router for a controller
func NewRouter(ctrl *controller.Controller, version string) *Router {
	return &Router{
		predictHandler: handlers.NewPredictHandler(ctrl),
		adminHandler:   handlers.NewAdminHandler(ctrl),
		statusHandler:  handlers.NewStatusHandler(ctrl, version),
	}
}

// SetupRoutes registers all routes and middleware on a mux router
func (router *Router) SetupRoutes(logger *logrus.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))

	// Service endpoints
	r.HandleFunc("/", router.statusHandler.Root).Methods("GET")
	r.HandleFunc("/health", router.statusHandler.Health).Methods("GET")

	// Prediction endpoint
	r.HandleFunc("/predict", router.predictHandler.Predict).Methods("POST")

	// Admin endpoints
	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/status", router.statusHandler.Status).Methods("GET")
	admin.HandleFunc("/deploy-canary", router.adminHandler.DeployCanary).Methods("POST")
	admin.HandleFunc("/rollback-canary", router.adminHandler.RollbackCanary).Methods("POST")
	admin.HandleFunc("/promote-canary", router.adminHandler.PromoteCanary).Methods("POST")
	admin.HandleFunc("/toggle-slowdown", router.adminHandler.ToggleSlowdown).Methods("POST")
	admin.HandleFunc("/check-canary-health", router.adminHandler.CheckCanaryHealth).Methods("GET")

	return r
}
