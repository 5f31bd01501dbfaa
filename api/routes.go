package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.NotFound(handlers.fallbackHandler.notFound())
	r.MethodNotAllowed(handlers.fallbackHandler.methodNotAllowed())

	r.Get("/health", handlers.healthHandler.getHealth())

	// Renovation project endpoints
	r.Post("/api/renovation-projects", handlers.renovationProjectHandler.createRenovationProject())
	r.Get("/api/renovation-projects", handlers.renovationProjectHandler.getAllRenovationProjects())
	r.Get("/api/renovation-projects/user/{userId}", handlers.renovationProjectHandler.getUserRenovationProjects())

	// Builder endpoints
	r.Post("/api/builders", handlers.builderHandler.createBuilder())
	r.Get("/api/builders", handlers.builderHandler.getBuilders())
	r.Get("/api/builders/{id}", handlers.builderHandler.getBuilder())

	r.Get("/api/dashboard/user/{userId}", handlers.dashboardHandler.getUserDashboard())
}

type fallbackHandler struct {
	responder Responder
}

func (h fallbackHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	}
}

func (h fallbackHandler) methodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	}
}
