package api

import "github.com/craftly-living/backend/errs"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	renovationProjectHandler renovationProjectHandler
	builderHandler           builderHandler
	dashboardHandler         dashboardHandler
	healthHandler            healthHandler
	fallbackHandler          fallbackHandler
}

// ErrorResponse is the body of every non-2xx response. Details lists the
// offending fields of a rejected payload.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details []errs.FieldError `json:"details,omitempty"`
}
