package api

import (
	"net/http"

	"github.com/craftly-living/backend/database"
	"github.com/craftly-living/backend/matching"
	"github.com/rs/zerolog/log"
)

type dashboardHandler struct {
	responder Responder
	store     database.Storage
	matcher   *matching.Matcher
}

func newDashboardHandler(store database.Storage, matcher *matching.Matcher) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		store:     store,
		matcher:   matcher,
	}
}

// getUserDashboard returns a user's projects with their display budget and
// matched contractors.
func (h dashboardHandler) getUserDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUserID(r)
		if err != nil {
			h.responder.WriteError(w, err, "")
			return
		}

		projects, err := h.store.GetRenovationProjectsByUser(r.Context(), &userID)
		if err != nil {
			h.responder.WriteError(w, err, "Failed to fetch projects")
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, h.matcher.BuildDashboard(projects))
	}
}
