package api

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	startupTime time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	return healthHandler{
		responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
	Started   string    `json:"started"`
	Uptime    string    `json:"uptime"`
}

func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			StartedAt: h.startupTime.UTC(),
			Started:   humanize.Time(h.startupTime),
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
