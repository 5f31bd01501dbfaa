package api

import (
	"net/http"
	"strings"

	"github.com/craftly-living/backend/database"
	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
	"github.com/craftly-living/backend/validation"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type builderHandler struct {
	responder    Responder
	logger       zerolog.Logger
	store        database.Storage
	maxBodyBytes int64
}

func newBuilderHandler(store database.Storage, maxBodyBytes int64) builderHandler {
	logger := log.With().Str("handlerName", "builderHandler").Logger()

	return builderHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		store:        store,
		maxBodyBytes: maxBodyBytes,
	}
}

// createBuilder registers a builder profile
// @Summary Create builder profile
// @Description Normalizes and validates the signup payload. A second signup with the same email is rejected by the unique email constraint
// @Tags Builders
// @Accept json
// @Produce json
// @Param builder body models.BuilderInput true "Builder signup"
// @Success 201 {object} models.Builder "Created builder"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid builder data or duplicate email"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to create builder profile"
// @Router /api/builders [post]
func (h builderHandler) createBuilder() http.HandlerFunc {
	const failure = "Failed to create builder profile"

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r, h.maxBodyBytes)
		if err != nil {
			h.responder.WriteError(w, err, failure)
			return
		}

		input, err := validation.ValidateBuilderInput(r.Context(), body)
		if err != nil {
			h.responder.WriteError(w, err, failure)
			return
		}

		builder, err := h.store.CreateBuilder(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err, failure)
			return
		}

		h.logger.Info().
			Int64("builderId", builder.ID).
			Str("businessName", builder.BusinessName).
			Msg("Builder profile created")
		h.responder.WriteJSON(w, http.StatusCreated, builder)
	}
}

// getBuilders lists every builder, or only the one registered with ?email=.
func (h builderHandler) getBuilders() http.HandlerFunc {
	const failure = "Failed to fetch builders"

	return func(w http.ResponseWriter, r *http.Request) {
		if email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email"))); email != "" {
			builder, err := h.store.GetBuilderByEmail(r.Context(), email)
			switch {
			case errs.IsNotFound(err):
				h.responder.WriteJSON(w, http.StatusOK, []*models.Builder{})
			case err != nil:
				h.responder.WriteError(w, err, failure)
			default:
				h.responder.WriteJSON(w, http.StatusOK, []*models.Builder{builder})
			}
			return
		}

		builders, err := h.store.GetAllBuilders(r.Context())
		if err != nil {
			h.responder.WriteError(w, err, failure)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, builders)
	}
}

// getBuilder retrieves a builder by ID
// @Summary Get builder
// @Tags Builders
// @Produce json
// @Param id path int true "Builder ID"
// @Success 200 {object} models.Builder
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid builder ID"
// @Failure 404 {object} ErrorResponse "Not Found - Builder not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to fetch builder"
// @Router /api/builders/{id} [get]
func (h builderHandler) getBuilder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		builderID, err := parseID(chi.URLParam(r, "id"), "Invalid builder ID")
		if err != nil {
			h.responder.WriteError(w, err, "")
			return
		}

		builder, err := h.store.GetBuilder(r.Context(), builderID)
		if err != nil {
			h.responder.WriteError(w, err, "Failed to fetch builder")
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, builder)
	}
}
