package api

import (
	"net/http"
	"strconv"

	"github.com/craftly-living/backend/database"
	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/validation"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type renovationProjectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	store        database.Storage
	maxBodyBytes int64
}

func newRenovationProjectHandler(store database.Storage, maxBodyBytes int64) renovationProjectHandler {
	logger := log.With().Str("handlerName", "renovationProjectHandler").Logger()

	return renovationProjectHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		store:        store,
		maxBodyBytes: maxBodyBytes,
	}
}

// createRenovationProject stores a homeowner's project request
// @Summary Create renovation project
// @Description Validates the project form and stores it. A legacy budget label is expanded to budgetMin/budgetMax when no explicit bounds are given
// @Tags RenovationProjects
// @Accept json
// @Produce json
// @Param project body models.ProjectForm true "Project form"
// @Success 201 {object} models.RenovationProject "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 413 {object} ErrorResponse "Request body too large"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to create project"
// @Router /api/renovation-projects [post]
func (h renovationProjectHandler) createRenovationProject() http.HandlerFunc {
	const failure = "Failed to create project"

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r, h.maxBodyBytes)
		if err != nil {
			h.responder.WriteError(w, err, failure)
			return
		}

		form, err := validation.ValidateProjectInput(r.Context(), body)
		if err != nil {
			h.responder.WriteError(w, err, failure)
			return
		}

		input := form.Input()
		if err := validation.CheckProjectInput(input); err != nil {
			h.responder.WriteError(w, err, failure)
			return
		}

		if input.UserID != nil {
			if _, err := h.store.GetUser(r.Context(), *input.UserID); err != nil {
				if errs.IsNotFound(err) {
					err = errs.NewValidationError("Invalid project data", []errs.FieldError{
						{Field: "userId", Message: "does not reference an existing user"},
					})
				}
				h.responder.WriteError(w, err, failure)
				return
			}
		}

		project, err := h.store.CreateRenovationProject(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err, failure)
			return
		}

		h.logger.Info().
			Int64("projectId", project.ID).
			Str("renovationType", project.RenovationType).
			Str("postcode", project.Postcode).
			Msg("Renovation project created")
		h.responder.WriteJSON(w, http.StatusCreated, project)
	}
}

// getAllRenovationProjects lists every stored project ordered by id
// @Summary Get all renovation projects
// @Tags RenovationProjects
// @Produce json
// @Success 200 {array} models.RenovationProject
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to fetch projects"
// @Router /api/renovation-projects [get]
func (h renovationProjectHandler) getAllRenovationProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.GetRenovationProjectsByUser(r.Context(), nil)
		if err != nil {
			h.responder.WriteError(w, err, "Failed to fetch projects")
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, projects)
	}
}

func (h renovationProjectHandler) getUserRenovationProjects() http.HandlerFunc {
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
		h.responder.WriteJSON(w, http.StatusOK, projects)
	}
}

func parseUserID(r *http.Request) (int64, error) {
	return parseID(chi.URLParam(r, "userId"), "Invalid user ID")
}

func parseID(raw, message string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError(message)
	}
	return id, nil
}
