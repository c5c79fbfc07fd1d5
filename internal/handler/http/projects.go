package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-gate/internal/app"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
)

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.services.ProjectService.ListProjects(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.listProjects", err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeJSON(w, http.StatusOK, models.ProjectsResponse{Projects: projects})
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var payload models.ProjectPayload
	if err := decodeJSON(r, &payload); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.createProject").Msg(ErrInvalidJSON.Error())
		writeError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}
	payload.ID = ""

	created, err := h.services.ProjectService.CreateProject(r.Context(), payload)
	if err != nil {
		writeServiceError(w, r, "*Handler.createProject", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	var payload models.ProjectPayload
	if err := decodeJSON(r, &payload); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.updateProject").Msg(ErrInvalidJSON.Error())
		writeError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	updated, err := h.services.ProjectService.UpdateProject(r.Context(), payload)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateProject", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// deleteProject handles DELETE /vault/projects?id=. Secrets of the project
// are kept and unassigned.
func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, app.MsgNoIDProvided)
		return
	}

	if err := h.services.ProjectService.DeleteProject(r.Context(), id); err != nil {
		writeServiceError(w, r, "*Handler.deleteProject", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
