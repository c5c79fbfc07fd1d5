package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-gate/internal/app"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/utils"
	"github.com/MKhiriev/go-vault-gate/models"
)

func (h *Handler) listSecrets(w http.ResponseWriter, r *http.Request) {
	secrets, err := h.services.VaultService.ListSecrets(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.listSecrets", err)
		return
	}
	if secrets == nil {
		secrets = []models.Secret{}
	}

	logger.FromRequest(r).Debug().
		Int("count", len(secrets)).
		Bool("totp_grant", utils.HasTOTPGrant(r.Context())).
		Msg("secrets listed")

	writeJSON(w, http.StatusOK, models.SecretsResponse{Secrets: secrets})
}

func (h *Handler) createSecret(w http.ResponseWriter, r *http.Request) {
	var payload models.SecretPayload
	if err := decodeJSON(r, &payload); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.createSecret").Msg(ErrInvalidJSON.Error())
		writeError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}
	payload.ID = ""

	created, err := h.services.VaultService.CreateSecret(r.Context(), payload)
	if err != nil {
		writeServiceError(w, r, "*Handler.createSecret", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateSecret(w http.ResponseWriter, r *http.Request) {
	var payload models.SecretPayload
	if err := decodeJSON(r, &payload); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.updateSecret").Msg(ErrInvalidJSON.Error())
		writeError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	updated, err := h.services.VaultService.UpdateSecret(r.Context(), payload)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateSecret", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// deleteSecret handles DELETE /vault?id=.
func (h *Handler) deleteSecret(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, app.MsgNoIDProvided)
		return
	}

	if err := h.services.VaultService.DeleteSecret(r.Context(), id); err != nil {
		writeServiceError(w, r, "*Handler.deleteSecret", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
