// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-vault-gate/internal/app"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/models"
)

func (h *Handler) getTOTPStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.TOTPService.Status(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.getTOTPStatus", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// postTOTPAction dispatches POST /vault/totp on the request action.
func (h *Handler) postTOTPAction(w http.ResponseWriter, r *http.Request) {
	var request models.TOTPRequest
	if err := decodeJSON(r, &request); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.postTOTPAction").Msg(ErrInvalidJSON.Error())
		writeError(w, http.StatusBadRequest, app.MsgInvalidDataProvided)
		return
	}

	if err := h.validator.Validate(r.Context(), request); err != nil {
		writeServiceError(w, r, "*Handler.postTOTPAction", err)
		return
	}

	ctx := r.Context()
	code := strings.TrimSpace(request.Token)

	var (
		body any
		err  error
	)
	switch request.Action {
	case models.TOTPActionSetup:
		body, err = h.services.TOTPService.Setup(ctx)
	case models.TOTPActionVerify:
		body, err = h.services.TOTPService.Verify(ctx, code)
	case models.TOTPActionValidate:
		body, err = h.services.TOTPService.Validate(ctx, code)
	case models.TOTPActionDisable:
		body, err = h.services.TOTPService.Disable(ctx, code)
	default:
		err = service.ErrUnknownTOTPAction
	}
	if err != nil {
		writeServiceError(w, r, "*Handler.postTOTPAction", err)
		return
	}

	logger.FromRequest(r).Info().Str("action", string(request.Action)).Msg("totp action accepted")
	writeJSON(w, http.StatusOK, body)
}
