package adapter

import (
	"context"

	"github.com/MKhiriev/go-vault-gate/models"
)

func (h *httpServerAdapter) Status(ctx context.Context) (models.TOTPStatus, error) {
	var status models.TOTPStatus

	resp, err := h.client.JSON(ctx).SetResult(&status).Get(totpPath)
	if err != nil {
		return models.TOTPStatus{}, transportError("totp status", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TOTPStatus{}, err
	}

	return status, nil
}

func (h *httpServerAdapter) Setup(ctx context.Context) (models.TOTPSetup, error) {
	var setup models.TOTPSetup

	resp, err := h.client.JSON(ctx).
		SetBody(models.TOTPRequest{Action: models.TOTPActionSetup}).
		SetResult(&setup).
		Post(totpPath)
	if err != nil {
		return models.TOTPSetup{}, transportError("totp setup", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TOTPSetup{}, err
	}

	return setup, nil
}

func (h *httpServerAdapter) Verify(ctx context.Context, code string) (models.TOTPResult, error) {
	return h.totpAction(ctx, models.TOTPActionVerify, code)
}

func (h *httpServerAdapter) Validate(ctx context.Context, code string) (models.TOTPResult, error) {
	return h.totpAction(ctx, models.TOTPActionValidate, code)
}

func (h *httpServerAdapter) Disable(ctx context.Context, code string) (models.TOTPResult, error) {
	return h.totpAction(ctx, models.TOTPActionDisable, code)
}

// totpAction posts a code-bearing action. A returned grant replaces the held
// one; a successful disable drops it.
func (h *httpServerAdapter) totpAction(ctx context.Context, action models.TOTPAction, code string) (models.TOTPResult, error) {
	var result models.TOTPResult

	resp, err := h.client.JSON(ctx).
		SetBody(models.TOTPRequest{Action: action, Token: code}).
		SetResult(&result).
		Post(totpPath)
	if err != nil {
		return models.TOTPResult{}, transportError("totp "+string(action), err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("func", "*httpServerAdapter.totpAction").Str("action", string(action)).Err(err).Msg("totp action rejected")
		return models.TOTPResult{}, err
	}

	switch {
	case action == models.TOTPActionDisable && result.OK:
		h.setGrant("")
	case result.Grant != "":
		h.setGrant(result.Grant)
	}

	return result, nil
}
