package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vault-gate/internal/app"
	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/internal/store"
	"github.com/MKhiriev/go-vault-gate/internal/validators"
)

// errorResponse is the status and client-facing message for an error.
type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	validators.ErrEmptyID:          {http.StatusBadRequest, app.MsgNoIDProvided},
	validators.ErrEmptyName:        {http.StatusBadRequest, app.MsgNameRequired},
	validators.ErrNameTooLong:      {http.StatusBadRequest, app.MsgInvalidDataProvided},
	validators.ErrInvalidCategory:  {http.StatusBadRequest, app.MsgInvalidCategory},
	validators.ErrIncompleteTriple: {http.StatusBadRequest, app.MsgIncompleteTriple},
	validators.ErrInvalidBase64:    {http.StatusBadRequest, app.MsgIncompleteTriple},
	validators.ErrEmptyProjectID:   {http.StatusBadRequest, app.MsgInvalidDataProvided},
	validators.ErrInvalidColor:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	validators.ErrInvalidAction:    {http.StatusBadRequest, app.MsgUnknownTOTPAction},
	validators.ErrInvalidTOTPToken: {http.StatusUnauthorized, app.MsgInvalidTOTPCode},
	validators.ErrUnsupportedType:  {http.StatusInternalServerError, app.MsgInternalServerError},

	service.ErrInvalidTOTPCode:       {http.StatusUnauthorized, app.MsgInvalidTOTPCode},
	service.ErrInvalidGrant:          {http.StatusUnauthorized, app.MsgTOTPRequired},
	service.ErrTOTPNotEnabled:        {http.StatusBadRequest, app.MsgTOTPNotEnabled},
	service.ErrNoPendingSetup:        {http.StatusBadRequest, app.MsgNoPendingSetup},
	service.ErrUnknownTOTPAction:     {http.StatusBadRequest, app.MsgUnknownTOTPAction},
	service.ErrTOTPAlreadyEnabled:    {http.StatusConflict, app.MsgTOTPAlreadyEnabled},
	service.ErrVersionIsNotSpecified: {http.StatusInternalServerError, app.MsgInternalServerError},

	store.ErrSecretNotFound:       {http.StatusNotFound, app.MsgSecretNotFound},
	store.ErrProjectNotFound:      {http.StatusNotFound, app.MsgProjectNotFound},
	store.ErrTOTPSettingsNotFound: {http.StatusBadRequest, app.MsgTOTPNotEnabled},
	store.ErrDatabaseUnavailable:  {http.StatusServiceUnavailable, app.MsgInternalServerError},
}

// responseFromError picks the response for err. Unknown errors are reported
// as 500 without detail.
func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{status: http.StatusInternalServerError, message: app.MsgInternalServerError}
}
