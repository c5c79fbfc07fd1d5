package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/utils"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	_, _ = utils.WriteJSON(w, body, status)
}

func writeError(w http.ResponseWriter, status int, message string) {
	utils.WriteError(w, message, status)
}

// writeServiceError logs err and writes the mapped status and message.
// Server-side failures are logged at error level, client mistakes at debug.
func writeServiceError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	event := log.Debug()
	if resp.status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", funcName).Int("status", resp.status).Msg(resp.message)

	writeError(w, resp.status, resp.message)
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrInvalidJSON
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
