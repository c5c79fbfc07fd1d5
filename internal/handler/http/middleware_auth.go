package http

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/MKhiriev/go-vault-gate/internal/app"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/utils"
	"github.com/MKhiriev/go-vault-gate/models"
)

const totpGrantHeader = models.TOTPGrantHeader

// withAPIToken enforces the static bearer token owned by the hosting
// application. With no token configured every request passes.
func (h *Handler) withAPIToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.apiToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, http.StatusUnauthorized, app.MsgUnauthorized)
			return
		}

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeError(w, http.StatusUnauthorized, app.MsgUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(h.apiToken)) != 1 {
			log.Err(ErrInvalidAPIToken).Send()
			writeError(w, http.StatusUnauthorized, app.MsgUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withTOTPGrant requires a valid grant in X-Vault-TOTP-Grant while TOTP is
// enabled. A missing or expired grant yields 401 "totp verification required",
// which the client answers by asking for a fresh code.
func (h *Handler) withTOTPGrant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		required, err := h.services.TOTPService.GrantRequired(r.Context())
		if err != nil {
			writeServiceError(w, r, "*Handler.withTOTPGrant", err)
			return
		}
		if !required {
			next.ServeHTTP(w, r)
			return
		}

		if err = h.services.TOTPService.ValidateGrant(r.Header.Get(totpGrantHeader)); err != nil {
			writeServiceError(w, r, "*Handler.withTOTPGrant", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), utils.TOTPGrantCtxKey, true)))
	})
}
