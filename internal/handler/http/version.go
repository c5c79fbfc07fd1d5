package http

import "net/http"

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.services.AppInfoService.GetAppVersion(r.Context()))
}
