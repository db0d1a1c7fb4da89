// Package http provides http transport for run history
package http

import (
	stdhttp "net/http"
	"strconv"

	perr "showrunner/internal/platform/errors"
	phttp "showrunner/internal/platform/net/http"
	svc "showrunner/internal/services/runs/service"
)

// Register mounts run history endpoints on the given router
func Register(r phttp.Router, s svc.Service) {
	h := &handlers{svc: s}
	phttp.GetJSON(r, "/runs", h.runs)
}

type handlers struct{ svc svc.Service }

// runs serves GET /runs?id_asset=42
func (h *handlers) runs(r *stdhttp.Request) (any, error) {
	raw := r.URL.Query().Get("id_asset")
	if raw == "" {
		return nil, perr.InvalidArgf("id_asset is required")
	}
	assetID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, perr.InvalidArgf("id_asset must be an integer")
	}
	return h.svc.ForAsset(r.Context(), assetID)
}
