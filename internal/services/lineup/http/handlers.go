// Package http provides http transport for lineup
package http

import (
	stdhttp "net/http"
	"strconv"

	perr "showrunner/internal/platform/errors"
	phttp "showrunner/internal/platform/net/http"
	svc "showrunner/internal/services/lineup/service"
)

// Register mounts lineup endpoints on the given router
func Register(r phttp.Router, s svc.Service) {
	h := &handlers{svc: s}
	phttp.GetJSON(r, "/lineup", h.lineup)
}

type handlers struct{ svc svc.Service }

// lineup serves GET /lineup?id_channel=1
func (h *handlers) lineup(r *stdhttp.Request) (any, error) {
	channelID := int64(1)
	if raw := r.URL.Query().Get("id_channel"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, perr.InvalidArgf("id_channel must be an integer")
		}
		channelID = id
	}
	return h.svc.Lineup(r.Context(), channelID)
}
