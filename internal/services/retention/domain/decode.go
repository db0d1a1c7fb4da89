package domain

import (
	"encoding/json"

	perr "showrunner/internal/platform/errors"
)

// playoutStatus is the per-channel sub-document stored under
// assets.meta->'playout_status/<channel id>'
type playoutStatus struct {
	Size *json.Number `json:"size"`
}

// DecodePlayoutStatus extracts the rendered file size from a raw playout
// status document. A missing or malformed size is a parse error
func DecodePlayoutStatus(assetID int64, raw []byte) (int64, error) {
	var st playoutStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeParse, "asset %d: malformed playout status", assetID)
	}
	if st.Size == nil {
		return 0, perr.Parsef("asset %d: playout status missing size", assetID)
	}
	size, err := st.Size.Int64()
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeParse, "asset %d: playout status size not an integer", assetID)
	}
	return size, nil
}
