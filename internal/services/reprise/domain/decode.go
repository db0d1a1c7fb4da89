package domain

import (
	"encoding/json"

	perr "showrunner/internal/platform/errors"
)

// DecodeItem parses an item's meta document. Position is required; the
// returned meta has identity keys stripped so the clone starts unsaved
func DecodeItem(raw []byte) (int64, map[string]json.RawMessage, error) {
	var meta map[string]json.RawMessage
	if err := json.Unmarshal(raw, &meta); err != nil {
		return 0, nil, perr.Wrapf(err, perr.ErrorCodeParse, "malformed item meta")
	}

	rawPos, ok := meta["position"]
	if !ok {
		return 0, nil, perr.Parsef("item meta missing position")
	}
	var pos int64
	if err := json.Unmarshal(rawPos, &pos); err != nil {
		return 0, nil, perr.Wrapf(err, perr.ErrorCodeParse, "item position not an integer")
	}

	delete(meta, "id")
	return pos, meta, nil
}

// DecodeAsset parses the asset fields the exclusion rule needs. The folder id
// is required: silently defaulting it could carry a commercial into a reprise
func DecodeAsset(id int64, raw []byte) (Asset, error) {
	var m struct {
		FolderID *int64 `json:"id_folder"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return Asset{}, perr.Wrapf(err, perr.ErrorCodeParse, "asset %d: malformed meta", id)
	}
	if m.FolderID == nil {
		return Asset{}, perr.Parsef("asset %d: missing id_folder", id)
	}
	return Asset{ID: id, FolderID: *m.FolderID}, nil
}
