package localstore

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
)

var errCorrupt = errors.New("local user directory is neither base64 JSON nor plain JSON")

// encodeUsers produces the stored form: base64 of the JSON array.
func encodeUsers(users []models.UserRecord) ([]byte, error) {
	if users == nil {
		users = []models.UserRecord{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return nil, err
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// decodeUsers accepts the base64 form and, for blobs written by older
// clients, plain JSON. An empty blob is an empty directory.
func decodeUsers(blob []byte) ([]models.UserRecord, error) {
	if len(blob) == 0 {
		return nil, nil
	}

	var users []models.UserRecord
	if raw, err := base64.StdEncoding.DecodeString(string(blob)); err == nil {
		if err := json.Unmarshal(raw, &users); err == nil {
			return users, nil
		}
	}
	users = nil
	if err := json.Unmarshal(blob, &users); err == nil {
		return users, nil
	}
	return nil, errCorrupt
}
