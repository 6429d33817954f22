package session

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/divyadrishti/internal/client/kv"
	"github.com/dmitrijs2005/divyadrishti/internal/common"
)

// MaxNames caps the auto-suggestion history.
const MaxNames = 10

// NameHistory remembers names typed into forms, most recent first.
type NameHistory struct {
	kv kv.Store
}

func NewNameHistory(store kv.Store) *NameHistory {
	return &NameHistory{kv: store}
}

func (h *NameHistory) List(ctx context.Context) ([]string, error) {
	data, err := h.kv.Get(ctx, common.NameHistoryKey)
	if err != nil {
		return nil, err
	}
	return decodeNames(data), nil
}

// Add moves name to the front of the history. Blank names are ignored.
func (h *NameHistory) Add(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	var out []string
	err := h.kv.Update(ctx, common.NameHistoryKey, func(old []byte) ([]byte, error) {
		out = pushName(decodeNames(old), name)
		return json.Marshal(out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func pushName(names []string, name string) []string {
	if name == "" {
		return names
	}
	out := make([]string, 0, MaxNames)
	out = append(out, name)
	for _, n := range names {
		if len(out) == MaxNames {
			break
		}
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func decodeNames(data []byte) []string {
	var names []string
	if len(data) == 0 || json.Unmarshal(data, &names) != nil {
		return []string{}
	}
	return names
}
