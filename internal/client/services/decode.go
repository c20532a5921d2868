package services

import (
	"encoding/json"

	"github.com/dmitrijs2005/secondwear/internal/client/client"
)

// decodeWrapped decodes {"<key>": v} when the body has that key and the
// whole body otherwise. The API is not consistent about wrapping.
func decodeWrapped(res client.Result, key string, v any) error {
	if !res.OK {
		return res.Err()
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(res.Data, &envelope); err == nil {
		if inner, ok := envelope[key]; ok {
			return client.Result{OK: true, Status: res.Status, Data: inner}.Decode(v)
		}
	}
	return res.Decode(v)
}
