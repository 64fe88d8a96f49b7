package repository

import (
	"encoding/json"
	"fmt"
)

// toJSONB renders a string list for a JSONB parameter; nil becomes [] to satisfy NOT NULL columns.
func toJSONB(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode jsonb: %w", err)
	}
	return string(b), nil
}

func fromJSONB(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode jsonb: %w", err)
	}
	return out, nil
}
