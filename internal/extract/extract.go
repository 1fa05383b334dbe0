// Package extract pulls structured payloads out of raw model output.
// Models wrap JSON in code fences or prose more often than not, so every
// response goes through the same cleanup before decoding.
package extract

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONObject means no decodable JSON object could be located in the
// response text.
var ErrNoJSONObject = errors.New("no json object found")

// StripFences removes a markdown code fence wrapped around a response.
func StripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// JSONObject returns the outermost JSON object in a model response,
// tolerating fences and surrounding prose.
func JSONObject(raw string) (string, error) {
	payload := StripFences(raw)
	if payload == "" {
		return "", ErrNoJSONObject
	}
	if strings.HasPrefix(payload, "{") && json.Valid([]byte(payload)) {
		return payload, nil
	}

	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end == -1 || end <= start {
		return "", ErrNoJSONObject
	}

	candidate := payload[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", ErrNoJSONObject
	}
	return candidate, nil
}
