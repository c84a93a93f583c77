package envelope

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// previewLimit bounds how much of an offending payload is echoed back.
const previewLimit = 300

// Parse normalizes raw JSON text produced by stored procedures (or by the
// gateway's own failure synthesis) into an Envelope. It never fails:
//   - blank input becomes a code-500 envelope,
//   - malformed JSON becomes a code-400 envelope carrying a bounded preview
//     so the boundary does not report a false server fault,
//   - a well-formed object missing errorCode is a contract violation (400).
func Parse(raw string) Envelope {
	if strings.TrimSpace(raw) == "" {
		return Fail(500, "empty response")
	}

	var payload struct {
		ErrorCode *int            `json:"errorCode"`
		Message   string          `json:"message"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Fail(400, fmt.Sprintf("invalid envelope JSON: %v; preview: %s", err, Preview(raw)))
	}
	if payload.ErrorCode == nil {
		return Fail(400, "envelope missing errorCode; preview: "+Preview(raw))
	}

	env := Envelope{ErrorCode: *payload.ErrorCode, Message: payload.Message}
	if len(payload.Data) > 0 && string(payload.Data) != "null" {
		var data any
		if err := json.Unmarshal(payload.Data, &data); err == nil {
			env.Data = data
		}
	}
	return env
}

// Preview returns at most the first 300 bytes of raw, trimmed back to a
// rune boundary so the echoed text stays valid UTF-8.
func Preview(raw string) string {
	if len(raw) <= previewLimit {
		return raw
	}
	cut := previewLimit
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return raw[:cut] + "..."
}
