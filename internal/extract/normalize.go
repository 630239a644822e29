// Package extract turns raw generation-backend output into validated
// domain records. It has two layers: a normalizer that strips
// conversational wrapping (markdown code fences) from a response, and a
// coercer that projects the normalized JSON into typed records with
// documented defaults.
package extract

import (
	"strings"
)

const fenceMarker = "```"

// StripFences recovers the payload embedded in a fenced code block.
// If the text starts with a fence marker, the first interior segment is
// taken and a leading "json" language hint is dropped. A trailing fence
// marker is stripped even without a leading one. Text with no fence
// markers passes through unchanged, so the function is idempotent.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, fenceMarker) {
		parts := strings.Split(s, fenceMarker)
		// parts[0] is the empty prefix before the opening fence.
		if len(parts) > 1 {
			s = parts[1]
		}
		if hint := strings.ToLower(s); strings.HasPrefix(hint, "json") {
			s = s[len("json"):]
		}
		s = strings.TrimSpace(s)
	}

	for strings.HasSuffix(s, fenceMarker) {
		s = strings.TrimSpace(strings.TrimSuffix(s, fenceMarker))
	}

	return s
}
