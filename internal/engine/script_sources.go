package engine

import (
	"bytes"
	"encoding/json"
	"regexp"
)

// sourcesRE isolates the bracketed list literal of a player config:
//
//	sources: [{'src': 'https://...', 'type': 'video/mp4'}, ...]
var sourcesRE = regexp.MustCompile(`sources\s*:\s*(\[[^\]]+\])`)

// ParseSourcesScript scans a script body for a player sources literal,
// normalizes its single-quoted strings to strict JSON, and parses it.
// Pure function: bytes in, optional value out. Returns (nil, false) on
// any failure — no matching literal, malformed brackets, quote repair
// producing invalid JSON, or an empty list. Callers treat false as
// "no download link found", never as an error.
func ParseSourcesScript(b []byte) ([]MediaSource, bool) {
	m := sourcesRE.FindSubmatch(b)
	if m == nil {
		return nil, false
	}

	// The player emits single-quoted strings; JSON wants double quotes.
	normalized := bytes.ReplaceAll(m[1], []byte{'\''}, []byte{'"'})

	var sources []MediaSource
	if err := json.Unmarshal(normalized, &sources); err != nil {
		return nil, false
	}
	if len(sources) == 0 {
		return nil, false
	}
	return sources, true
}
