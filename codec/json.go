package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Filter envelopes are small flat structs, so JSON is stable, portable and
// easy to inspect by hand inside persisted filter-set files.
//
// If you need custom encoding, implement Codec and pass it where a codec is
// accepted; persisted files always record the codec name so they can be
// validated on load.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// NOTE: This affects newly-written files only. Existing persisted files are
// self-describing (they store the codec name in their header) and are opened
// by selecting the appropriate codec by name.
var Default Codec = GoJSON{}
