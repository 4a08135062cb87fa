// Package persist stores named filter sets as local files so a debugging
// session can save its configured filters and restore them against a freshly
// built target.
//
// Files carry a plain-JSON header line recording magic, version, codec name
// and compression name, followed by the (optionally zstd- or lz4-compressed)
// body of serialized filter envelopes. Because targets are never serialized,
// loading rebinds every filter to the caller-supplied target.
package persist
