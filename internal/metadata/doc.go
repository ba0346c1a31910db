// Package metadata projects values out of the opaque per-item API payload.
//
// Payloads are semi-structured JSON whose shape varies across platforms and
// API versions, so every projection is total: a missing key, wrong container
// type, out-of-range index, or unparseable payload yields the caller's
// default instead of an error.
package metadata
