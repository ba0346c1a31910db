// Package config loads, normalizes, and validates eitbwatch configuration.
//
// Configuration lives in a TOML file (default ~/.config/eitbwatch/config.toml,
// with a project-local eitbwatch.toml fallback). All path fields are expanded
// to absolute paths during load so downstream packages never deal with "~" or
// relative locations.
package config
