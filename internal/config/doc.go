// Package config provides the session's explicit configuration.
//
// There are no ambient settings: a Provider hands out immutable
// Settings snapshots, and the session assembles one snapshot per
// public operation. Static wraps a fixed value; FileProvider loads a
// TOML file and, optionally, watches it for live reload, notifying
// registered callbacks on change.
package config
