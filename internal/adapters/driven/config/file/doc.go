// Package file provides a TOML-backed configuration store persisted in
// the keeper config directory.
package file
