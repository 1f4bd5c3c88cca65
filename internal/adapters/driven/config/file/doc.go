// Package file provides the TOML-backed configuration store and the
// mapping between stored keys and domain settings.
package file
