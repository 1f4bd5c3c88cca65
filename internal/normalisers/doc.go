// Package normalisers provides implementations of the Normaliser interface
// for the supported document formats. Each normaliser converts raw file
// content into a domain.Document ready for chunking.
//
// Normalisers are registered with the Registry at startup and selected by
// file extension.
package normalisers
