// Package cli holds the command-line surface shared by the tilequery
// binaries: flag parsing, logger construction and world loading.
package cli
