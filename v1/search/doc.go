// Package search is the read-side application service: it embeds a
// natural-language query and runs a similarity search against the store,
// returning ranked results with normalized scores.
package search
