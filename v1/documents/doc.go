// Package documents is the write-side application service: it turns raw
// texts into embeddings and drives the store gateway for ingestion,
// lookup, replacement, and deletion.
//
// The service is deliberately thin. Embedding happens here so callers
// never handle vectors directly; everything else delegates to
// docstore.Gateway, and gateway errors propagate unchanged so callers
// can match the docstore taxonomy with errors.Is.
package documents
