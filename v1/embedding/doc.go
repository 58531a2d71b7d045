// Package embedding computes fixed-dimension vector embeddings for text.
//
// The [Encoder] interface is the contract consumed by the document and
// search services: a batchable Encode plus a Dimension accessor with a
// constant result per provider instance. The bundled implementation talks
// to an OpenAI-compatible inference endpoint over HTTP and splits large
// inputs into concurrent batches while preserving input order — the
// vector at index i always corresponds to the text at index i.
//
// Application code should depend on *Client (or the Encoder interface),
// not on the provider directly:
//
//	client, err := embedding.NewClient(embedding.NewConfig())
//	if err != nil {
//	    return err
//	}
//	vectors, err := client.Encode(ctx, []string{"first", "second"})
package embedding
