package main

import (
	"context"
	"fmt"
)

// demoCorpus is a small ingestion set whose topics are distinct enough
// that the sample query has an unambiguous best match.
var demoCorpus = []string{
	"Milvus is a vector database built for scalable similarity search.",
	"Embeddings map text into a high-dimensional vector space.",
	"An IVF index partitions vectors into clusters to speed up search.",
	"The L2 metric measures straight-line distance between two vectors.",
	"Collections group documents that share one schema and one index.",
}

const demoQuery = "how does a vector index accelerate search"

// runSeed provisions the collection, ingests the demo corpus, and runs
// one sample search end to end.
func runSeed(ctx context.Context, cfg *AppConfig, svc *services) error {
	info, err := svc.Store.CreateCollection(ctx, cfg.Embedding.Dimension, "")
	if err != nil {
		return err
	}
	fmt.Printf("Collection %q ready (dimension %d)\n", info.Name, info.Dimension)

	ids, err := svc.Documents.InsertDocuments(ctx, demoCorpus)
	if err != nil {
		return err
	}
	fmt.Printf("Ingested %d demo documents\n", len(ids))

	stats, err := svc.Store.CollectionStats(ctx, "")
	if err != nil {
		return err
	}
	fmt.Printf("Collection now holds %d documents\n", stats.RowCount)

	results, err := svc.Search.SearchDocuments(ctx, demoQuery, 3)
	if err != nil {
		return err
	}

	fmt.Printf("\nQuery: %q\n", demoQuery)
	for i, r := range results {
		fmt.Printf("%2d. [score %.4f] (id %d) %s\n", i+1, r.Score, r.ID, r.Text)
	}
	return nil
}
