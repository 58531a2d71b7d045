package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/docuseek/docstore/v1/docstore"
)

func main() {
	var (
		configPath string
		host       string
		port       int
		collection string
		logLevel   string
		jsonOut    bool
	)

	// load resolves the aggregate config and applies flag overrides on
	// top; flags win over environment and file.
	load := func() (*AppConfig, error) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return nil, err
		}
		if host != "" {
			cfg.Milvus.WithHost(host)
		}
		if port > 0 {
			cfg.Milvus.WithPort(port)
		}
		if collection != "" {
			cfg.Milvus.WithCollection(collection)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		return cfg, nil
	}

	rootCmd := &cobra.Command{
		Use:           "docstore",
		Short:         "Document similarity store backed by Milvus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ./docstore.yaml)")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Milvus host override")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Milvus port override")
	rootCmd.PersistentFlags().StringVar(&collection, "collection", "", "Collection name override")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")

	// collection lifecycle

	collectionCmd := &cobra.Command{
		Use:   "collection",
		Short: "Collection lifecycle operations",
	}

	var createDim int
	collectionCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the collection and its similarity index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			dim := createDim
			if dim <= 0 {
				dim = cfg.Milvus.Dimension
			}
			return runWithStore(cfg, func(ctx context.Context, svc *services) error {
				info, err := svc.Store.CreateCollection(ctx, dim, "")
				if err != nil {
					return err
				}
				return emit(jsonOut, info, func() {
					fmt.Printf("Collection %q ready (dimension %d, metric %s)\n", info.Name, info.Dimension, info.Metric)
				})
			})
		},
	}
	collectionCreateCmd.Flags().IntVar(&createDim, "dimension", 0, "Embedding dimension (default: configured dimension)")

	collectionListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithStore(cfg, func(ctx context.Context, svc *services) error {
				names, err := svc.Store.ListCollections(ctx)
				if err != nil {
					return err
				}
				return emit(jsonOut, names, func() {
					for _, name := range names {
						fmt.Println(name)
					}
				})
			})
		},
	}

	collectionDropCmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop the collection and all its data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithStore(cfg, func(ctx context.Context, svc *services) error {
				if err := svc.Store.DropCollection(ctx, ""); err != nil {
					return err
				}
				fmt.Printf("Collection %q dropped\n", cfg.Milvus.CollectionName)
				return nil
			})
		},
	}

	collectionClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all documents but keep the collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithStore(cfg, func(ctx context.Context, svc *services) error {
				removed, err := svc.Store.ClearCollection(ctx, "")
				if err != nil {
					return err
				}
				fmt.Printf("Removed %d documents from %q\n", removed, cfg.Milvus.CollectionName)
				return nil
			})
		},
	}

	collectionStatsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the collection row count",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithStore(cfg, func(ctx context.Context, svc *services) error {
				stats, err := svc.Store.CollectionStats(ctx, "")
				if err != nil {
					return err
				}
				return emit(jsonOut, stats, func() {
					fmt.Printf("%s: %d documents\n", stats.Name, stats.RowCount)
				})
			})
		},
	}

	collectionCmd.AddCommand(collectionCreateCmd, collectionListCmd, collectionDropCmd, collectionClearCmd, collectionStatsCmd)

	// document operations

	insertCmd := &cobra.Command{
		Use:   "insert [text]...",
		Short: "Embed and insert documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithServices(cfg, func(ctx context.Context, svc *services) error {
				ids, err := svc.Documents.InsertDocuments(ctx, args)
				if err != nil {
					return err
				}
				return emit(jsonOut, ids, func() {
					fmt.Printf("Inserted %d documents: %v\n", len(ids), ids)
				})
			})
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <id>...",
		Short: "Fetch documents by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithStore(cfg, func(ctx context.Context, svc *services) error {
				docs, err := svc.Store.QueryByIDs(ctx, ids)
				if err != nil {
					return err
				}
				return emit(jsonOut, docs, func() {
					if len(docs) == 0 {
						fmt.Println("No documents found")
						return
					}
					for _, d := range docs {
						fmt.Printf("%d\t%s\n", d.ID, d.Text)
					}
				})
			})
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id> <text>",
		Short: "Replace a document's text (assigns a new id)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithServices(cfg, func(ctx context.Context, svc *services) error {
				res, err := svc.Documents.UpdateDocument(ctx, id, args[1])
				if err != nil {
					return err
				}
				return emit(jsonOut, res, func() {
					fmt.Printf("Replaced document %d; new id is %d\n", res.PreviousID, res.NewID)
				})
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete documents by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithStore(cfg, func(ctx context.Context, svc *services) error {
				matched, err := svc.Store.DeleteDocuments(ctx, ids)
				if err != nil {
					return err
				}
				fmt.Printf("Deleted %d of %d documents\n", matched, len(ids))
				return nil
			})
		},
	}

	var topK int
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Similarity search over ingested documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			k := topK
			if k <= 0 {
				k = cfg.Milvus.DefaultTopK
			}
			return runWithServices(cfg, func(ctx context.Context, svc *services) error {
				results, err := svc.Search.SearchDocuments(ctx, args[0], k)
				if err != nil {
					return err
				}
				return emit(jsonOut, results, func() {
					if len(results) == 0 {
						fmt.Println("No results")
						return
					}
					for i, r := range results {
						fmt.Printf("%2d. [score %.4f] (id %d) %s\n", i+1, r.Score, r.ID, r.Text)
					}
				})
			})
		},
	}
	searchCmd.Flags().IntVar(&topK, "top-k", 0, "Number of results (default: configured top-k)")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the collection, ingest a demo corpus, and run a sample search",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runWithServices(cfg, func(ctx context.Context, svc *services) error {
				return runSeed(ctx, cfg, svc)
			})
		},
	}

	rootCmd.AddCommand(collectionCmd, insertCmd, getCmd, updateCmd, deleteCmd, searchCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// emit prints v as indented JSON when jsonOut is set, otherwise calls
// the human-readable printer.
func emit(jsonOut bool, v interface{}, human func()) error {
	if jsonOut {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	human()
	return nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", arg, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// exitCode maps the error taxonomy to distinct exit codes so scripts
// can tell misuse from infrastructure failures.
func exitCode(err error) int {
	switch {
	case docstore.IsValidationError(err):
		return 2
	case docstore.IsNotFoundError(err):
		return 3
	case docstore.IsConnectionError(err):
		return 4
	default:
		return 1
	}
}
