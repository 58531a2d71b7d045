package milvus

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	dockercontainer "github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"

	"github.com/docuseek/docstore/v1/docstore"
	"github.com/docuseek/docstore/v1/logger"
)

const embedEtcdConfig = `listen-client-urls: http://0.0.0.0:2379
advertise-client-urls: http://0.0.0.0:2379
proxy: off
`

// initializeMilvus starts a standalone Milvus with embedded etcd and
// local storage, returning the mapped gRPC host and port.
func initializeMilvus(ctx context.Context, t *testing.T) (string, int, testcontainers.Container) {
	t.Helper()

	hostPort, err := getFreePort()
	require.NoError(t, err)

	containerInstance, err := createMilvusContainer(ctx, hostPort)
	require.NoError(t, err)

	host, err := containerInstance.Host(ctx)
	require.NoError(t, err)
	port, err := containerInstance.MappedPort(ctx, "19530")
	require.NoError(t, err)

	return host, port.Int(), containerInstance
}

func createMilvusContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {
	portBindings := nat.PortMap{
		"19530/tcp": []nat.PortBinding{{HostPort: hostPort}},
	}

	req := testcontainers.ContainerRequest{
		Image:        "milvusdb/milvus:v2.4.4",
		ExposedPorts: []string{"19530/tcp", "9091/tcp"},
		Cmd:          []string{"milvus", "run", "standalone"},
		Env: map[string]string{
			"ETCD_USE_EMBED":     "true",
			"ETCD_DATA_DIR":      "/var/lib/milvus/etcd",
			"ETCD_CONFIG_PATH":   "/milvus/configs/embedEtcd.yaml",
			"COMMON_STORAGETYPE": "local",
		},
		Files: []testcontainers.ContainerFile{{
			Reader:            strings.NewReader(embedEtcdConfig),
			ContainerFilePath: "/milvus/configs/embedEtcd.yaml",
			FileMode:          0o644,
		}},
		HostConfigModifier: func(cfg *dockercontainer.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("19530/tcp").WithStartupTimeout(3*time.Minute),
			wait.ForHTTP("/healthz").WithPort("9091/tcp").WithStartupTimeout(3*time.Minute),
		),
	}

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func getFreePort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port), nil
}

// unit vectors along distinct axes make L2 distances predictable: a
// query equal to a stored vector has distance 0 and score 1.
func axisVector(dim, axis int) []float32 {
	v := make([]float32, dim)
	v[axis] = 1
	return v
}

func TestMilvusDocumentLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	const dim = 8

	host, port, containerInstance := initializeMilvus(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	cfg := DefaultConfig().
		WithHost(host).
		WithPort(port).
		WithCollection("lifecycle_test").
		WithDimension(dim)
	cfg.IndexType = IndexFlat

	var store docstore.Gateway
	app := fx.New(
		logger.FXModule,
		FXModule,
		fx.Provide(
			func() *Config { return cfg },
			func() logger.Config { return logger.Config{ServiceName: "milvus-test", Level: logger.Error} },
		),
		fx.Populate(&store),
	)
	require.NoError(t, app.Start(ctx))
	defer app.Stop(ctx)

	t.Run("connect is idempotent", func(t *testing.T) {
		require.NoError(t, store.Connect(ctx))
		require.NoError(t, store.Connect(ctx))
	})

	t.Run("create collection", func(t *testing.T) {
		info, err := store.CreateCollection(ctx, dim, "")
		require.NoError(t, err)
		assert.Equal(t, "lifecycle_test", info.Name)
		assert.Equal(t, dim, info.Dimension)

		// Re-creating returns the existing collection untouched.
		again, err := store.CreateCollection(ctx, dim, "")
		require.NoError(t, err)
		assert.Equal(t, info.Name, again.Name)

		names, err := store.ListCollections(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "lifecycle_test")
	})

	var ids []int64
	texts := []string{"alpha document", "beta document", "gamma document"}

	t.Run("insert returns ids in input order", func(t *testing.T) {
		embeddings := [][]float32{axisVector(dim, 0), axisVector(dim, 1), axisVector(dim, 2)}

		var err error
		ids, err = store.InsertDocuments(ctx, texts, embeddings)
		require.NoError(t, err)
		require.Len(t, ids, len(texts))
		for i := 1; i < len(ids); i++ {
			assert.Greater(t, ids[i], ids[i-1], "auto-ids should be assigned in order")
		}
	})

	t.Run("insert rejects dimension mismatch", func(t *testing.T) {
		_, err := store.InsertDocuments(ctx, []string{"bad"}, [][]float32{{1, 2}})
		assert.True(t, docstore.IsValidationError(err))
	})

	t.Run("point lookup round trip", func(t *testing.T) {
		doc, err := store.GetDocument(ctx, ids[0])
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, ids[0], doc.ID)
		assert.Equal(t, texts[0], doc.Text)
		assert.Len(t, doc.Embedding, dim)
	})

	t.Run("lookup of absent id returns nil without error", func(t *testing.T) {
		doc, err := store.GetDocument(ctx, 999999999)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("batch lookup omits missing ids", func(t *testing.T) {
		docs, err := store.QueryByIDs(ctx, []int64{ids[0], 999999999, ids[2]})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("search ranks exact match first with score 1", func(t *testing.T) {
		results, err := store.Search(ctx, axisVector(dim, 1), 3)
		require.NoError(t, err)
		require.NotEmpty(t, results)

		best := results[0]
		assert.Equal(t, ids[1], best.ID)
		assert.Equal(t, texts[1], best.Text)
		assert.InDelta(t, 1.0, best.Score, 1e-6)

		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score, "results must be ordered best-first")
		}
	})

	t.Run("update replaces the row under a new id", func(t *testing.T) {
		res, err := store.UpdateDocument(ctx, ids[0], "alpha rewritten", axisVector(dim, 3))
		require.NoError(t, err)
		assert.Equal(t, ids[0], res.PreviousID)
		assert.NotEqual(t, res.PreviousID, res.NewID)
		assert.True(t, res.Replaced)

		old, err := store.GetDocument(ctx, res.PreviousID)
		require.NoError(t, err)
		assert.Nil(t, old, "previous id must be gone after update")

		fresh, err := store.GetDocument(ctx, res.NewID)
		require.NoError(t, err)
		require.NotNil(t, fresh)
		assert.Equal(t, "alpha rewritten", fresh.Text)

		ids[0] = res.NewID
	})

	t.Run("update of absent id wraps not found", func(t *testing.T) {
		_, err := store.UpdateDocument(ctx, 999999999, "ghost", axisVector(dim, 0))
		assert.True(t, docstore.IsNotFoundError(err))
	})

	t.Run("delete reports matched rows and is idempotent in effect", func(t *testing.T) {
		matched, err := store.DeleteDocument(ctx, ids[2])
		require.NoError(t, err)
		assert.Equal(t, int64(1), matched)

		matched, err = store.DeleteDocument(ctx, ids[2])
		require.NoError(t, err)
		assert.Equal(t, int64(0), matched)
	})

	t.Run("stats reflect persisted rows", func(t *testing.T) {
		stats, err := store.CollectionStats(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "lifecycle_test", stats.Name)
		assert.GreaterOrEqual(t, stats.RowCount, int64(2))
	})

	t.Run("clear empties the collection but keeps it usable", func(t *testing.T) {
		removed, err := store.ClearCollection(ctx, "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, removed, int64(2))

		again, err := store.ClearCollection(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), again)

		fresh, err := store.InsertDocuments(ctx, []string{"post-clear"}, [][]float32{axisVector(dim, 4)})
		require.NoError(t, err)
		assert.Len(t, fresh, 1)
	})

	t.Run("drop collection and absent drop is a no-op", func(t *testing.T) {
		require.NoError(t, store.DropCollection(ctx, ""))
		require.NoError(t, store.DropCollection(ctx, ""))

		_, err := store.GetCollection(ctx, "")
		assert.True(t, docstore.IsNotFoundError(err))
	})

	t.Run("disconnect is idempotent", func(t *testing.T) {
		require.NoError(t, store.Disconnect(ctx))
		require.NoError(t, store.Disconnect(ctx))
	})
}
