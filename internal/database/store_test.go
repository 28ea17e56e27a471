package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/responder/responder/internal/config"
	"github.com/responder/responder/internal/question/repository"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_FileCreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.BackendFile, FilePath: path}}

	store, closeFn, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &repository.FileStore{}, store)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(b))
}

func TestOpenStore_Redis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendRedis},
		Redis:   config.RedisConfig{Host: m.Host(), Port: m.Port(), Key: "qa:doc"},
	}
	store, closeFn, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, doc)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, closeFn, err := OpenStore(context.Background(), &config.Config{Storage: config.StorageConfig{Backend: "tape"}})
	require.Error(t, err)
	require.NotNil(t, closeFn)
}
