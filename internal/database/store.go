package database

import (
	"context"
	"fmt"

	"github.com/responder/responder/internal/config"
	"github.com/responder/responder/internal/question/repository"
	"github.com/responder/responder/internal/storage"
)

// OpenStore builds the question document store selected by
// cfg.Storage.Backend. The returned close func releases any client and is
// never nil.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case config.BackendFile:
		fs := repository.NewFileStore(cfg.Storage.FilePath)
		if err := fs.Init(ctx); err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case config.BackendMemory:
		return repository.NewMemoryStore(), noop, nil
	case config.BackendMongo:
		client, err := ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			return nil, noop, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		return repository.NewMongoStore(col, "questions"), func() { _ = client.Disconnect(context.Background()) }, nil
	case config.BackendRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewRedisStore(client, cfg.Redis.Key), func() { _ = client.Close() }, nil
	case config.BackendMinIO:
		objects, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewObjectStore(objects, cfg.MinIO.Object), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
