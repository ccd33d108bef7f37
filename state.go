package recipebox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"recipebox/storage"
)

const (
	BackendFile     = "file"
	BackendS3       = "s3"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// OpenState builds the favorites State selected by cfg. The returned cleanup
// releases any connection the backend holds.
func OpenState(ctx context.Context, cfg StoreConfig) (storage.State, func() error, error) {
	noop := func() error { return nil }
	key := cfg.Key
	if key == "" {
		key = storage.DefaultKey
	}

	switch cfg.Backend {
	case BackendFile, "":
		slog.Info("SETUP: Favorites stored in file", "path", cfg.FilePath)
		return storage.NewFileState(cfg.FilePath), noop, nil

	case BackendS3:
		if cfg.S3Bucket == "" {
			return nil, noop, fmt.Errorf("missing S3 config: FAVORITES_S3_BUCKET must be set")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load AWS config: %w", err)
		}
		slog.Info("SETUP: Favorites stored in S3", "bucket", cfg.S3Bucket, "key", key)
		return storage.NewS3State(s3.NewFromConfig(awsCfg), cfg.S3Bucket, key), noop, nil

	case BackendRedis:
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		slog.Info("SETUP: Favorites stored in Redis", "key", key)
		return storage.NewRedisState(client, key), client.Close, nil

	case BackendSQLite, BackendPostgres:
		open, dsn := storage.OpenSQLite, cfg.SQLitePath
		if cfg.Backend == BackendPostgres {
			if cfg.PostgresDSN == "" {
				return nil, noop, fmt.Errorf("missing Postgres config: FAVORITES_POSTGRES_DSN must be set")
			}
			open, dsn = storage.OpenPostgres, cfg.PostgresDSN
		}
		db, err := open(dsn)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open %s database: %w", cfg.Backend, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, err
		}
		state, err := storage.NewSQLState(db, key)
		if err != nil {
			sqlDB.Close() // nolint: errcheck
			return nil, noop, err
		}
		slog.Info("SETUP: Favorites stored in SQL database", "driver", cfg.Backend, "key", key)
		return state, sqlDB.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown favorites backend %q", cfg.Backend)
	}
}
