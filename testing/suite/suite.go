package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireSeconds   = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite bundles what repository tests need: a context, a logger and a clean redis.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New starts a throwaway redis container. Tests are skipped when docker is unreachable
// or when running with -short.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis suite needs docker, skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// never returns error
	_ = resource.Expire(expireSeconds)

	redisHost := resource.GetHostPort(redisPort)

	// the container may not accept connections right away
	pool.MaxWait = maxWaitDuration

	var redisClient *redis.Client
	if err = pool.Retry(func() error {
		var connErr error
		redisClient, connErr = connectRedis(ctx, redisHost)
		return connErr
	}); err != nil {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Fatalf("could not purge resource: %v", purgeErr)
		}

		t.Fatalf("could not connect to redis: %v", err)
	}

	if err = redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		_ = redisClient.Close()

		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge resource: %v", err)
		}
	})

	logger.Debug("redis suite ready", "addr", redisHost)

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Storage: redisClient,
	}
}

// connectRedis returns a pinged client; a client that fails the ping is closed.
func connectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
