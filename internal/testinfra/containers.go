//go:build integration

// Package testinfra starts throwaway backing services for integration tests.
//
// Tests using it are built with the integration tag and skipped when Docker
// is not reachable:
//
//	go test -tags integration ./internal/repository/...
package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultPostgresImage = "postgres:16-alpine"
	DefaultRedisImage    = "redis:7-alpine"

	postgresPort = "5432/tcp"
	redisPort    = "6379/tcp"

	PostgresUser     = "rfm"
	PostgresPassword = "rfm-secret"
	PostgresDB       = "rfm_insight"
)

// SkipIfNoDocker skips the test when no Docker daemon answers.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// Endpoint is the host and mapped port of a started container.
type Endpoint struct {
	Host string
	Port string
}

// StartPostgres runs a Postgres container for the lifetime of t.
func StartPostgres(t *testing.T) Endpoint {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        DefaultPostgresImage,
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_USER":     PostgresUser,
			"POSTGRES_PASSWORD": PostgresPassword,
			"POSTGRES_DB":       PostgresDB,
		},
		// The server logs readiness twice: once for the init run, once for real.
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(postgresPort),
		).WithStartupTimeout(60 * time.Second),
	}

	return start(t, req, postgresPort)
}

// StartRedis runs a Redis container for the lifetime of t.
func StartRedis(t *testing.T) Endpoint {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        DefaultRedisImage,
		ExposedPorts: []string{redisPort},
		WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(30 * time.Second),
	}

	return start(t, req, redisPort)
}

func start(t *testing.T, req testcontainers.ContainerRequest, port string) Endpoint {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start %s container: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	ep, err := endpoint(ctx, container, port)
	if err != nil {
		t.Fatalf("%s container: %v", req.Image, err)
	}
	return ep
}

func endpoint(ctx context.Context, container testcontainers.Container, port string) (Endpoint, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return Endpoint{}, fmt.Errorf("get container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return Endpoint{}, fmt.Errorf("get mapped port: %w", err)
	}

	return Endpoint{Host: host, Port: mapped.Port()}, nil
}
