package pg

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/talkboard/talkboard/internal/config"
	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "talkboard"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	storage, err := New(&config.Config{Public: config.Public{
		ThreadsPerPage: 3,
		Pg:             config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName},
	}})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// --- Shared fixtures ---

var fixtureSeq int64

// setupUser inserts a fresh user row and returns it.
func setupUser(t *testing.T) domain.User {
	t.Helper()
	fixtureSeq++
	email := fmt.Sprintf("user%d-%d@test.local", fixtureSeq, time.Now().UnixNano())

	var user domain.User
	user.Email = email
	err := storage.db.QueryRow(
		"INSERT INTO users (email) VALUES ($1) RETURNING id", email,
	).Scan(&user.Id)
	require.NoError(t, err, "failed to insert fixture user")

	t.Cleanup(func() {
		storage.db.Exec("DELETE FROM users WHERE id = $1", user.Id)
	})
	return user
}

// setupCategory inserts a fresh category row and returns its id.
func setupCategory(t *testing.T) domain.CategoryId {
	t.Helper()
	fixtureSeq++
	name := fmt.Sprintf("category-%d-%d", fixtureSeq, time.Now().UnixNano())

	var id domain.CategoryId
	err := storage.db.QueryRow(
		"INSERT INTO categories (name) VALUES ($1) RETURNING id", name,
	).Scan(&id)
	require.NoError(t, err, "failed to insert fixture category")

	t.Cleanup(func() {
		storage.db.Exec("DELETE FROM threads WHERE category_id = $1", id)
		storage.db.Exec("DELETE FROM categories WHERE id = $1", id)
	})
	return id
}

func requireNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 404, statusErr.StatusCode)
}
