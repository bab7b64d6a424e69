package pg

import (
	"context"
	"log"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/huddle-dev/huddle/shared/config"
	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)

	exitCode := m.Run()
	teardown(ctx, storage, container)
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "huddle"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
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

	cfg := config.Default()
	cfg.Private.Pg = config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName, Migrate: true}
	storage, err := New(ctx, cfg)
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

var (
	alice = domain.User{Id: "u-alice", Name: "alice"}
	bob   = domain.User{Id: "u-bob", Name: "bob"}
	carol = domain.User{Id: "u-carol", Name: "carol"}
)

// setupChannel creates a fresh workspace owned by alice with one channel.
// Each test gets its own workspace, so tests do not see each other's rows.
func setupChannel(t *testing.T) (*domain.Workspace, *domain.Channel) {
	t.Helper()
	ctx := context.Background()
	ws, err := storage.CreateWorkspace(ctx, "acme", alice)
	require.NoError(t, err)
	ch, err := storage.CreateChannel(ctx, domain.ChannelCreationData{WorkspaceId: ws.Id, Name: "general", Creator: alice})
	require.NoError(t, err)
	t.Cleanup(func() { storage.DeleteWorkspace(context.Background(), ws.Id) })
	return ws, ch
}

func post(t *testing.T, ch domain.ChannelId, author domain.User, text string, parent *domain.MsgId) *domain.Message {
	t.Helper()
	msg, err := storage.CreateMessage(context.Background(), domain.MessageCreationData{ChannelId: ch, Author: author, Text: text, ParentId: parent})
	require.NoError(t, err)
	return msg
}

func TestMigrateIsIdempotent(t *testing.T) {
	require.NoError(t, storage.Migrate(context.Background()))
	require.NoError(t, storage.Ping(context.Background()))
}
