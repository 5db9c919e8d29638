package api

import (
	"context"
	"linkbio/internal/auth"
	"linkbio/internal/config"
	"linkbio/internal/database"
	"linkbio/internal/storage"
	"linkbio/internal/websocket"
	"log"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSecret = "api_test_secret"

var testServer *Server
var testRouter http.Handler

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	if err := database.Migrate(slog.Default(), connStr); err != nil {
		log.Fatalf("Could not apply migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	tempDir, err := os.MkdirTemp("", "api-storage-test")
	if err != nil {
		log.Fatalf("Could not create temp dir: %s", err)
	}

	cfg := &config.Config{
		AppHost: "http://linkbio.test",
		JWT:     config.JWTConfig{Secret: testSecret},
		Storage: config.StorageConfig{
			Path:           tempDir,
			Secret:         testSecret,
			URLTTL:         time.Minute,
			UploadTTL:      time.Minute,
			MaxUploadBytes: 1 << 20,
		},
		CORS:         config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Availability: config.AvailabilityConfig{Debounce: 20 * time.Millisecond},
	}

	signer := storage.NewSigner(cfg.AppHost, cfg.Storage.Secret, cfg.Storage.URLTTL, cfg.Storage.UploadTTL)
	localStorage, err := storage.NewLocalStorage(tempDir, signer)
	if err != nil {
		log.Fatalf("Could not create local storage: %s", err)
	}

	wsHub := websocket.NewHub(slog.Default())
	go wsHub.Run()

	store := database.NewStore(pool, wsHub)
	testServer = NewServer(cfg, store, localStorage, wsHub, slog.Default())
	testRouter = testServer.Router()

	code := m.Run()

	wsHub.Stop()
	pool.Close()
	os.RemoveAll(tempDir)
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("Could not terminate postgres: %s", err)
	}
	os.Exit(code)
}

func tokenFor(t *testing.T, accountID string) string {
	t.Helper()
	token, err := auth.GenerateJWT(accountID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Could not generate token: %s", err)
	}
	return token
}
