package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/telefonbuch/internal/auth"
	"github.com/mmynk/telefonbuch/internal/models"
	"github.com/mmynk/telefonbuch/internal/rest"
	"github.com/mmynk/telefonbuch/internal/service"
	"github.com/mmynk/telefonbuch/internal/storage"
	"github.com/mmynk/telefonbuch/internal/storage/sqlite"
	"github.com/mmynk/telefonbuch/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/telefonbuch.db")
	seedPath := getEnv("SEED_PATH", "./data/telefonbuch-data.json")
	port := getEnv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	tokenTTL := 24 * time.Hour
	if hours := os.Getenv("TOKEN_TTL_HOURS"); hours != "" {
		h, err := strconv.Atoi(hours)
		if err != nil || h <= 0 {
			slog.Error("Invalid TOKEN_TTL_HOURS", "value", hours)
			os.Exit(1)
		}
		tokenTTL = time.Duration(h) * time.Hour
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	if err := seedEntries(context.Background(), store, seedPath); err != nil {
		slog.Error("Failed to seed entries", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(jwtSecret, tokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	logger := slog.Default()
	authSvc := service.NewAuthService(authenticator, store, jwtManager, logger)
	phonebookSvc := service.NewPhonebookService(store, logger)

	handler := rest.NewRouter(rest.NewHandlers(authSvc, phonebookSvc), jwtManager)

	// h2c allows HTTP/2 without TLS, e.g. behind a terminating proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := ":" + port
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// seedEntries bulk-loads entries from a JSON file of {name, phone} objects
// the first time the server starts with an empty database. A missing seed
// file is not an error.
func seedEntries(ctx context.Context, store storage.Store, path string) error {
	count, err := store.CountEntries(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Seed file not found, starting empty", "path", path)
			return nil
		}
		return err
	}

	var seed []struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	inserted := 0
	for _, s := range seed {
		if err := models.ValidateEntry(s.Name, s.Phone); err != nil {
			slog.Warn("Skipping invalid seed entry", "name", s.Name, "error", err)
			continue
		}
		err := store.InsertEntry(ctx, models.NewEntry(s.Name, s.Phone))
		if errors.Is(err, storage.ErrDuplicateEntry) {
			continue
		}
		if err != nil {
			return err
		}
		inserted++
	}

	slog.Info("Seeded phone book entries", "count", inserted, "path", path)
	return nil
}
