package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"quizdesk/internal/httpapi"
	"quizdesk/internal/quiz"
	"quizdesk/internal/storage"
)

func main() {
	log := setupLogger()
	slog.SetDefault(log)

	defaultAddr := os.Getenv("ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}

	addr := pflag.String("addr", defaultAddr, "HTTP listen address")
	dbPath := pflag.String("db", storage.DefaultPath, "path to the quiz database file")
	pflag.Parse()

	store, err := storage.Open(*dbPath)
	if err != nil {
		log.Error("opening store failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	server := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(quiz.NewRepository(store), log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("quiz-service listening", "addr", *addr, "db", *dbPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
