package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"quizdesk/internal/cli"
	"quizdesk/internal/quiz"
	"quizdesk/internal/storage"
)

func main() {
	dbPath := pflag.String("db", storage.DefaultPath, "path to the quiz database file")
	pflag.Parse()

	store, err := storage.Open(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer store.Close()

	repo := quiz.NewRepository(store)
	if err := cli.Run(context.Background(), repo, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
