package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/partyhub/partyhub-backend/internal/game"
	"github.com/partyhub/partyhub-backend/internal/rules"
	"github.com/partyhub/partyhub-backend/internal/server"
	"github.com/partyhub/partyhub-backend/internal/words"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	provider := buildWordProvider()
	registry := game.NewRegistry(provider, rules.NewChessEngine())

	srv := server.NewServer(registry)
	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}
}

// buildWordProvider picks the vocabulary source: postgres when DATABASE_URL
// is set, a CSV file when WORDS_CSV is set, the built-in list otherwise.
func buildWordProvider() words.Provider {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		provider, err := words.NewProviderFromDatabase(context.Background(), dsn)
		if err != nil {
			log.Fatalf("load words from database: %v", err)
		}
		return provider
	}

	if path := os.Getenv("WORDS_CSV"); path != "" {
		list, err := words.ReadCsvFile(path)
		if err != nil {
			log.Fatalf("load words from csv: %v", err)
		}
		log.Printf("Loaded %d words from %s", len(list), path)
		return words.NewStatic(list)
	}

	return words.NewStatic(nil)
}
