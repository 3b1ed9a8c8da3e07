package words

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads the drawing vocabulary from postgres. Words are loaded once at
// startup; the game never touches the database afterwards.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the words table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS words (word TEXT PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("create words table: %w", err)
	}
	return nil
}

// SeedWords inserts the given words, ignoring ones already present.
func (s *Store) SeedWords(ctx context.Context, list []string) error {
	for _, w := range list {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO words (word) VALUES ($1) ON CONFLICT DO NOTHING`, w); err != nil {
			return fmt.Errorf("seed word %q: %w", w, err)
		}
	}
	return nil
}

// Words returns the full vocabulary.
func (s *Store) Words(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT word FROM words ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// NewProviderFromDatabase connects to postgres, makes sure the schema and a
// minimal vocabulary exist, and returns a provider over the loaded words.
func NewProviderFromDatabase(ctx context.Context, connString string) (*StaticProvider, error) {
	store, err := NewStore(ctx, connString)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	list, err := store.Words(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		log.Println("[NewProviderFromDatabase] words table empty, seeding defaults")
		if err := store.SeedWords(ctx, DefaultWords); err != nil {
			return nil, err
		}
		list = DefaultWords
	}

	log.Printf("[NewProviderFromDatabase] loaded %d words", len(list))
	return NewStatic(list), nil
}
