package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/partyhub/partyhub-backend/internal/game"
)

type Server struct {
	port     int
	registry *game.Registry
}

// NewServer wires the room registry behind an http.Server. PORT comes from
// the environment, defaulting to 8080.
func NewServer(registry *game.Registry) *http.Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		port = 8080
	}

	s := &Server{
		port:     port,
		registry: registry,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
