package game

import (
	"fmt"
	"log"
	"sync"

	"github.com/partyhub/partyhub-backend/internal"
	"github.com/partyhub/partyhub-backend/internal/rules"
	"github.com/partyhub/partyhub-backend/internal/utils"
	"github.com/partyhub/partyhub-backend/internal/words"
)

// =============================================================================
// ROOM REGISTRY
// =============================================================================

const roomCodeLength = 6

// Registry owns every live room, keyed by room code. It is the single entry
// point for inbound events: connection handlers dispatch into it and it
// delegates to the per-game engines.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room

	words words.Provider
	rules rules.Engine
}

func NewRegistry(provider words.Provider, engine rules.Engine) *Registry {
	return &Registry{
		rooms: make(map[string]*internal.Room),
		words: provider,
		rules: engine,
	}
}

// CreateRoom allocates a fresh room in lobby state. The creator becomes the
// admin but is not a member until their join_room arrives.
func (reg *Registry) CreateRoom(cfg internal.CreateRoomData, creatorID string) (*internal.Room, error) {
	settings := cfg.Settings.Normalized()

	room := &internal.Room{
		Name:     cfg.RoomName,
		AdminID:  creatorID,
		Users:    make([]*internal.User, 0),
		GameType: cfg.GameType,
		Settings: settings,
		State:    internal.StateLobby,
	}

	switch cfg.GameType {
	case internal.GameScribble:
		room.Scribble = &internal.ScribbleData{
			CurrentRound: 1,
			MaxRounds:    settings.MaxRounds,
			Guessed:      make(map[string]bool),
		}
	case internal.GameGrid:
		room.Grid = &internal.GridData{
			Board: make([]string, settings.GridSize*settings.GridSize),
			Turn:  internal.SymbolX,
			Size:  settings.GridSize,
		}
	case internal.GameStrategy:
		room.Strategy = &internal.StrategyData{
			Position: reg.rules.InitialPosition(),
		}
	default:
		return nil, fmt.Errorf("unknown game type %q", cfg.GameType)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	// Codes are generated blind, so re-roll on collision. With a 6-digit
	// space and short-lived rooms a handful of attempts always suffices;
	// widening the code is the escape hatch if it somehow does not.
	code := utils.GenerateRoomCode(roomCodeLength)
	for attempts := 0; ; attempts++ {
		if _, exists := reg.rooms[code]; !exists {
			break
		}
		length := roomCodeLength
		if attempts >= 64 {
			length = roomCodeLength + 2
		}
		code = utils.GenerateRoomCode(length)
	}
	room.Code = code
	reg.rooms[code] = room

	log.Printf("[CreateRoom] Created room %s (%q, type=%s, settings=%+v)",
		code, cfg.RoomName, cfg.GameType, settings)
	return room, nil
}

// GetRoom returns the room for a code, or nil when unknown.
func (reg *Registry) GetRoom(code string) *internal.Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[code]
}

// RemoveRoom drops a room from the registry. Invoked only once its
// membership reaches zero.
func (reg *Registry) RemoveRoom(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.rooms[code]; exists {
		delete(reg.rooms, code)
		log.Printf("[RemoveRoom] Room %s removed from registry", code)
	}
}

func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
