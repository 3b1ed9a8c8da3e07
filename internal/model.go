package internal

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const (
	DefaultMaxRounds    = 3
	DefaultRoundSeconds = 80
	DefaultGridSize     = 3

	WordChoiceCount   = 3
	WordSelectSeconds = 15

	GuesserPoints   = 100
	DrawerPoints    = 25
	LeaderboardSize = 5
)

type GameType string

const (
	GameScribble GameType = "scribble"
	GameGrid     GameType = "grid"
	GameStrategy GameType = "strategy"
)

type RoomState string

const (
	StateLobby   RoomState = "lobby"
	StatePlaying RoomState = "playing"
)

// Grid cell symbols. An empty string marks an unoccupied cell.
const (
	SymbolX = "X"
	SymbolO = "O"
)

// Settings is the immutable room configuration chosen at creation.
type Settings struct {
	MaxRounds    int `json:"max_rounds"`
	RoundSeconds int `json:"round_seconds"`
	GridSize     int `json:"grid_size"`
}

// Normalized returns a copy with defaults applied for omitted or
// non-positive values.
func (s Settings) Normalized() Settings {
	if s.MaxRounds <= 0 {
		s.MaxRounds = DefaultMaxRounds
	}
	if s.RoundSeconds <= 0 {
		s.RoundSeconds = DefaultRoundSeconds
	}
	if s.GridSize <= 0 {
		s.GridSize = DefaultGridSize
	}
	return s
}

// UnmarshalJSON tolerates clients sending settings values as strings or any
// other non-numeric JSON: such values decode to zero, so Normalized applies
// the default instead of the whole create request failing to parse.
func (s *Settings) UnmarshalJSON(data []byte) error {
	*s = Settings{}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// A non-object settings payload counts as omitted entirely.
		return nil
	}
	s.MaxRounds = intSetting(raw["max_rounds"])
	s.RoundSeconds = intSetting(raw["round_seconds"])
	s.GridSize = intSetting(raw["grid_size"])
	return nil
}

func intSetting(raw json.RawMessage) int {
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}

// RoundTimer is the single live countdown a room may own. Context expiry
// (DeadlineExceeded) means natural expiry; Cancel marks an early stop.
type RoundTimer struct {
	StartTime time.Time
	Duration  time.Duration
	IsActive  bool
	Context   context.Context
	Cancel    context.CancelFunc
}

// ScribbleData is the drawing game's per-room state.
//
// DrawerIndex ranges over 0..len(users); len(users) itself signals that the
// rotation is exhausted and the next round should begin.
type ScribbleData struct {
	CurrentRound    int
	MaxRounds       int
	DrawerIndex     int
	CurrentDrawerID string
	CurrentWord     string
	WordChoices     []string
	Guessed         map[string]bool
}

// GridData is the grid game's per-room state. Board has Size*Size cells.
type GridData struct {
	Board []string
	Turn  string
	Size  int
}

// StrategyData holds the authoritative position encoding for the strategy
// game. Legality lives in the external rules engine, not here.
type StrategyData struct {
	Position string
}

// Room is one isolated game session. Exactly one of Scribble/Grid/Strategy
// is non-nil, matching GameType. Users keeps insertion order, which doubles
// as the turn order.
type Room struct {
	Code     string
	Name     string
	AdminID  string
	Users    []*User
	GameType GameType
	Settings Settings
	State    RoomState

	Scribble *ScribbleData
	Grid     *GridData
	Strategy *StrategyData

	Timer *RoundTimer

	Mu sync.RWMutex
}
