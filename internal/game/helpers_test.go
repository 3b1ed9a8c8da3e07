package game

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/partyhub/partyhub-backend/internal"
	"github.com/partyhub/partyhub-backend/internal/words"
)

// testConn records every message written to it so tests can assert on the
// broadcast traffic.
type testConn struct {
	mu   sync.Mutex
	msgs []recordedMsg
}

type recordedMsg struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (c *testConn) WriteJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var m recordedMsg
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	c.mu.Lock()
	c.msgs = append(c.msgs, m)
	c.mu.Unlock()
	return nil
}

func (c *testConn) Close() error { return nil }

func (c *testConn) ofType(msgType string) []json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []json.RawMessage
	for _, m := range c.msgs {
		if m.Type == msgType {
			out = append(out, m.Data)
		}
	}
	return out
}

func (c *testConn) count(msgType string) int {
	return len(c.ofType(msgType))
}

func (c *testConn) systemMessages() []string {
	var out []string
	for _, raw := range c.ofType("system_message") {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func (c *testConn) hasSystemMessage(text string) bool {
	for _, s := range c.systemMessages() {
		if s == text {
			return true
		}
	}
	return false
}

func lastOf[T any](t *testing.T, c *testConn, msgType string) T {
	t.Helper()
	raws := c.ofType(msgType)
	require.NotEmpty(t, raws, "no %s message recorded", msgType)
	var data T
	require.NoError(t, json.Unmarshal(raws[len(raws)-1], &data))
	return data
}

// stubEngine is a rules engine that accepts every move except "bad",
// appending the move to the position.
type stubEngine struct{}

func (stubEngine) InitialPosition() string { return "start" }

func (stubEngine) Apply(position, move string) (string, error) {
	if move == "bad" {
		return "", fmt.Errorf("illegal move %q", move)
	}
	return position + " " + move, nil
}

func newTestRegistry() *Registry {
	vocab := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}
	return NewRegistry(words.NewStatic(vocab), stubEngine{})
}

// shortDelays shrinks the fire-and-forget pauses so tests run fast.
func shortDelays(t *testing.T) {
	t.Helper()
	prevTurn, prevBoard := turnAdvanceDelay, boardResetDelay
	turnAdvanceDelay = 20 * time.Millisecond
	boardResetDelay = 20 * time.Millisecond
	t.Cleanup(func() {
		turnAdvanceDelay = prevTurn
		boardResetDelay = prevBoard
	})
}

// shortWordSelect shrinks the word-selection window. Kept out of shortDelays
// so the auto-pick cannot race tests that choose the word themselves.
func shortWordSelect(t *testing.T, d time.Duration) {
	t.Helper()
	prev := wordSelectDelay
	wordSelectDelay = d
	t.Cleanup(func() { wordSelectDelay = prev })
}

func newRoom(t *testing.T, reg *Registry, gameType internal.GameType, settings internal.Settings, creatorID string) *internal.Room {
	t.Helper()
	room, err := reg.CreateRoom(internal.CreateRoomData{
		RoomName: "test room",
		GameType: gameType,
		Settings: settings,
	}, creatorID)
	require.NoError(t, err)
	return room
}

func joinUser(t *testing.T, reg *Registry, code, username string) (*internal.User, *testConn) {
	t.Helper()
	conn := &testConn{}
	user := &internal.User{
		ID:       uuid.NewString(),
		Conn:     conn,
		Username: username,
	}
	require.NoError(t, reg.Join(code, user))
	return user, conn
}

// currentDrawer waits for the engine to reach the word-selection phase and
// returns the drawer id plus their candidate words.
func currentDrawer(t *testing.T, room *internal.Room) (string, []string) {
	t.Helper()
	var drawerID string
	var choices []string
	require.Eventually(t, func() bool {
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		sd := room.Scribble
		if sd == nil || sd.CurrentDrawerID == "" || sd.CurrentWord != "" || len(sd.WordChoices) == 0 {
			return false
		}
		drawerID = sd.CurrentDrawerID
		choices = append([]string(nil), sd.WordChoices...)
		return true
	}, 2*time.Second, 5*time.Millisecond, "engine never reached word selection")
	return drawerID, choices
}
