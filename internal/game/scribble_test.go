package game

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partyhub/partyhub-backend/internal"
)

// startScribbleMatch creates a room, joins the named users (the first one
// becomes admin) and starts the match.
func startScribbleMatch(t *testing.T, reg *Registry, settings internal.Settings, names ...string) (*internal.Room, []*internal.User, []*testConn) {
	t.Helper()
	room := newRoom(t, reg, internal.GameScribble, settings, "")

	users := make([]*internal.User, 0, len(names))
	conns := make([]*testConn, 0, len(names))
	for _, name := range names {
		u, c := joinUser(t, reg, room.Code, name)
		users = append(users, u)
		conns = append(conns, c)
	}
	room.Mu.Lock()
	room.AdminID = users[0].ID
	room.Mu.Unlock()

	reg.StartGame(room.Code, users[0].ID)
	t.Cleanup(func() { reg.CancelRoundTimer(room) })
	return room, users, conns
}

func TestTurnRotationVisitsEveryUserPerRound(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 2, RoundSeconds: 60}, "alice", "bob", "carol")

	var drawerSeq []string
	for turn := 0; turn < 6; turn++ {
		drawerID, choices := currentDrawer(t, room)
		drawerSeq = append(drawerSeq, drawerID)

		reg.ChooseWord(room.Code, drawerID, choices[0])
		for _, u := range users {
			if u.ID != drawerID {
				reg.HandleChat(u, choices[0])
			}
		}
	}

	require.Eventually(t, func() bool {
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		return room.State == internal.StateLobby
	}, 2*time.Second, 5*time.Millisecond, "match never ended")

	expected := []string{
		users[0].ID, users[1].ID, users[2].ID,
		users[0].ID, users[1].ID, users[2].ID,
	}
	assert.Equal(t, expected, drawerSeq, "each user draws once per round, in join order")

	// MATCH_OVER is reached exactly once.
	for _, c := range conns {
		assert.Equal(t, 1, c.count("scribble_game_over"))
	}

	// No re-entry into playing without an explicit restart.
	time.Sleep(100 * time.Millisecond)
	room.Mu.RLock()
	assert.Equal(t, internal.StateLobby, room.State)
	room.Mu.RUnlock()
}

func TestCorrectGuessScoresOnce(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 1, RoundSeconds: 60}, "alice", "bob", "carol")

	drawerID, choices := currentDrawer(t, room)
	require.Equal(t, users[0].ID, drawerID)
	word := choices[0]
	reg.ChooseWord(room.Code, drawerID, word)

	reg.HandleChat(users[1], "  "+strings.ToUpper(word)+" ")

	room.Mu.RLock()
	assert.Equal(t, internal.GuesserPoints, users[1].Score)
	assert.Equal(t, internal.DrawerPoints, users[0].Score)
	assert.Zero(t, users[2].Score)
	room.Mu.RUnlock()

	assert.True(t, conns[2].hasSystemMessage("bob guessed the word!"))

	// A repeat guess neither scores again nor leaks the word.
	chatBefore := conns[2].count("chat_message")
	reg.HandleChat(users[1], word)

	room.Mu.RLock()
	assert.Equal(t, internal.GuesserPoints, users[1].Score)
	assert.Equal(t, internal.DrawerPoints, users[0].Score)
	room.Mu.RUnlock()
	assert.Equal(t, chatBefore, conns[2].count("chat_message"))
}

func TestDrawerGuessIgnored(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 1, RoundSeconds: 60}, "alice", "bob")

	drawerID, choices := currentDrawer(t, room)
	word := choices[0]
	reg.ChooseWord(room.Code, drawerID, word)

	reg.HandleChat(users[0], word)

	room.Mu.RLock()
	assert.Zero(t, users[0].Score)
	room.Mu.RUnlock()
	assert.Zero(t, conns[1].count("chat_message"), "drawer's word echo must not be relayed")
}

func TestWrongGuessIsOrdinaryChat(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 1, RoundSeconds: 60}, "alice", "bob")

	drawerID, choices := currentDrawer(t, room)
	reg.ChooseWord(room.Code, drawerID, choices[0])

	reg.HandleChat(users[1], "definitely not it")

	chat := lastOf[internal.ChatMessageData](t, conns[0], "chat_message")
	assert.Equal(t, "bob", chat.Username)
	assert.Equal(t, "definitely not it", chat.Message)

	room.Mu.RLock()
	assert.Zero(t, users[1].Score)
	room.Mu.RUnlock()
}

func TestGuessIgnoredWithoutActiveWord(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 1, RoundSeconds: 60}, "alice", "bob")

	_, choices := currentDrawer(t, room)

	// No word chosen yet: even the right text is just chat.
	reg.HandleChat(users[1], choices[0])

	room.Mu.RLock()
	assert.Zero(t, users[1].Score)
	room.Mu.RUnlock()
	assert.Equal(t, 1, conns[0].count("chat_message"))
}

func TestEveryoneGuessedEndsTurnEarly(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, _ := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 2, RoundSeconds: 600}, "alice", "bob", "carol")

	drawerID, choices := currentDrawer(t, room)
	word := choices[0]
	reg.ChooseWord(room.Code, drawerID, word)

	reg.HandleChat(users[1], word)

	room.Mu.RLock()
	stillActive := room.Timer != nil && room.Timer.IsActive
	room.Mu.RUnlock()
	assert.True(t, stillActive, "one guesser missing, round keeps running")

	reg.HandleChat(users[2], word)

	// Timer is cancelled long before its natural 600s expiry.
	require.Eventually(t, func() bool {
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		return room.Timer == nil || !room.Timer.IsActive || room.Scribble.CurrentWord == ""
	}, time.Second, 5*time.Millisecond)

	room.Mu.RLock()
	assert.Empty(t, room.Scribble.CurrentWord)
	room.Mu.RUnlock()

	// ... and the next turn starts after the advance delay.
	nextDrawer, _ := currentDrawer(t, room)
	assert.Equal(t, users[1].ID, nextDrawer)
}

func TestRoundTimerExpiryRevealsAndAdvances(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 2, RoundSeconds: 2}, "alice", "bob")

	drawerID, choices := currentDrawer(t, room)
	require.Equal(t, users[0].ID, drawerID)
	word := choices[0]
	reg.ChooseWord(room.Code, drawerID, word)

	// The countdown ticks at least once before the 2s expiry.
	require.Eventually(t, func() bool {
		return conns[1].count("timer_update") >= 1
	}, 2*time.Second, 10*time.Millisecond, "no timer_update broadcast")

	// Nobody guesses; expiry reveals the word and rotates the turn.
	require.Eventually(t, func() bool {
		return conns[1].hasSystemMessage("The word was '" + word + "'")
	}, 4*time.Second, 10*time.Millisecond, "word never revealed on expiry")

	nextDrawer, _ := currentDrawer(t, room)
	assert.Equal(t, users[1].ID, nextDrawer)

	room.Mu.RLock()
	assert.Equal(t, 1, room.Scribble.DrawerIndex)
	assert.Equal(t, 1, room.Scribble.CurrentRound)
	room.Mu.RUnlock()
}

func TestWordSelectionTimeoutAutoPicksFirstChoice(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)
	shortWordSelect(t, 150*time.Millisecond)

	room, _, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 1, RoundSeconds: 60}, "alice", "bob")

	drawerID, choices := currentDrawer(t, room)

	// The drawer never answers; the window elapses on its own.
	require.Eventually(t, func() bool {
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		return room.Scribble.CurrentWord != ""
	}, 2*time.Second, 5*time.Millisecond, "word never auto-selected")

	room.Mu.RLock()
	assert.Equal(t, choices[0], room.Scribble.CurrentWord)
	room.Mu.RUnlock()

	start := lastOf[internal.RoundStartData](t, conns[1], "scribble_round_start")
	assert.Equal(t, drawerID, start.DrawerID)
	assert.Equal(t, 60, start.Duration)
}

func TestRoundStartBroadcastsMaskedWord(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, _, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 1, RoundSeconds: 45}, "alice", "bob")

	drawerID, choices := currentDrawer(t, room)
	word := choices[0]
	reg.ChooseWord(room.Code, drawerID, word)

	start := lastOf[internal.RoundStartData](t, conns[1], "scribble_round_start")
	assert.Equal(t, 45, start.Duration)
	assert.Equal(t, drawerID, start.DrawerID)
	assert.NotEqual(t, word, start.MaskedWord)
	assert.Equal(t, strings.Repeat("_", len(word)), start.MaskedWord)
}

func TestTurnWaitingAnnouncesDrawer(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, _, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 2, RoundSeconds: 60}, "alice", "bob")

	currentDrawer(t, room)

	waiting := lastOf[internal.TurnWaitingData](t, conns[1], "scribble_turn_waiting")
	assert.Equal(t, "alice", waiting.DrawerName)
	assert.Equal(t, 1, waiting.Round)
	assert.Equal(t, 2, waiting.MaxRounds)

	// Candidate words go to the drawer alone.
	assert.Equal(t, 1, conns[0].count("scribble_choose_word"))
	assert.Zero(t, conns[1].count("scribble_choose_word"))

	choices := lastOf[internal.WordChoicesData](t, conns[0], "scribble_choose_word")
	assert.Len(t, choices.Words, internal.WordChoiceCount)
}

func TestGameOverLeaderboardTopFive(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 1, RoundSeconds: 60},
		"u1", "u2", "u3", "u4", "u5", "u6")

	// Hand out distinct scores, lowest for the first user.
	room.Mu.Lock()
	for i, u := range users {
		u.Score = i * 10
	}
	sd := room.Scribble
	sd.CurrentRound = sd.MaxRounds + 1
	room.Mu.Unlock()

	reg.advanceScribble(room)

	over := lastOf[internal.GameOverData](t, conns[0], "scribble_game_over")
	require.Len(t, over.Leaderboard, internal.LeaderboardSize)
	assert.Equal(t, users[5].ID, over.Leaderboard[0].ID)
	assert.Equal(t, 50, over.Leaderboard[0].Score)
	assert.Equal(t, users[1].ID, over.Leaderboard[4].ID, "lowest scorer drops off the top five")

	room.Mu.RLock()
	assert.Equal(t, internal.StateLobby, room.State)
	room.Mu.RUnlock()
}

func TestDrawerDisconnectMidTurnAdvances(t *testing.T) {
	reg := newTestRegistry()
	shortDelays(t)

	room, users, conns := startScribbleMatch(t, reg,
		internal.Settings{MaxRounds: 2, RoundSeconds: 600}, "alice", "bob", "carol")

	drawerID, choices := currentDrawer(t, room)
	require.Equal(t, users[0].ID, drawerID)
	word := choices[0]
	reg.ChooseWord(room.Code, drawerID, word)

	reg.Leave(users[0])

	assert.True(t, conns[1].hasSystemMessage("The word was '"+word+"'"))

	nextDrawer, _ := currentDrawer(t, room)
	assert.Equal(t, users[1].ID, nextDrawer)

	room.Mu.RLock()
	assert.Len(t, room.Users, 2)
	assert.Equal(t, users[1].ID, room.AdminID, "admin succession ran for the departing admin")
	room.Mu.RUnlock()
}
