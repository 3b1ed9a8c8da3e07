package game

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/partyhub/partyhub-backend/internal"
	"github.com/partyhub/partyhub-backend/internal/utils"
)

// =============================================================================
// SCRIBBLE ENGINE - TURN/ROUND STATE MACHINE
// =============================================================================

// advanceScribble moves the match to its next turn. The round/turn decision
// runs as a bounded loop: a drawer index past the end of the user list rolls
// into the next round, and a round count past the maximum ends the match.
func (reg *Registry) advanceScribble(room *internal.Room) {
	room.Mu.Lock()
	sd := room.Scribble
	if sd == nil || room.State != internal.StatePlaying {
		room.Mu.Unlock()
		return
	}

	for {
		if sd.CurrentRound > sd.MaxRounds {
			reg.finishScribbleLocked(room)
			return
		}
		if sd.DrawerIndex >= len(room.Users) {
			sd.CurrentRound++
			sd.DrawerIndex = 0
			continue
		}
		break
	}

	drawer := room.Users[sd.DrawerIndex]
	sd.CurrentDrawerID = drawer.ID
	sd.CurrentWord = ""
	sd.Guessed = make(map[string]bool)
	sd.WordChoices = reg.words.Choices(internal.WordChoiceCount)

	waiting := internal.TurnWaitingData{
		DrawerName: drawer.Username,
		Round:      sd.CurrentRound,
		MaxRounds:  sd.MaxRounds,
	}
	choices := append([]string(nil), sd.WordChoices...)
	room.Mu.Unlock()

	log.Printf("[advanceScribble] Room %s: round %d/%d, drawer %s (%s)",
		room.Code, waiting.Round, waiting.MaxRounds, drawer.ID, drawer.Username)

	SafeBroadcastToRoom(room, internal.Message[internal.TurnWaitingData]{
		Type: "scribble_turn_waiting",
		Data: waiting,
	})

	if err := drawer.SafeWriteJSON(internal.Message[internal.WordChoicesData]{
		Type: "scribble_choose_word",
		Data: internal.WordChoicesData{
			Words:     choices,
			TimeLimit: int(wordSelectDelay / time.Second),
		},
	}); err != nil {
		log.Printf("[advanceScribble] Room %s: failed to send word choices to drawer %s: %v",
			room.Code, drawer.ID, err)
	}

	// Auto-pick the first candidate if the drawer stalls out.
	drawerID := drawer.ID
	reg.StartRoundTimer(room, wordSelectDelay, func() {
		if len(choices) == 0 {
			return
		}
		log.Printf("[advanceScribble] Room %s: selection timed out, auto-selecting %q",
			room.Code, choices[0])
		reg.ChooseWord(room.Code, drawerID, choices[0])
	})
}

// finishScribbleLocked ends the match: leaderboard broadcast, back to lobby.
// Called with room.Mu held; releases it.
func (reg *Registry) finishScribbleLocked(room *internal.Room) {
	sd := room.Scribble
	sd.CurrentWord = ""
	sd.CurrentDrawerID = ""
	sd.WordChoices = nil
	sd.Guessed = make(map[string]bool)
	room.State = internal.StateLobby

	leaderboard := make([]internal.LeaderboardEntry, 0, len(room.Users))
	for _, u := range room.Users {
		leaderboard = append(leaderboard, internal.LeaderboardEntry{
			ID:       u.ID,
			Username: u.Username,
			Score:    u.Score,
		})
	}
	// Stable sort keeps membership order as the tie-break.
	slices.SortStableFunc(leaderboard, func(a, b internal.LeaderboardEntry) int {
		return b.Score - a.Score
	})
	if len(leaderboard) > internal.LeaderboardSize {
		leaderboard = leaderboard[:internal.LeaderboardSize]
	}

	view := room.View()
	room.Mu.Unlock()

	log.Printf("[finishScribble] Room %s: match over, %d entries on leaderboard",
		room.Code, len(leaderboard))

	SafeBroadcastToRoom(room, internal.Message[internal.GameOverData]{
		Type: "scribble_game_over",
		Data: internal.GameOverData{Leaderboard: leaderboard},
	})
	broadcastRoomView(room, view)
}

// ChooseWord records the drawer's pick, broadcasts the masked prompt and
// starts the round countdown.
func (reg *Registry) ChooseWord(code, userID, word string) {
	room := reg.GetRoom(code)
	if room == nil {
		return
	}

	room.Mu.Lock()
	sd := room.Scribble
	if sd == nil || room.State != internal.StatePlaying {
		room.Mu.Unlock()
		return
	}
	if sd.CurrentDrawerID != userID {
		room.Mu.Unlock()
		log.Printf("[ChooseWord] Room %s: user %s is not the drawer, ignoring", code, userID)
		return
	}
	if sd.CurrentWord != "" {
		// Already chosen; the selection timer may race the drawer.
		room.Mu.Unlock()
		return
	}
	if len(sd.WordChoices) > 0 && !slices.Contains(sd.WordChoices, word) {
		room.Mu.Unlock()
		log.Printf("[ChooseWord] Room %s: user %s picked %q, not among choices", code, userID, word)
		return
	}

	sd.CurrentWord = word
	sd.WordChoices = nil
	sd.Guessed = make(map[string]bool)

	start := internal.RoundStartData{
		MaskedWord: utils.MaskWord(word),
		Duration:   room.Settings.RoundSeconds,
		DrawerID:   sd.CurrentDrawerID,
	}
	room.Mu.Unlock()

	log.Printf("[ChooseWord] Room %s: drawer %s selected a word, round begins (%ds)",
		code, userID, start.Duration)

	SafeBroadcastToRoom(room, internal.Message[internal.RoundStartData]{
		Type: "scribble_round_start",
		Data: start,
	})

	reg.StartRoundTimer(room, time.Duration(start.Duration)*time.Second, func() {
		log.Printf("[ChooseWord] Room %s: round timer expired", code)
		reg.endScribbleTurn(room, 0)
	})
}

// endScribbleTurn reveals the word, advances the rotation and schedules the
// next turn. A zero delay advances immediately (timer expiry); a positive
// one leaves the reveal on screen first (everyone guessed early).
func (reg *Registry) endScribbleTurn(room *internal.Room, delay time.Duration) {
	reg.CancelRoundTimer(room)

	room.Mu.Lock()
	sd := room.Scribble
	if sd == nil || sd.CurrentWord == "" {
		room.Mu.Unlock()
		return
	}
	word := sd.CurrentWord
	sd.CurrentWord = ""
	sd.CurrentDrawerID = ""
	sd.DrawerIndex++
	code := room.Code
	room.Mu.Unlock()

	broadcastSystemMessage(room, fmt.Sprintf("The word was '%s'", word))

	if delay <= 0 {
		reg.advanceScribble(room)
		return
	}
	reg.ScheduleAfter(code, delay, func(r *internal.Room) {
		reg.advanceScribble(r)
	})
}

// HandleChat routes a chat line: correct guesses score, everything else is
// relayed as ordinary chat. During an active turn the drawer and users who
// already guessed cannot leak the word.
func (reg *Registry) HandleChat(user *internal.User, text string) {
	room := user.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	sd := room.Scribble
	wordActive := sd != nil && room.State == internal.StatePlaying && sd.CurrentWord != ""
	correct := wordActive && utils.NormalizeGuess(text) == utils.NormalizeGuess(sd.CurrentWord)

	if correct {
		if user.ID == sd.CurrentDrawerID || sd.Guessed[user.ID] {
			// The drawer spelling out the word, or a repeat guess.
			// Ignored, and not relayed either so the word stays
			// hidden.
			room.Mu.Unlock()
			log.Printf("[HandleChat] Room %s: suppressed word echo from %s", room.Code, user.ID)
			return
		}

		sd.Guessed[user.ID] = true
		user.Score += internal.GuesserPoints
		if drawer := room.UserByID(sd.CurrentDrawerID); drawer != nil {
			drawer.Score += internal.DrawerPoints
		}

		guessedCount := len(sd.Guessed)
		everyoneGuessed := guessedCount >= len(room.Users)-1
		view := room.View()
		username := user.Username
		room.Mu.Unlock()

		log.Printf("[HandleChat] Room %s: user %s (%s) guessed the word (guessed=%d/%d)",
			room.Code, user.ID, username, guessedCount, len(view.Users)-1)

		broadcastSystemMessage(room, fmt.Sprintf("%s guessed the word!", username))
		broadcastRoomView(room, view)

		if everyoneGuessed {
			log.Printf("[HandleChat] Room %s: all guessers done, ending turn early", room.Code)
			reg.endScribbleTurn(room, turnAdvanceDelay)
		}
		return
	}

	username := user.Username
	room.Mu.Unlock()

	SafeBroadcastToRoom(room, internal.Message[internal.ChatMessageData]{
		Type: "chat_message",
		Data: internal.ChatMessageData{Username: username, Message: text},
	})
}
