package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/partyhub/partyhub-backend/internal"
	"github.com/partyhub/partyhub-backend/internal/utils"
)

// =============================================================================
// ROOM SESSION - MEMBERSHIP & ADMIN SUCCESSION
// =============================================================================

// ErrRoomNotFound is the only membership error surfaced to the client.
var ErrRoomNotFound = errors.New("room not found")

// Join appends the user to the room, unicasts the catch-up state a late
// joiner needs to render the current position, then multicasts the refreshed
// room view.
func (reg *Registry) Join(code string, user *internal.User) error {
	room := reg.GetRoom(code)
	if room == nil {
		log.Printf("[Join] Unknown room code %s for user %s", code, user.ID)
		return ErrRoomNotFound
	}

	room.Mu.Lock()
	user.Room = room
	user.Score = 0
	user.JoinedAt = time.Now()
	room.Users = append(room.Users, user)

	view := room.View()
	catchup := catchupMessage(room)
	username := user.Username
	room.Mu.Unlock()

	log.Printf("[Join] User %s (%s) joined room %s. Total users: %d",
		user.ID, username, code, len(view.Users))

	if catchup != nil {
		if err := user.SafeWriteJSON(catchup); err != nil {
			log.Printf("[Join] Failed to send catch-up state to user %s (%s): %v",
				user.ID, username, err)
		}
	}

	broadcastSystemMessage(room, fmt.Sprintf("%s joined the room", username))
	broadcastRoomView(room, view)
	return nil
}

// catchupMessage builds the game-specific state a joining connection needs.
// Caller holds room.Mu.
func catchupMessage(room *internal.Room) any {
	switch {
	case room.Scribble != nil:
		if room.Scribble.CurrentWord == "" {
			// Nothing mid-turn to render; drawer id travels in the
			// room view.
			return nil
		}
		remaining := 0
		if t := room.Timer; t != nil && t.IsActive {
			remaining = int(time.Until(t.StartTime.Add(t.Duration)).Seconds())
			if remaining < 0 {
				// A join can race the timer's final moment.
				remaining = 0
			}
		}
		return internal.Message[internal.RoundStartData]{
			Type: "scribble_round_start",
			Data: internal.RoundStartData{
				MaskedWord: utils.MaskWord(room.Scribble.CurrentWord),
				Duration:   remaining,
				DrawerID:   room.Scribble.CurrentDrawerID,
			},
		}
	case room.Grid != nil:
		return internal.Message[internal.GridUpdateData]{
			Type: "grid_update",
			Data: internal.GridUpdateData{
				Board: append([]string(nil), room.Grid.Board...),
				Turn:  room.Grid.Turn,
				Size:  room.Grid.Size,
			},
		}
	case room.Strategy != nil:
		return internal.Message[internal.StrategyMoveData]{
			Type: "strategy_move",
			Data: internal.StrategyMoveData{Position: room.Strategy.Position},
		}
	}
	return nil
}

// Leave handles a disconnect notification: remove the user, destroy the room
// when it empties, otherwise run admin succession and keep the game moving
// if the departing user was mid-turn.
func (reg *Registry) Leave(user *internal.User) {
	room := user.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	idx := room.UserIndex(user.ID)
	if idx < 0 {
		room.Mu.Unlock()
		return
	}

	wasAdmin := room.AdminID == user.ID
	username := user.Username

	// Keep the scribble rotation pointing at the right user once the
	// slice shifts.
	drawerLeft := false
	endTurnEarly := false
	if sd := room.Scribble; sd != nil {
		delete(sd.Guessed, user.ID)
		if room.State == internal.StatePlaying {
			if idx < sd.DrawerIndex {
				sd.DrawerIndex--
			} else if user.ID == sd.CurrentDrawerID {
				drawerLeft = true
			}
		}
	}

	room.RemoveUser(user.ID)
	user.Room = nil

	if len(room.Users) == 0 {
		code := room.Code
		room.Mu.Unlock()
		reg.CancelRoundTimer(room)
		reg.RemoveRoom(code)
		log.Printf("[Leave] Room %s empty after %s left, destroyed", code, username)
		return
	}

	var newAdminName string
	if wasAdmin {
		room.AdminID = room.Users[0].ID
		newAdminName = room.Users[0].Username
	}

	// A guesser leaving can complete the everyone-guessed condition for
	// the remaining turn.
	if sd := room.Scribble; sd != nil && !drawerLeft &&
		room.State == internal.StatePlaying && sd.CurrentWord != "" &&
		len(sd.Guessed) >= len(room.Users)-1 {
		endTurnEarly = true
	}

	view := room.View()
	room.Mu.Unlock()

	log.Printf("[Leave] User %s (%s) left room %s. Remaining: %d",
		user.ID, username, room.Code, len(view.Users))

	broadcastSystemMessage(room, fmt.Sprintf("%s left the room", username))
	if wasAdmin {
		log.Printf("[Leave] Room %s: admin succession -> %s", room.Code, view.AdminID)
		broadcastSystemMessage(room, fmt.Sprintf("%s is now the room admin", newAdminName))
	}
	broadcastRoomView(room, view)

	if drawerLeft {
		reg.handleDrawerLeft(room)
	} else if endTurnEarly {
		log.Printf("[Leave] Room %s: everyone remaining has guessed, ending turn", room.Code)
		reg.endScribbleTurn(room, turnAdvanceDelay)
	}
}

// handleDrawerLeft aborts the turn whose drawer disconnected. Removal already
// advanced the rotation slot, so the index is left untouched.
func (reg *Registry) handleDrawerLeft(room *internal.Room) {
	reg.CancelRoundTimer(room)

	room.Mu.Lock()
	sd := room.Scribble
	if sd == nil {
		room.Mu.Unlock()
		return
	}
	word := sd.CurrentWord
	sd.CurrentWord = ""
	sd.CurrentDrawerID = ""
	sd.WordChoices = nil
	sd.Guessed = make(map[string]bool)
	room.Mu.Unlock()

	log.Printf("[handleDrawerLeft] Room %s: drawer disconnected mid-turn", room.Code)
	if word != "" {
		broadcastSystemMessage(room, fmt.Sprintf("The word was '%s'", word))
	}
	reg.advanceScribble(room)
}

// StartGame transitions the room into a running match. Only the admin may
// start; anyone else is silently ignored.
func (reg *Registry) StartGame(code, requesterID string) {
	room := reg.GetRoom(code)
	if room == nil {
		log.Printf("[StartGame] Unknown room code %s", code)
		return
	}

	room.Mu.Lock()
	if room.AdminID != requesterID {
		room.Mu.Unlock()
		log.Printf("[StartGame] Room %s: user %s is not admin, ignoring", code, requesterID)
		return
	}
	if room.State == internal.StatePlaying {
		room.Mu.Unlock()
		log.Printf("[StartGame] Room %s already playing, ignoring", code)
		return
	}

	room.State = internal.StatePlaying
	switch {
	case room.Scribble != nil:
		sd := room.Scribble
		sd.CurrentRound = 1
		sd.DrawerIndex = 0
		sd.CurrentDrawerID = ""
		sd.CurrentWord = ""
		sd.WordChoices = nil
		sd.Guessed = make(map[string]bool)
		for _, u := range room.Users {
			u.Score = 0
		}
	case room.Grid != nil:
		gd := room.Grid
		gd.Board = make([]string, gd.Size*gd.Size)
		gd.Turn = internal.SymbolX
	case room.Strategy != nil:
		room.Strategy.Position = reg.rules.InitialPosition()
	}

	view := room.View()
	room.Mu.Unlock()

	log.Printf("[StartGame] Room %s: match started by admin %s", code, requesterID)
	broadcastRoomView(room, view)

	switch {
	case room.Scribble != nil:
		reg.advanceScribble(room)
	case room.Grid != nil:
		reg.broadcastGridState(room)
	case room.Strategy != nil:
		reg.broadcastStrategyState(room)
	}
}
