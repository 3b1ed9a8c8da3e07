package game

import (
	"fmt"
	"log"

	"github.com/partyhub/partyhub-backend/internal"
)

// =============================================================================
// GRID GAME ENGINE
// =============================================================================

// HandleGridMove places the current turn's symbol. Moves onto occupied cells
// are dropped without feedback.
func (reg *Registry) HandleGridMove(user *internal.User, index int) {
	room := user.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	gd := room.Grid
	if gd == nil || room.State != internal.StatePlaying {
		room.Mu.Unlock()
		return
	}
	if index < 0 || index >= len(gd.Board) {
		room.Mu.Unlock()
		log.Printf("[HandleGridMove] Room %s: index %d out of range, ignoring", room.Code, index)
		return
	}
	if gd.Board[index] != "" {
		room.Mu.Unlock()
		log.Printf("[HandleGridMove] Room %s: cell %d occupied, ignoring", room.Code, index)
		return
	}

	gd.Board[index] = gd.Turn
	outcome := DetectWinner(gd.Board, gd.Size)
	if outcome == OutcomeNone {
		if gd.Turn == internal.SymbolX {
			gd.Turn = internal.SymbolO
		} else {
			gd.Turn = internal.SymbolX
		}
	}

	update := internal.GridUpdateData{
		Board: append([]string(nil), gd.Board...),
		Turn:  gd.Turn,
		Size:  gd.Size,
	}
	code := room.Code
	room.Mu.Unlock()

	SafeBroadcastToRoom(room, internal.Message[internal.GridUpdateData]{
		Type: "grid_update",
		Data: update,
	})

	if outcome == OutcomeNone {
		return
	}

	if outcome == OutcomeDraw {
		log.Printf("[HandleGridMove] Room %s: board full, draw", code)
		broadcastSystemMessage(room, "It's a draw!")
	} else {
		log.Printf("[HandleGridMove] Room %s: %s wins", code, outcome)
		broadcastSystemMessage(room, fmt.Sprintf("%s wins!", outcome))
	}

	reg.ScheduleAfter(code, boardResetDelay, func(r *internal.Room) {
		reg.resetGrid(r)
	})
}

// resetGrid clears the board for a fresh game after a win or draw.
func (reg *Registry) resetGrid(room *internal.Room) {
	room.Mu.Lock()
	gd := room.Grid
	if gd == nil {
		room.Mu.Unlock()
		return
	}
	gd.Board = make([]string, gd.Size*gd.Size)
	gd.Turn = internal.SymbolX

	update := internal.GridUpdateData{
		Board: append([]string(nil), gd.Board...),
		Turn:  gd.Turn,
		Size:  gd.Size,
	}
	room.Mu.Unlock()

	log.Printf("[resetGrid] Room %s: board reset", room.Code)
	SafeBroadcastToRoom(room, internal.Message[internal.GridUpdateData]{
		Type: "grid_update",
		Data: update,
	})
	broadcastSystemMessage(room, fmt.Sprintf("New game! %s goes first", internal.SymbolX))
}

// broadcastGridState pushes the current board, used when a match starts.
func (reg *Registry) broadcastGridState(room *internal.Room) {
	room.Mu.RLock()
	gd := room.Grid
	if gd == nil {
		room.Mu.RUnlock()
		return
	}
	update := internal.GridUpdateData{
		Board: append([]string(nil), gd.Board...),
		Turn:  gd.Turn,
		Size:  gd.Size,
	}
	room.Mu.RUnlock()

	SafeBroadcastToRoom(room, internal.Message[internal.GridUpdateData]{
		Type: "grid_update",
		Data: update,
	})
}
