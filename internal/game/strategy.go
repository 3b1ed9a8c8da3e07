package game

import (
	"log"

	"github.com/partyhub/partyhub-backend/internal"
)

// =============================================================================
// STRATEGY GAME RELAY
// =============================================================================

// HandleChessMove relays a proposed move through the rules engine. Accepted
// moves persist the new position and fan out; rejected ones are dropped
// silently, leaving the stored position untouched.
func (reg *Registry) HandleChessMove(user *internal.User, move string) {
	room := user.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	st := room.Strategy
	if st == nil || room.State != internal.StatePlaying {
		room.Mu.Unlock()
		return
	}
	position := st.Position
	room.Mu.Unlock()

	// The legality check is synchronous and side-effect-free; a rejection
	// is terminal for this move.
	next, err := reg.rules.Apply(position, move)
	if err != nil {
		log.Printf("[HandleChessMove] Room %s: rejected move %q from %s: %v",
			room.Code, move, user.ID, err)
		return
	}

	room.Mu.Lock()
	if room.Strategy == nil || room.Strategy.Position != position {
		// Position advanced while the engine ran; drop this move.
		room.Mu.Unlock()
		log.Printf("[HandleChessMove] Room %s: position changed mid-check, dropping %q",
			room.Code, move)
		return
	}
	room.Strategy.Position = next
	room.Mu.Unlock()

	log.Printf("[HandleChessMove] Room %s: move %q accepted", room.Code, move)
	SafeBroadcastToRoom(room, internal.Message[internal.StrategyMoveData]{
		Type: "strategy_move",
		Data: internal.StrategyMoveData{Move: move, Position: next},
	})
}

// broadcastStrategyState pushes the current position, used when a match
// starts.
func (reg *Registry) broadcastStrategyState(room *internal.Room) {
	room.Mu.RLock()
	st := room.Strategy
	if st == nil {
		room.Mu.RUnlock()
		return
	}
	position := st.Position
	room.Mu.RUnlock()

	SafeBroadcastToRoom(room, internal.Message[internal.StrategyMoveData]{
		Type: "strategy_move",
		Data: internal.StrategyMoveData{Position: position},
	})
}
