package game

import (
	"encoding/json"
	"log"

	"github.com/partyhub/partyhub-backend/internal"
)

// =============================================================================
// DRAWING RELAY
// =============================================================================

// RelayDraw forwards drawing data verbatim to every other room member. The
// payload stays opaque; only the sender is checked. During an active
// scribble turn only the current drawer may draw.
func (reg *Registry) RelayDraw(user *internal.User, raw json.RawMessage) {
	room := user.Room
	if room == nil {
		return
	}

	room.Mu.RLock()
	if sd := room.Scribble; sd != nil && room.State == internal.StatePlaying &&
		sd.CurrentDrawerID != "" && sd.CurrentDrawerID != user.ID {
		room.Mu.RUnlock()
		log.Printf("[RelayDraw] Room %s: user %s is not the drawer, ignoring", room.Code, user.ID)
		return
	}
	room.Mu.RUnlock()

	SafeBroadcastToRoomExcept(room, internal.Message[json.RawMessage]{
		Type: "draw_data",
		Data: raw,
	}, user)
}
