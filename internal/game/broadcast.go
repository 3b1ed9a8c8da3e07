package game

import (
	"log"

	"github.com/partyhub/partyhub-backend/internal"
)

// =============================================================================
// BROADCASTING & MESSAGING
// =============================================================================

// SafeBroadcastToRoom fans a message out to every member. Users are
// snapshotted under the room lock; writes happen without it.
func SafeBroadcastToRoom[T any](room *internal.Room, msg internal.Message[T]) {
	room.Mu.RLock()
	users := append([]*internal.User(nil), room.Users...)
	room.Mu.RUnlock()

	for _, user := range users {
		if err := user.SafeWriteJSON(msg); err != nil {
			log.Printf("[Broadcast][Room:%s] Failed for user %s (%s): %v",
				room.Code, user.ID, user.Username, err)
		}
	}
}

// SafeBroadcastToRoomExcept fans out to everyone but one user, used for the
// draw-data relay and drawer-private flows.
func SafeBroadcastToRoomExcept[T any](room *internal.Room, msg internal.Message[T], exclude *internal.User) {
	room.Mu.RLock()
	users := append([]*internal.User(nil), room.Users...)
	room.Mu.RUnlock()

	for _, user := range users {
		if exclude != nil && user.ID == exclude.ID {
			continue
		}
		if err := user.SafeWriteJSON(msg); err != nil {
			log.Printf("[BroadcastExcept][Room:%s] Failed for user %s (%s): %v",
				room.Code, user.ID, user.Username, err)
		}
	}
}

// broadcastRoomView sends the given update_room snapshot to all members.
func broadcastRoomView(room *internal.Room, view internal.RoomView) {
	SafeBroadcastToRoom(room, internal.Message[internal.RoomView]{
		Type: "update_room",
		Data: view,
	})
}

// broadcastSystemMessage sends a plain informational string to the room.
func broadcastSystemMessage(room *internal.Room, text string) {
	SafeBroadcastToRoom(room, internal.Message[string]{
		Type: "system_message",
		Data: text,
	})
}
