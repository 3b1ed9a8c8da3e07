package game

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/partyhub/partyhub-backend/internal"
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the HTTP connection and starts the per-connection
// read loop. The connection id doubles as the stable user handle.
func (reg *Registry) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade failed: ", err)
		return
	}

	user := &internal.User{
		ID:   uuid.NewString(),
		Conn: conn,
	}

	go reg.handleMessages(user)
}

// handleMessages reads events off one connection and dispatches by type.
// The loop ending, for whatever reason, is the disconnect notification.
func (reg *Registry) handleMessages(user *internal.User) {
	defer func() {
		user.Conn.Close()
		reg.Leave(user)
	}()

	for {
		var baseMsg internal.Message[json.RawMessage]
		if err := readJSON(user, &baseMsg); err != nil {
			log.Printf("Read error occured during websocket message %s, %v", user.ID, err)
			break
		}

		log.Printf("Received message type: %s from user: %s", baseMsg.Type, user.ID)
		switch baseMsg.Type {
		case "create_room":
			var data internal.CreateRoomData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			reg.handleCreateRoom(user, data)

		case "join_room":
			var data internal.JoinRoomData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			reg.handleJoinRoom(user, data)

		case "scribble_start_game":
			var data internal.StartGameData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			reg.StartGame(data.RoomCode, user.ID)

		case "scribble_word_selected":
			var data internal.WordSelectedData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			reg.ChooseWord(data.RoomCode, user.ID, data.Word)

		case "chat_message":
			var data internal.ChatData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			reg.HandleChat(user, data.Message)

		case "draw_data":
			reg.RelayDraw(user, baseMsg.Data)

		case "grid_move":
			var data internal.GridMoveData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			reg.HandleGridMove(user, data.Index)

		case "chess_move":
			var data internal.ChessMoveData
			if err := json.Unmarshal(baseMsg.Data, &data); err != nil {
				log.Println("Error parsing data, wrong json", err)
				continue
			}
			reg.HandleChessMove(user, data.Move)

		default:
			log.Printf("Unknown message type %q from user %s", baseMsg.Type, user.ID)
		}
	}
}

func readJSON(user *internal.User, v any) error {
	conn, ok := user.Conn.(*websocket.Conn)
	if !ok {
		return websocket.ErrCloseSent
	}
	return conn.ReadJSON(v)
}

func (reg *Registry) handleCreateRoom(user *internal.User, data internal.CreateRoomData) {
	user.Username = data.Username
	user.Avatar = data.Avatar

	room, err := reg.CreateRoom(data, user.ID)
	if err != nil {
		log.Printf("Error creating room for user %s: %v", user.ID, err)
		return
	}

	if err := user.SafeWriteJSON(internal.Message[internal.RoomCreatedData]{
		Type: "room_created",
		Data: internal.RoomCreatedData{Code: room.Code},
	}); err != nil {
		log.Printf("Error sending room_created to user %s: %v", user.ID, err)
	}
}

func (reg *Registry) handleJoinRoom(user *internal.User, data internal.JoinRoomData) {
	if user.Room != nil {
		log.Printf("User %s already in room %s, ignoring join", user.ID, user.Room.Code)
		return
	}
	if data.Username != "" {
		user.Username = data.Username
	}
	if user.Username == "" {
		user.Username = "Anonymous"
	}
	if data.Avatar != "" {
		user.Avatar = data.Avatar
	}

	if err := reg.Join(data.RoomCode, user); err != nil {
		if err := user.SafeWriteJSON(internal.Message[string]{
			Type: "error",
			Data: err.Error(),
		}); err != nil {
			log.Printf("Error sending error event to user %s: %v", user.ID, err)
		}
	}
}
