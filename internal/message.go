package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound payloads.

type CreateRoomData struct {
	RoomName string   `json:"roomName"`
	Username string   `json:"username"`
	Avatar   string   `json:"avatar"`
	GameType GameType `json:"gameType"`
	Settings Settings `json:"settings"`
}

type JoinRoomData struct {
	RoomCode string `json:"roomCode"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type StartGameData struct {
	RoomCode string `json:"roomCode"`
}

type WordSelectedData struct {
	RoomCode string `json:"roomCode"`
	Word     string `json:"word"`
}

type ChatData struct {
	RoomCode string `json:"roomCode"`
	Message  string `json:"message"`
}

type GridMoveData struct {
	RoomCode string `json:"roomCode"`
	Index    int    `json:"index"`
}

type ChessMoveData struct {
	RoomCode string `json:"roomCode"`
	Move     string `json:"move"`
}

// Outbound payloads.

type RoomCreatedData struct {
	Code string `json:"code"`
}

// RoomView is the full room snapshot sent as update_room.
type RoomView struct {
	RoomName string       `json:"roomName"`
	Users    []PublicUser `json:"users"`
	AdminID  string       `json:"adminId"`
	GameType GameType     `json:"gameType"`
	State    RoomState    `json:"state"`
	Settings Settings     `json:"settings"`
	DrawerID string       `json:"drawerId"`
}

type TurnWaitingData struct {
	DrawerName string `json:"drawerName"`
	Round      int    `json:"round"`
	MaxRounds  int    `json:"maxRounds"`
}

type WordChoicesData struct {
	Words     []string `json:"words"`
	TimeLimit int      `json:"timeLimit"`
}

type RoundStartData struct {
	MaskedWord string `json:"maskedWord"`
	Duration   int    `json:"duration"`
	DrawerID   string `json:"drawerId"`
}

type TimerUpdateData struct {
	Remaining int `json:"remaining"`
}

type LeaderboardEntry struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type GameOverData struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type GridUpdateData struct {
	Board []string `json:"board"`
	Turn  string   `json:"turn"`
	Size  int      `json:"size"`
}

type StrategyMoveData struct {
	Move     string `json:"move"`
	Position string `json:"position"`
}

type ChatMessageData struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
