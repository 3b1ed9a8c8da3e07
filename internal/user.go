package internal

import (
	"sync"
	"time"
)

// Conn is the write side of one client connection. *websocket.Conn from
// gorilla satisfies it; tests substitute an in-memory recorder.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type User struct {
	ID       string `json:"id"`
	Conn     Conn   `json:"-"`
	Room     *Room  `json:"-"` // Avoid circular reference in JSON
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Score    int    `json:"score"`

	JoinedAt time.Time `json:"joined_at"`

	Mu sync.Mutex `json:"-"`
}

// PublicUser is the broadcast-safe view of a User.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Score    int    `json:"score"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
		Score:    u.Score,
	}
}

// SafeWriteJSON serializes writes to the connection. Gorilla connections do
// not allow concurrent writers.
func (u *User) SafeWriteJSON(v any) error {
	u.Mu.Lock()
	defer u.Mu.Unlock()
	if u.Conn == nil {
		return nil
	}
	return u.Conn.WriteJSON(v)
}
