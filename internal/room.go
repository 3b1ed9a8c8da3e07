package internal

// Methods (Room struct). Callers hold r.Mu unless noted otherwise.

func (r *Room) UserByID(id string) *User {
	for _, u := range r.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *Room) UserIndex(id string) int {
	for i, u := range r.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// RemoveUser drops the user with the given id, preserving order. Returns
// false if no such member exists.
func (r *Room) RemoveUser(id string) bool {
	idx := r.UserIndex(id)
	if idx < 0 {
		return false
	}
	r.Users = append(r.Users[:idx], r.Users[idx+1:]...)
	return true
}

func (r *Room) DrawerID() string {
	if r.Scribble != nil {
		return r.Scribble.CurrentDrawerID
	}
	return ""
}

// View builds the update_room snapshot.
func (r *Room) View() RoomView {
	users := make([]PublicUser, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, u.Public())
	}
	return RoomView{
		RoomName: r.Name,
		Users:    users,
		AdminID:  r.AdminID,
		GameType: r.GameType,
		State:    r.State,
		Settings: r.Settings,
		DrawerID: r.DrawerID(),
	}
}
