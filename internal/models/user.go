package models

// Role represents user role in the platform.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSpeaker  Role = "speaker"
	RoleAttendee Role = "attendee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSpeaker, RoleAttendee:
		return true
	}
	return false
}

// User represents a signed-in platform user. This is also the record persisted by the
// client-side session store.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Sender returns the attribution used for chat messages and questions.
func (u User) Sender() Sender {
	return Sender{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Role: u.Role}
}
