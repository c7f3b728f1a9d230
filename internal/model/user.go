package model

import "time"

// Role is the closed set of account roles. Authorization decisions are
// made exclusively against these values; anything outside the set is
// rejected at registration time and by the role middleware.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleArtistManager Role = "artist_manager"
	RoleArtist        Role = "artist"
)

// ParseRole converts a raw string into a Role. The boolean reports
// whether the value belongs to the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleArtistManager, RoleArtist:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User represents a row in the `users` table. Each user is an
// authenticatable identity; users with role artist additionally own a
// row in the `artists` table linked through artists.user_id.
//
// Fields:
//  ID           – primary key identifier.
//  FirstName    – given name.
//  LastName     – family name.
//  Email        – unique email address, always stored lowercase.
//  PasswordHash – bcrypt hash; never serialized to clients.
//  Role         – one of the closed Role set.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the public projection of a user embedded inside artist
// and music responses. It never carries the credential hash.
type UserSummary struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
