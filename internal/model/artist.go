package model

import "time"

// Artist represents a row in the `artists` table. Every artist profile
// is owned by exactly one user (UserID, role artist) and managed by
// exactly one artist_manager (ManagerID). The Name column is derived
// from the owning user's first and last name whenever the pair is
// created or updated; it is not independently editable.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – "first last" of the owning user, kept in sync.
//  DOB              – date of birth.
//  Gender           – gender code: m, f or o.
//  Address          – free-form address line.
//  FirstReleaseYear – year of the first release.
//  AlbumsReleased   – number of albums released so far.
//  UserID           – owning users.id (one-to-one).
//  ManagerID        – managing users.id (many-to-one, role artist_manager).
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type Artist struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	DOB              time.Time `json:"dob"`
	Gender           string    `json:"gender"`
	Address          string    `json:"address"`
	FirstReleaseYear int       `json:"first_release_year"`
	AlbumsReleased   int       `json:"no_of_albums_released"`
	UserID           uint64    `json:"user_id"`
	ManagerID        uint64    `json:"manager_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ArtistDetail is an Artist joined with the public summaries of its
// owning user and its manager, as returned by list and fetch endpoints.
type ArtistDetail struct {
	Artist
	User    UserSummary `json:"user"`
	Manager UserSummary `json:"manager"`
}
