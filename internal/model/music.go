package model

import "time"

// Music represents a row in the `music` table. Each entry belongs to
// one artist profile through ArtistID. Mutations are permitted only to
// the user owning that profile.
type Music struct {
	ID        uint64    `json:"id"`
	ArtistID  uint64    `json:"artist_id"`
	Title     string    `json:"title"`
	AlbumName string    `json:"album_name"`
	Genre     string    `json:"genre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArtistRef is the artist projection embedded in music responses.
type ArtistRef struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
}

// MusicDetail is a Music row joined with its owning artist's summary.
type MusicDetail struct {
	Music
	Artist ArtistRef `json:"artist"`
}
