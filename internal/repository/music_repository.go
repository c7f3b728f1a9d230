package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/artist-management/internal/model"
)

// MusicRepo provides persistence for music entries. Mutations enforce
// the ownership rule: the acting user must own the artist profile the
// entry belongs to, independent of any role gate applied upstream.
type MusicRepo struct{ DB *sql.DB }

func NewMusicRepo(db *sql.DB) *MusicRepo { return &MusicRepo{DB: db} }

const musicDetailColumns = `m.id, m.artist_id, m.title, m.album_name, m.genre,
	m.created_at, m.updated_at, a.name, a.user_id, ua.email`

const musicDetailFrom = ` FROM music m
	INNER JOIN artists a ON m.artist_id = a.id
	INNER JOIN users ua ON a.user_id = ua.id`

func scanMusicDetail(row interface{ Scan(...any) error }) (model.MusicDetail, error) {
	var d model.MusicDetail
	err := row.Scan(
		&d.ID, &d.ArtistID, &d.Title, &d.AlbumName, &d.Genre,
		&d.CreatedAt, &d.UpdatedAt,
		&d.Artist.Name, &d.Artist.UserID, &d.Artist.Email,
	)
	if err != nil {
		return model.MusicDetail{}, err
	}
	d.Artist.ID = d.ArtistID
	return d, nil
}

// Create inserts a music entry under the artist profile owned by
// actorUserID. ErrArtistNotFound is returned when the acting user has
// no profile to attach the entry to.
func (r *MusicRepo) Create(ctx context.Context, actorUserID uint64, title, albumName, genre string) (model.MusicDetail, error) {
	var artistID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM artists WHERE user_id=? LIMIT 1", actorUserID).Scan(&artistID)
	if err == sql.ErrNoRows {
		return model.MusicDetail{}, ErrArtistNotFound
	}
	if err != nil {
		return model.MusicDetail{}, err
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO music (artist_id, title, album_name, genre) VALUES (?,?,?,?)",
		artistID, title, albumName, genre)
	if err != nil {
		return model.MusicDetail{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MusicDetail{}, err
	}
	return scanMusicDetail(r.DB.QueryRowContext(ctx,
		"SELECT "+musicDetailColumns+musicDetailFrom+" WHERE m.id=?", id))
}

// ownerOf resolves the user id owning the artist profile of a music
// entry. ErrMusicNotFound when the entry does not exist.
func (r *MusicRepo) ownerOf(ctx context.Context, musicID uint64) (uint64, error) {
	var ownerID uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT a.user_id FROM music m INNER JOIN artists a ON m.artist_id = a.id WHERE m.id=?`,
		musicID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return 0, ErrMusicNotFound
	}
	return ownerID, err
}

// Update modifies a music entry after the ownership check: the acting
// user must own the artist profile the entry belongs to, otherwise
// ErrForbidden is returned and the entry is left unchanged.
func (r *MusicRepo) Update(ctx context.Context, musicID, actorUserID uint64, title, albumName, genre string) (model.MusicDetail, error) {
	ownerID, err := r.ownerOf(ctx, musicID)
	if err != nil {
		return model.MusicDetail{}, err
	}
	if ownerID != actorUserID {
		return model.MusicDetail{}, ErrForbidden
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE music SET title=?, album_name=?, genre=?, updated_at=NOW() WHERE id=?",
		title, albumName, genre, musicID); err != nil {
		return model.MusicDetail{}, err
	}
	return scanMusicDetail(r.DB.QueryRowContext(ctx,
		"SELECT "+musicDetailColumns+musicDetailFrom+" WHERE m.id=?", musicID))
}

// Delete removes a music entry after the same ownership check as Update.
func (r *MusicRepo) Delete(ctx context.Context, musicID, actorUserID uint64) error {
	ownerID, err := r.ownerOf(ctx, musicID)
	if err != nil {
		return err
	}
	if ownerID != actorUserID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM music WHERE id=?", musicID)
	return err
}

// List returns one page of music entries joined with their artist
// summaries plus the total count. Search matches the title.
func (r *MusicRepo) List(ctx context.Context, page, size int, search string) ([]model.MusicDetail, int, error) {
	return r.list(ctx, page, size, search, 0)
}

// ListByArtist is List restricted to one artist profile.
func (r *MusicRepo) ListByArtist(ctx context.Context, artistID uint64, page, size int) ([]model.MusicDetail, int, error) {
	return r.list(ctx, page, size, "", artistID)
}

func (r *MusicRepo) list(ctx context.Context, page, size int, search string, artistID uint64) ([]model.MusicDetail, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	offset := (page - 1) * size

	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE m.title LIKE ?"
		args = append(args, "%"+search+"%")
	}
	if artistID != 0 {
		where = " WHERE m.artist_id = ?"
		args = []any{artistID}
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*)"+musicDetailFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+musicDetailColumns+musicDetailFrom+where+
			" ORDER BY m.created_at DESC LIMIT ? OFFSET ?",
		append(args, size, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]model.MusicDetail, 0, size)
	for rows.Next() {
		d, err := scanMusicDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, d)
	}
	return entries, total, rows.Err()
}
