package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMusicRepoMock(t *testing.T) (*MusicRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMusicRepo(db), mock
}

var musicColumns = []string{
	"id", "artist_id", "title", "album_name", "genre",
	"created_at", "updated_at", "name", "user_id", "email",
}

func musicRow(id, artistID, ownerID uint64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(musicColumns).AddRow(
		id, artistID, "Feeling Good", "I Put a Spell on You", "jazz",
		now, now, "Nina Simone", ownerID, "nina@example.com",
	)
}

func TestMusicCreate(t *testing.T) {
	repo, mock := newMusicRepoMock(t)

	mock.ExpectQuery("SELECT id FROM artists WHERE user_id").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec("INSERT INTO music").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery("FROM music m").
		WillReturnRows(musicRow(21, 5, 11))

	detail, err := repo.Create(context.Background(), 11, "Feeling Good", "I Put a Spell on You", "jazz")
	require.NoError(t, err)
	assert.Equal(t, uint64(21), detail.ID)
	assert.Equal(t, uint64(5), detail.Artist.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An actor with the artist role but no profile cannot create entries.
func TestMusicCreateNoProfile(t *testing.T) {
	repo, mock := newMusicRepoMock(t)

	mock.ExpectQuery("SELECT id FROM artists WHERE user_id").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Create(context.Background(), 11, "t", "a", "g")
	assert.ErrorIs(t, err, ErrArtistNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Ownership is checked against the artist profile, not the role: a
// different artist gets ErrForbidden and no UPDATE is issued.
func TestMusicUpdateNotOwner(t *testing.T) {
	repo, mock := newMusicRepoMock(t)

	mock.ExpectQuery("SELECT a.user_id FROM music m").
		WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(11))

	_, err := repo.Update(context.Background(), 21, 99, "t", "a", "g")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMusicUpdateNotFound(t *testing.T) {
	repo, mock := newMusicRepoMock(t)

	mock.ExpectQuery("SELECT a.user_id FROM music m").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 404, 11, "t", "a", "g")
	assert.ErrorIs(t, err, ErrMusicNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMusicDelete(t *testing.T) {
	repo, mock := newMusicRepoMock(t)

	mock.ExpectQuery("SELECT a.user_id FROM music m").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(11))
	mock.ExpectExec("DELETE FROM music").
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 21, 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMusicDeleteNotOwner(t *testing.T) {
	repo, mock := newMusicRepoMock(t)

	mock.ExpectQuery("SELECT a.user_id FROM music m").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(11))

	err := repo.Delete(context.Background(), 21, 99)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
