package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/artist-management/internal/model"
	"github.com/iliyamo/artist-management/internal/utils"
)

// ArtistRepo provides persistence for artist profiles. Because every
// profile is backed by a row in `users` (the owning identity), the
// create, update, delete and import operations here span two tables and
// run inside a transaction via WithTx: either both rows change or
// neither does.
type ArtistRepo struct{ DB *sql.DB }

func NewArtistRepo(db *sql.DB) *ArtistRepo { return &ArtistRepo{DB: db} }

// defaultArtistPassword is the fixed placeholder credential given to
// auto-provisioned artist accounts. Artists are expected to change it
// after their manager hands over the account.
const defaultArtistPassword = "artist"

// ArtistInput carries the fields accepted when creating or updating an
// artist profile together with its owning user.
type ArtistInput struct {
	FirstName        string
	LastName         string
	Email            string
	DOB              time.Time
	Gender           string
	Address          string
	FirstReleaseYear int
	AlbumsReleased   int
}

const artistDetailColumns = `a.id, a.name, a.dob, a.gender, a.address,
	a.first_release_year, a.no_of_albums_released, a.user_id, a.manager_id,
	a.created_at, a.updated_at,
	ua.first_name, ua.last_name, ua.email,
	um.first_name, um.last_name, um.email`

const artistDetailFrom = ` FROM artists a
	INNER JOIN users ua ON a.user_id = ua.id
	INNER JOIN users um ON a.manager_id = um.id`

// scanArtistDetail scans one joined row produced with
// artistDetailColumns into an ArtistDetail.
func scanArtistDetail(row interface{ Scan(...any) error }) (model.ArtistDetail, error) {
	var d model.ArtistDetail
	err := row.Scan(
		&d.ID, &d.Name, &d.DOB, &d.Gender, &d.Address,
		&d.FirstReleaseYear, &d.AlbumsReleased, &d.UserID, &d.ManagerID,
		&d.CreatedAt, &d.UpdatedAt,
		&d.User.FirstName, &d.User.LastName, &d.User.Email,
		&d.Manager.FirstName, &d.Manager.LastName, &d.Manager.Email,
	)
	if err != nil {
		return model.ArtistDetail{}, err
	}
	d.User.ID = d.UserID
	d.Manager.ID = d.ManagerID
	return d, nil
}

// Create provisions an artist account and its profile atomically
// (provision-and-link): inside one transaction it checks that the email
// is free, inserts the owning user with role artist and the fixed
// placeholder credential, then inserts the artists row linking the new
// user to the acting manager. A taken email rolls everything back and
// returns ErrEmailExists; the UNIQUE constraint on users.email catches
// the race two concurrent creates would otherwise win together.
func (r *ArtistRepo) Create(ctx context.Context, in ArtistInput, managerID uint64, bcryptCost int) (model.ArtistDetail, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := utils.HashPassword(defaultArtistPassword, bcryptCost)
	if err != nil {
		return model.ArtistDetail{}, err
	}

	var detail model.ArtistDetail
	err = WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var existing uint64
		err := tx.QueryRowContext(ctx, "SELECT id FROM users WHERE email=? LIMIT 1", email).Scan(&existing)
		if err == nil {
			return ErrEmailExists
		}
		if err != sql.ErrNoRows {
			return err
		}

		userID, err := insertArtistUserTx(ctx, tx, in.FirstName, in.LastName, email, hash)
		if err != nil {
			return err
		}
		artistID, err := insertArtistTx(ctx, tx, in, userID, managerID)
		if err != nil {
			return err
		}

		detail, err = scanArtistDetail(tx.QueryRowContext(ctx,
			"SELECT "+artistDetailColumns+artistDetailFrom+" WHERE a.id=?", artistID))
		return err
	})
	if err != nil {
		return model.ArtistDetail{}, err
	}
	return detail, nil
}

// insertArtistUserTx inserts the owning users row for a new artist.
func insertArtistUserTx(ctx context.Context, tx *sql.Tx, firstName, lastName, email, passwordHash string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password, role) VALUES (?,?,?,?,?)",
		firstName, lastName, email, passwordHash, string(model.RoleArtist))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// insertArtistTx inserts the artists row referencing the owning user and
// the acting manager. The display name is derived as "first last".
func insertArtistTx(ctx context.Context, tx *sql.Tx, in ArtistInput, userID, managerID uint64) (uint64, error) {
	name := in.FirstName + " " + in.LastName
	res, err := tx.ExecContext(ctx,
		`INSERT INTO artists (name, dob, gender, address, first_release_year, no_of_albums_released, user_id, manager_id)
		 VALUES (?,?,?,?,?,?,?,?)`,
		name, in.DOB, in.Gender, in.Address, in.FirstReleaseYear, in.AlbumsReleased, userID, managerID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ImportBatch runs the provision-and-link flow for every row inside one
// outer transaction: a failure on any row (conflict or storage error)
// rolls back the entire batch so a partially imported file can never
// persist. The returned count is the number of artists created. Errors
// identify the offending row by its 1-based data line number.
func (r *ArtistRepo) ImportBatch(ctx context.Context, rows []utils.ArtistRow, managerID uint64, bcryptCost int) (int, error) {
	created := 0
	err := WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		for i, row := range rows {
			hash, err := utils.HashPassword(defaultArtistPassword, bcryptCost)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			var existing uint64
			err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE email=? LIMIT 1", row.Email).Scan(&existing)
			if err == nil {
				return fmt.Errorf("row %d (%s): %w", i+1, row.Email, ErrEmailExists)
			}
			if err != sql.ErrNoRows {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			userID, err := insertArtistUserTx(ctx, tx, row.FirstName, row.LastName, row.Email, hash)
			if err != nil {
				return fmt.Errorf("row %d (%s): %w", i+1, row.Email, err)
			}
			in := ArtistInput{
				FirstName:        row.FirstName,
				LastName:         row.LastName,
				Email:            row.Email,
				DOB:              row.DOB,
				Gender:           row.Gender,
				Address:          row.Address,
				FirstReleaseYear: row.FirstReleaseYear,
				AlbumsReleased:   row.AlbumsReleased,
			}
			if _, err := insertArtistTx(ctx, tx, in, userID, managerID); err != nil {
				return fmt.Errorf("row %d (%s): %w", i+1, row.Email, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// Update modifies an artist profile and its owning user atomically.
// Inside one transaction it resolves the owning user id, checks that the
// new email is not taken by anyone else, updates the users row and then
// the artists row (recomputing the display name). ErrArtistNotFound and
// ErrEmailExists roll back without side effects.
func (r *ArtistRepo) Update(ctx context.Context, id uint64, in ArtistInput) (model.ArtistDetail, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var detail model.ArtistDetail
	err := WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var userID uint64
		err := tx.QueryRowContext(ctx, "SELECT user_id FROM artists WHERE id=?", id).Scan(&userID)
		if err == sql.ErrNoRows {
			return ErrArtistNotFound
		}
		if err != nil {
			return err
		}

		var taken uint64
		err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE email=? AND id<>? LIMIT 1", email, userID).Scan(&taken)
		if err == nil {
			return ErrEmailExists
		}
		if err != sql.ErrNoRows {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE users SET first_name=?, last_name=?, email=?, updated_at=NOW() WHERE id=?",
			in.FirstName, in.LastName, email, userID); err != nil {
			if isDuplicateKey(err) {
				return ErrEmailExists
			}
			return err
		}

		name := in.FirstName + " " + in.LastName
		if _, err := tx.ExecContext(ctx,
			`UPDATE artists SET name=?, dob=?, gender=?, address=?, first_release_year=?,
			 no_of_albums_released=?, updated_at=NOW() WHERE id=?`,
			name, in.DOB, in.Gender, in.Address, in.FirstReleaseYear, in.AlbumsReleased, id); err != nil {
			return err
		}

		detail, err = scanArtistDetail(tx.QueryRowContext(ctx,
			"SELECT "+artistDetailColumns+artistDetailFrom+" WHERE a.id=?", id))
		return err
	})
	if err != nil {
		return model.ArtistDetail{}, err
	}
	return detail, nil
}

// DeleteCascade removes an artist profile together with its owning user
// in one transaction. The profile row goes first to satisfy the foreign
// key on artists.user_id; any failure rolls both deletes back.
func (r *ArtistRepo) DeleteCascade(ctx context.Context, id uint64) error {
	return WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var userID uint64
		err := tx.QueryRowContext(ctx, "SELECT user_id FROM artists WHERE id=?", id).Scan(&userID)
		if err == sql.ErrNoRows {
			return ErrArtistNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM artists WHERE id=?", id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", userID); err != nil {
			return err
		}
		return nil
	})
}

// GetByID returns one artist joined with its user and manager summaries.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (model.ArtistDetail, error) {
	d, err := scanArtistDetail(r.DB.QueryRowContext(ctx,
		"SELECT "+artistDetailColumns+artistDetailFrom+" WHERE a.id=?", id))
	if err == sql.ErrNoRows {
		return model.ArtistDetail{}, ErrArtistNotFound
	}
	return d, err
}

// GetByUserID returns the artist profile owned by the given user.
func (r *ArtistRepo) GetByUserID(ctx context.Context, userID uint64) (model.Artist, error) {
	var a model.Artist
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, dob, gender, address, first_release_year, no_of_albums_released,
		 user_id, manager_id, created_at, updated_at FROM artists WHERE user_id=? LIMIT 1`,
		userID).Scan(&a.ID, &a.Name, &a.DOB, &a.Gender, &a.Address, &a.FirstReleaseYear,
		&a.AlbumsReleased, &a.UserID, &a.ManagerID, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Artist{}, ErrArtistNotFound
	}
	return a, err
}

// List returns one page of artists with user/manager summaries plus the
// total count. Search matches the derived display name.
func (r *ArtistRepo) List(ctx context.Context, page, size int, search string) ([]model.ArtistDetail, int, error) {
	return r.list(ctx, page, size, search, 0)
}

// ListByManager is List restricted to profiles managed by managerID.
func (r *ArtistRepo) ListByManager(ctx context.Context, managerID uint64, page, size int, search string) ([]model.ArtistDetail, int, error) {
	return r.list(ctx, page, size, search, managerID)
}

func (r *ArtistRepo) list(ctx context.Context, page, size int, search string, managerID uint64) ([]model.ArtistDetail, int, error) {
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
		where = " WHERE a.name LIKE ?"
		args = append(args, "%"+search+"%")
	}
	if managerID != 0 {
		if where == "" {
			where = " WHERE a.manager_id = ?"
		} else {
			where += " AND a.manager_id = ?"
		}
		args = append(args, managerID)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*)"+artistDetailFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+artistDetailColumns+artistDetailFrom+where+
			" ORDER BY a.created_at DESC LIMIT ? OFFSET ?",
		append(args, size, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	artists := make([]model.ArtistDetail, 0, size)
	for rows.Next() {
		d, err := scanArtistDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		artists = append(artists, d)
	}
	return artists, total, rows.Err()
}

// ExportByManager returns every artist managed by managerID, oldest
// first, for CSV export. No pagination: exports are whole-catalog.
func (r *ArtistRepo) ExportByManager(ctx context.Context, managerID uint64) ([]model.ArtistDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+artistDetailColumns+artistDetailFrom+
			" WHERE a.manager_id=? ORDER BY a.created_at ASC", managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []model.ArtistDetail
	for rows.Next() {
		d, err := scanArtistDetail(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, d)
	}
	return artists, rows.Err()
}
