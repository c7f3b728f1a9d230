package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/artist-management/internal/model"
	"github.com/iliyamo/artist-management/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// ErrEmailExists signals the email-uniqueness conflict, whether it was
// caught by the in-transaction precondition check or by the UNIQUE
// constraint on users.email (the backstop for concurrent writers).
var ErrEmailExists = errors.New("email already exists")

const userColumns = "id,first_name,last_name,email,password,role,created_at,updated_at"

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (errno 1062), raised by the UNIQUE constraint on users.email.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// Create inserts a user and returns its ID. The email is normalized to
// lowercase before storage and the password is bcrypt-hashed with the
// given cost.
func (r *UserRepo) Create(ctx context.Context, firstName, lastName, email, password string, role model.Role, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password, role) VALUES (?,?,?,?,?)",
		firstName, lastName, email, hash, string(role))
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

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// List returns one page of users plus the total row count for
// pagination. When search is non-empty it matches first name, last name
// or email. Password hashes are never selected.
func (r *UserRepo) List(ctx context.Context, page, size int, search string) ([]model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	offset := (page - 1) * size

	var (
		total int
		rows  *sql.Rows
		err   error
	)
	if search != "" {
		term := "%" + search + "%"
		if err = r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM users WHERE first_name LIKE ? OR last_name LIKE ? OR email LIKE ?",
			term, term, term).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.DB.QueryContext(ctx,
			`SELECT id, first_name, last_name, email, role, created_at, updated_at FROM users
			 WHERE first_name LIKE ? OR last_name LIKE ? OR email LIKE ?
			 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			term, term, term, size, offset)
	} else {
		if err = r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.DB.QueryContext(ctx,
			`SELECT id, first_name, last_name, email, role, created_at, updated_at FROM users
			 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			size, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]model.User, 0, size)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
