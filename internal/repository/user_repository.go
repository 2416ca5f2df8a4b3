package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/retail-pos-backend/internal/model"
	"github.com/iliyamo/retail-pos-backend/internal/utils"
)

// ErrEmailExists is returned when a user's email is already taken by a
// non-deleted row.  The check is case-sensitive, matching the legacy
// behavior.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user cannot be found (or has been
// soft-deleted, which looks the same to callers).
var ErrUserNotFound = errors.New("user not found")

// UserRepo encapsulates database queries for users, including the
// per-user refresh token columns.  Deletion is soft: is_deleted flips
// and every lookup filters deleted rows out.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, names, phone, role, password_hash,
	refresh_token, refresh_token_expires_at, is_deleted, created_at, modified_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var (
		u     model.User
		token sql.NullString
		exp   sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.Names, &u.Phone, &u.Role, &u.PasswordHash,
		&token, &exp, &u.IsDeleted, &u.CreatedAt, &u.ModifiedAt)
	if err != nil {
		return nil, err
	}
	u.RefreshToken = token.String
	if exp.Valid {
		t := exp.Time
		u.RefreshTokenExpiresAt = &t
	}
	return &u, nil
}

// IsEmailUsed reports whether a non-deleted user already has the email.
func (r *UserRepo) IsEmailUsed(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email = ? AND is_deleted = 0", email).Scan(&n)
	return n > 0, err
}

// Create inserts a new user with a fresh UUID and a bcrypt password
// hash.  ErrEmailExists is returned when the email is taken.
func (r *UserRepo) Create(ctx context.Context, email, names, phone, role, password string, bcryptCost int) (*model.User, error) {
	used, err := r.IsEmailUsed(ctx, email)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, ErrEmailExists
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Names:        names,
		Phone:        phone,
		Role:         role,
		PasswordHash: hash,
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, names, phone, role, password_hash) VALUES (?,?,?,?,?,?)",
		u.ID, u.Email, u.Names, u.Phone, u.Role, u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail fetches a non-deleted user by exact email match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? AND is_deleted = 0 LIMIT 1", email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a non-deleted user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? AND is_deleted = 0 LIMIT 1", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// List returns all non-deleted users ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_deleted = 0 ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Sortable columns for Search.  Anything outside the allowlist falls
// back to id so user input never reaches the ORDER BY clause.
var userSortColumns = map[string]string{
	"email":      "email",
	"names":      "names",
	"role":       "role",
	"created_at": "created_at",
}

// Search returns one page of non-deleted users plus the total count of
// rows matching the filter.  The optional free-text query matches email
// or names with a LIKE.
func (r *UserRepo) Search(ctx context.Context, req model.PageRequest) ([]*model.User, int, error) {
	req.Normalize()

	where := "WHERE is_deleted = 0"
	args := []any{}
	if req.Query != "" {
		where += " AND (email LIKE ? OR names LIKE ?)"
		like := "%" + escapeLike(req.Query) + "%"
		args = append(args, like, like)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := userSortColumns[req.Sort]
	if !ok {
		sortCol = "id"
	}
	order := "ASC"
	if req.Order == "desc" || req.Order == "DESC" {
		order = "DESC"
	}

	q := "SELECT " + userColumns + " FROM users " + where +
		" ORDER BY " + sortCol + " " + order + " LIMIT ? OFFSET ?"
	args = append(args, req.PageSize, req.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// escapeLike escapes the LIKE metacharacters in a user-supplied filter
// so `%` and `_` match literally instead of as wildcards.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// UpdateProfile overwrites email, names and phone for a user.
// ErrUserNotFound is returned when no non-deleted row is affected.
func (r *UserRepo) UpdateProfile(ctx context.Context, id, email, names, phone string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET email = ?, names = ?, phone = ?, modified_at = ? WHERE id = ? AND is_deleted = 0",
		email, names, phone, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateRole overwrites the role field.  ErrUserNotFound is returned
// when no non-deleted row is affected.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET role = ?, modified_at = ? WHERE id = ? AND is_deleted = 0",
		role, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SoftDelete flips the is_deleted flag.  The row stays for audit
// purposes but disappears from every lookup.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_deleted = 1, modified_at = ? WHERE id = ? AND is_deleted = 0",
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// StoreRefresh saves a refresh token and its expiry on the user row,
// overwriting (and thereby revoking) any previous token.
func (r *UserRepo) StoreRefresh(ctx context.Context, id, token string, exp time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET refresh_token = ?, refresh_token_expires_at = ? WHERE id = ? AND is_deleted = 0",
		token, exp, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ClearRefresh removes the stored refresh token so subsequent refresh
// attempts fail (server-side logout).  Clearing an already-cleared
// token is a no-op, so affected rows are not checked; callers verify
// the user exists first.
func (r *UserRepo) ClearRefresh(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET refresh_token = '', refresh_token_expires_at = NULL WHERE id = ? AND is_deleted = 0",
		id)
	return err
}
