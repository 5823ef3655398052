package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evalboard/evalboard/internal/domain"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `
    id,
    username,
    password,
    role,
    name,
    department,
    course_id
`

// UserCreateParams bundles the fields required to create a user. Password
// must already be hashed.
type UserCreateParams struct {
	Username   string
	Password   string
	Role       string
	Name       string
	Department *string
	CourseID   *string
}

// LecturerListing is a lecturer row joined with its assigned course info.
type LecturerListing struct {
	ID         string
	Name       string
	Department *string
	CourseID   *string
	CourseCode *string
	CourseName *string
}

// Create inserts a new user row. A duplicate username yields ErrDuplicate.
func (r *UsersRepository) Create(ctx context.Context, params UserCreateParams) (domain.User, error) {
	const query = `
        INSERT INTO users (id, username, password, role, name, department, course_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), params.Username, params.Password, params.Role, params.Name, params.Department, params.CourseID)
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrDuplicate
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByID fetches a user by its identifier.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByUsername fetches a user by exact, case-sensitive username match.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// ListLecturers returns all lecturer accounts joined with their assigned
// course's code and name.
func (r *UsersRepository) ListLecturers(ctx context.Context) ([]LecturerListing, error) {
	const query = `
        SELECT u.id, u.name, u.department, u.course_id, c.code, c.name
        FROM users u
        LEFT JOIN courses c ON c.id = u.course_id
        WHERE u.role = 'lecturer'
        ORDER BY u.name, u.id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]LecturerListing, 0)
	for rows.Next() {
		var l LecturerListing
		if err := rows.Scan(&l.ID, &l.Name, &l.Department, &l.CourseID, &l.CourseCode, &l.CourseName); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.Name,
		&user.Department,
		&user.CourseID,
	)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
