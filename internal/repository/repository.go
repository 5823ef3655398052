package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evalboard/evalboard/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicate indicates a uniqueness constraint rejected the write.
var ErrDuplicate = errors.New("repository: duplicate")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users       *UsersRepository
	Courses     *CoursesRepository
	Evaluations *EvaluationsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:       &UsersRepository{pool: pool},
		Courses:     &CoursesRepository{pool: pool},
		Evaluations: &EvaluationsRepository{pool: pool},
	}
}
