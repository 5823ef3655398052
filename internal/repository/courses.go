package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evalboard/evalboard/internal/domain"
)

// CoursesRepository provides persistence helpers for courses.
type CoursesRepository struct {
	pool *pgxpool.Pool
}

// CourseCreateParams bundles the fields required to create a course.
type CourseCreateParams struct {
	Department string
	Code       string
	Name       string
}

// Create inserts a new course row.
func (r *CoursesRepository) Create(ctx context.Context, params CourseCreateParams) (domain.Course, error) {
	const query = `
        INSERT INTO courses (id, department, code, name)
        VALUES ($1,$2,$3,$4)
        RETURNING id, department, code, name
    `

	var course domain.Course
	err := r.pool.QueryRow(ctx, query, uuid.NewString(), params.Department, params.Code, params.Name).Scan(
		&course.ID,
		&course.Department,
		&course.Code,
		&course.Name,
	)
	if err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

// GetByID fetches a course by its identifier.
func (r *CoursesRepository) GetByID(ctx context.Context, id string) (domain.Course, error) {
	const query = `SELECT id, department, code, name FROM courses WHERE id = $1`

	var course domain.Course
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Department,
		&course.Code,
		&course.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Course{}, ErrNotFound
		}
		return domain.Course{}, err
	}
	return course, nil
}

// List returns all courses ordered by department and code.
func (r *CoursesRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `SELECT id, department, code, name FROM courses ORDER BY department, code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]domain.Course, 0)
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(&course.ID, &course.Department, &course.Code, &course.Name); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// Count reports the number of course rows; the seeder uses it to stay idempotent.
func (r *CoursesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
