package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evalboard/evalboard/internal/domain"
)

// EvaluationsRepository provides persistence helpers for evaluation records.
type EvaluationsRepository struct {
	pool *pgxpool.Pool
}

const evaluationColumns = `
    id,
    student_id,
    lecturer_id,
    course_id,
    overall_rating,
    clarity_rating,
    engagement_rating,
    materials_rating,
    organization_rating,
    feedback_rating,
    pace_rating,
    support_rating,
    fairness_rating,
    relevance_rating,
    comments,
    created_at
`

// EvaluationCreateParams captures a validated submission. The id and
// created_at are assigned at insert time.
type EvaluationCreateParams struct {
	StudentID  string
	LecturerID string
	CourseID   string

	Overall      int
	Clarity      int
	Engagement   int
	Materials    int
	Organization int
	Feedback     int
	Pace         int
	Support      int
	Fairness     int
	Relevance    int

	Comments *string
}

// Create inserts a new evaluation row. A second submission for the same
// (student, lecturer, course) triple yields ErrDuplicate.
func (r *EvaluationsRepository) Create(ctx context.Context, params EvaluationCreateParams) (domain.Evaluation, error) {
	query := fmt.Sprintf(`
        INSERT INTO evaluations (
            id, student_id, lecturer_id, course_id,
            overall_rating, clarity_rating, engagement_rating, materials_rating,
            organization_rating, feedback_rating, pace_rating, support_rating,
            fairness_rating, relevance_rating, comments
        )
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING %s
    `, evaluationColumns)

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), params.StudentID, params.LecturerID, params.CourseID,
		params.Overall, params.Clarity, params.Engagement, params.Materials,
		params.Organization, params.Feedback, params.Pace, params.Support,
		params.Fairness, params.Relevance, params.Comments,
	)
	eval, err := scanEvaluation(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Evaluation{}, ErrDuplicate
		}
		return domain.Evaluation{}, err
	}
	return eval, nil
}

// ListByStudent returns all evaluations submitted by a student, newest first.
func (r *EvaluationsRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Evaluation, error) {
	return r.list(ctx, `student_id`, studentID)
}

// ListByLecturer returns all evaluations received by a lecturer, newest first.
func (r *EvaluationsRepository) ListByLecturer(ctx context.Context, lecturerID string) ([]domain.Evaluation, error) {
	return r.list(ctx, `lecturer_id`, lecturerID)
}

func (r *EvaluationsRepository) list(ctx context.Context, column, id string) ([]domain.Evaluation, error) {
	query := fmt.Sprintf(`SELECT %s FROM evaluations WHERE %s = $1 ORDER BY created_at DESC, id DESC`, evaluationColumns, column)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evals := make([]domain.Evaluation, 0)
	for rows.Next() {
		eval, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, eval)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return evals, nil
}

func scanEvaluation(row pgx.Row) (domain.Evaluation, error) {
	var eval domain.Evaluation
	err := row.Scan(
		&eval.ID,
		&eval.StudentID,
		&eval.LecturerID,
		&eval.CourseID,
		&eval.Overall,
		&eval.Clarity,
		&eval.Engagement,
		&eval.Materials,
		&eval.Organization,
		&eval.Feedback,
		&eval.Pace,
		&eval.Support,
		&eval.Fairness,
		&eval.Relevance,
		&eval.Comments,
		&eval.CreatedAt,
	)
	if err != nil {
		return domain.Evaluation{}, err
	}
	return eval, nil
}
