// Package service orchestrates access-policy checks, persistence calls, and
// summary aggregation behind the HTTP boundary.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/evalboard/evalboard/internal/auth"
	"github.com/evalboard/evalboard/internal/domain"
	"github.com/evalboard/evalboard/internal/policy"
	"github.com/evalboard/evalboard/internal/repository"
	"github.com/evalboard/evalboard/internal/summary"
)

// UserStore is the persistence contract the service needs for users.
type UserStore interface {
	Create(ctx context.Context, params repository.UserCreateParams) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	ListLecturers(ctx context.Context) ([]repository.LecturerListing, error)
}

// CourseStore is the persistence contract the service needs for courses.
type CourseStore interface {
	List(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id string) (domain.Course, error)
}

// EvaluationStore is the persistence contract the service needs for
// evaluation records.
type EvaluationStore interface {
	Create(ctx context.Context, params repository.EvaluationCreateParams) (domain.Evaluation, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Evaluation, error)
	ListByLecturer(ctx context.Context, lecturerID string) ([]domain.Evaluation, error)
}

// Stores bundles the persistence collaborators. Tests swap in in-memory fakes.
type Stores struct {
	Users       UserStore
	Courses     CourseStore
	Evaluations EvaluationStore
}

// Service exposes the operations consumed by the HTTP boundary.
type Service struct {
	stores   Stores
	validate *validator.Validate
}

// New constructs the service over the given persistence collaborators.
func New(stores Stores) *Service {
	return &Service{
		stores:   stores,
		validate: newValidator(),
	}
}

// NewWithRepository wires the service to the pgx-backed repositories.
func NewWithRepository(repo *repository.Repository) *Service {
	return New(Stores{
		Users:       repo.Users,
		Courses:     repo.Courses,
		Evaluations: repo.Evaluations,
	})
}

// Register creates a new account. Duplicate usernames (case-sensitive exact
// match) fail with a validation error on the username field.
func (s *Service) Register(ctx context.Context, input RegisterInput) (domain.PublicUser, error) {
	if err := s.validateInput(input); err != nil {
		return domain.PublicUser{}, err
	}

	input.Department = normalizeOptional(input.Department)
	input.CourseID = normalizeOptional(input.CourseID)

	// Course assignment only applies to lecturers.
	if input.Role != domain.RoleLecturer {
		input.CourseID = nil
	}
	if input.CourseID != nil {
		if _, err := s.stores.Courses.GetByID(ctx, *input.CourseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.PublicUser{}, &ValidationError{Field: "courseId", Message: "Course not found"}
			}
			return domain.PublicUser{}, fmt.Errorf("look up course: %w", err)
		}
	}

	if _, err := s.stores.Users.GetByUsername(ctx, input.Username); err == nil {
		return domain.PublicUser{}, errDuplicateUsername()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.PublicUser{}, fmt.Errorf("look up username: %w", err)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.stores.Users.Create(ctx, repository.UserCreateParams{
		Username:   input.Username,
		Password:   hashed,
		Role:       input.Role,
		Name:       input.Name,
		Department: input.Department,
		CourseID:   input.CourseID,
	})
	if err != nil {
		// Lost the race against a concurrent registration.
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.PublicUser{}, errDuplicateUsername()
		}
		return domain.PublicUser{}, fmt.Errorf("create user: %w", err)
	}

	return user.Public(), nil
}

// Login verifies credentials. Any mismatch yields ErrUnauthenticated; the
// caller cannot distinguish a missing account from a wrong password.
func (s *Service) Login(ctx context.Context, input LoginInput) (domain.PublicUser, error) {
	if err := s.validateInput(input); err != nil {
		return domain.PublicUser{}, policy.ErrUnauthenticated
	}

	user, err := s.stores.Users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.PublicUser{}, policy.ErrUnauthenticated
		}
		return domain.PublicUser{}, fmt.Errorf("look up username: %w", err)
	}
	if !auth.CheckPassword(user.Password, input.Password) {
		return domain.PublicUser{}, policy.ErrUnauthenticated
	}

	return user.Public(), nil
}

// Me returns the actor's own public profile.
func (s *Service) Me(actor *domain.User) (domain.PublicUser, error) {
	if err := policy.CanReadOwnProfile(actor); err != nil {
		return domain.PublicUser{}, err
	}
	return actor.Public(), nil
}

// ListCourses returns all courses. Public.
func (s *Service) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return s.stores.Courses.List(ctx)
}

// ListLecturers returns all lecturers with their course info. Public.
func (s *Service) ListLecturers(ctx context.Context) ([]repository.LecturerListing, error) {
	return s.stores.Users.ListLecturers(ctx)
}

// ListMyEvaluations returns the actor's own submissions.
func (s *Service) ListMyEvaluations(ctx context.Context, actor *domain.User) ([]domain.Evaluation, error) {
	if err := policy.CanListOwnEvaluations(actor); err != nil {
		return nil, err
	}
	return s.stores.Evaluations.ListByStudent(ctx, actor.ID)
}

// SubmitEvaluation validates and persists a new evaluation record. The
// record's student id is always the actor's, regardless of the payload.
func (s *Service) SubmitEvaluation(ctx context.Context, actor *domain.User, input EvaluationInput) (domain.Evaluation, error) {
	if err := policy.CanCreateEvaluation(actor); err != nil {
		return domain.Evaluation{}, err
	}
	if err := s.validateInput(input); err != nil {
		return domain.Evaluation{}, err
	}

	lecturer, err := s.stores.Users.GetByID(ctx, input.LecturerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Evaluation{}, fmt.Errorf("lecturer %s: %w", input.LecturerID, ErrNotFound)
		}
		return domain.Evaluation{}, fmt.Errorf("look up lecturer: %w", err)
	}
	if lecturer.Role != domain.RoleLecturer {
		return domain.Evaluation{}, fmt.Errorf("user %s is not a lecturer: %w", input.LecturerID, ErrNotFound)
	}
	if _, err := s.stores.Courses.GetByID(ctx, input.CourseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Evaluation{}, fmt.Errorf("course %s: %w", input.CourseID, ErrNotFound)
		}
		return domain.Evaluation{}, fmt.Errorf("look up course: %w", err)
	}

	eval, err := s.stores.Evaluations.Create(ctx, repository.EvaluationCreateParams{
		StudentID:    actor.ID,
		LecturerID:   input.LecturerID,
		CourseID:     input.CourseID,
		Overall:      input.Overall,
		Clarity:      input.Clarity,
		Engagement:   input.Engagement,
		Materials:    input.Materials,
		Organization: input.Organization,
		Feedback:     input.Feedback,
		Pace:         input.Pace,
		Support:      input.Support,
		Fairness:     input.Fairness,
		Relevance:    input.Relevance,
		Comments:     normalizeOptional(input.Comments),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Evaluation{}, &ValidationError{
				Field:   "lecturerId",
				Message: "You have already evaluated this lecturer for this course",
			}
		}
		return domain.Evaluation{}, fmt.Errorf("create evaluation: %w", err)
	}

	return eval, nil
}

// LecturerSummary is the dashboard payload for a lecturer.
type LecturerSummary struct {
	Summary domain.Summary
	Course  *domain.Course
}

// GetLecturerSummary aggregates the actor's own evaluations and attaches the
// assigned course when present. The result is always well-defined, even with
// zero records.
func (s *Service) GetLecturerSummary(ctx context.Context, actor *domain.User) (LecturerSummary, error) {
	if err := policy.CanReadLecturerSummary(actor); err != nil {
		return LecturerSummary{}, err
	}

	evals, err := s.stores.Evaluations.ListByLecturer(ctx, actor.ID)
	if err != nil {
		return LecturerSummary{}, fmt.Errorf("list evaluations: %w", err)
	}

	result := LecturerSummary{Summary: summary.Summarize(evals)}

	if actor.CourseID != nil {
		course, err := s.stores.Courses.GetByID(ctx, *actor.CourseID)
		switch {
		case err == nil:
			result.Course = &course
		case errors.Is(err, repository.ErrNotFound):
			// Stale assignment; the summary is still valid without it.
		default:
			return LecturerSummary{}, fmt.Errorf("look up course: %w", err)
		}
	}

	return result, nil
}
