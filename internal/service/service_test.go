package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalboard/evalboard/internal/auth"
	"github.com/evalboard/evalboard/internal/domain"
	"github.com/evalboard/evalboard/internal/policy"
	"github.com/evalboard/evalboard/internal/repository"
)

// fakeStore is an in-memory persistence collaborator shared by the three
// store adapters below.
type fakeStore struct {
	mu      sync.Mutex
	users   map[string]domain.User
	courses map[string]domain.Course
	evals   []domain.Evaluation
	seq     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[string]domain.User),
		courses: make(map[string]domain.Course),
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

type fakeUsers struct{ *fakeStore }

func (f fakeUsers) Create(_ context.Context, params repository.UserCreateParams) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == params.Username {
			return domain.User{}, repository.ErrDuplicate
		}
	}
	user := domain.User{
		ID:         f.nextID("user"),
		Username:   params.Username,
		Password:   params.Password,
		Role:       params.Role,
		Name:       params.Name,
		Department: params.Department,
		CourseID:   params.CourseID,
	}
	f.users[user.ID] = user
	return user, nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (f fakeUsers) ListLecturers(_ context.Context) ([]repository.LecturerListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	listings := make([]repository.LecturerListing, 0)
	for _, u := range f.users {
		if u.Role != domain.RoleLecturer {
			continue
		}
		listing := repository.LecturerListing{
			ID:         u.ID,
			Name:       u.Name,
			Department: u.Department,
			CourseID:   u.CourseID,
		}
		if u.CourseID != nil {
			if course, ok := f.courses[*u.CourseID]; ok {
				listing.CourseCode = &course.Code
				listing.CourseName = &course.Name
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

type fakeCourses struct{ *fakeStore }

func (f fakeCourses) List(_ context.Context) ([]domain.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	courses := make([]domain.Course, 0, len(f.courses))
	for _, c := range f.courses {
		courses = append(courses, c)
	}
	return courses, nil
}

func (f fakeCourses) GetByID(_ context.Context, id string) (domain.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok {
		return domain.Course{}, repository.ErrNotFound
	}
	return course, nil
}

type fakeEvaluations struct{ *fakeStore }

func (f fakeEvaluations) Create(_ context.Context, params repository.EvaluationCreateParams) (domain.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.evals {
		if e.StudentID == params.StudentID && e.LecturerID == params.LecturerID && e.CourseID == params.CourseID {
			return domain.Evaluation{}, repository.ErrDuplicate
		}
	}
	eval := domain.Evaluation{
		ID:           f.nextID("eval"),
		StudentID:    params.StudentID,
		LecturerID:   params.LecturerID,
		CourseID:     params.CourseID,
		Overall:      params.Overall,
		Clarity:      params.Clarity,
		Engagement:   params.Engagement,
		Materials:    params.Materials,
		Organization: params.Organization,
		Feedback:     params.Feedback,
		Pace:         params.Pace,
		Support:      params.Support,
		Fairness:     params.Fairness,
		Relevance:    params.Relevance,
		Comments:     params.Comments,
		CreatedAt:    time.Now().UTC(),
	}
	f.evals = append(f.evals, eval)
	return eval, nil
}

func (f fakeEvaluations) ListByStudent(_ context.Context, studentID string) ([]domain.Evaluation, error) {
	return f.listBy(func(e domain.Evaluation) bool { return e.StudentID == studentID })
}

func (f fakeEvaluations) ListByLecturer(_ context.Context, lecturerID string) ([]domain.Evaluation, error) {
	return f.listBy(func(e domain.Evaluation) bool { return e.LecturerID == lecturerID })
}

func (f fakeEvaluations) listBy(match func(domain.Evaluation) bool) ([]domain.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Evaluation, 0)
	for _, e := range f.evals {
		if match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fixture struct {
	svc      *Service
	store    *fakeStore
	course   domain.Course
	student  *domain.User
	lecturer *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := newFakeStore()
	svc := New(Stores{
		Users:       fakeUsers{fs},
		Courses:     fakeCourses{fs},
		Evaluations: fakeEvaluations{fs},
	})

	course := domain.Course{ID: "course-cs101", Department: "Computer Science", Code: "CS101", Name: "Intro to Computer Science"}
	fs.courses[course.ID] = course

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	student := domain.User{ID: "user-student", Username: "student1", Password: hash, Role: domain.RoleStudent, Name: "Student One"}
	lecturer := domain.User{ID: "user-lecturer", Username: "lecturer1", Password: hash, Role: domain.RoleLecturer, Name: "Lecturer One", CourseID: &course.ID}
	fs.users[student.ID] = student
	fs.users[lecturer.ID] = lecturer

	return &fixture{svc: svc, store: fs, course: course, student: &student, lecturer: &lecturer}
}

func allFives(lecturerID, courseID string) EvaluationInput {
	return EvaluationInput{
		LecturerID: lecturerID,
		CourseID:   courseID,
		Overall:    5, Clarity: 5, Engagement: 5, Materials: 5, Organization: 5,
		Feedback: 5, Pace: 5, Support: 5, Fairness: 5, Relevance: 5,
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "student1",
		Password: "hunter2secret",
		Role:     domain.RoleStudent,
		Name:     "Impostor",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
	assert.Equal(t, "Username already exists", verr.Message)
}

func TestRegister_UsernameMatchIsCaseSensitive(t *testing.T) {
	f := newFixture(t)

	user, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "Student1",
		Password: "hunter2secret",
		Role:     domain.RoleStudent,
		Name:     "Different Person",
	})
	require.NoError(t, err)
	assert.Equal(t, "Student1", user.Username)
}

func TestRegister_HashesPassword(t *testing.T) {
	f := newFixture(t)

	pub, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "fresh",
		Password: "plaintext-secret",
		Role:     domain.RoleStudent,
		Name:     "Fresh User",
	})
	require.NoError(t, err)

	stored := f.store.users[pub.ID]
	assert.NotEqual(t, "plaintext-secret", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "plaintext-secret"))
}

func TestRegister_StudentCourseAssignmentDropped(t *testing.T) {
	f := newFixture(t)

	pub, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "newstudent",
		Password: "hunter2secret",
		Role:     domain.RoleStudent,
		Name:     "New Student",
		CourseID: &f.course.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, pub.CourseID)
}

func TestRegister_LecturerUnknownCourse(t *testing.T) {
	f := newFixture(t)
	missing := "course-nope"

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "newlecturer",
		Password: "hunter2secret",
		Role:     domain.RoleLecturer,
		Name:     "New Lecturer",
		CourseID: &missing,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "courseId", verr.Field)
}

func TestRegister_InvalidRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Username: "whoever",
		Password: "hunter2secret",
		Role:     "admin",
		Name:     "Who Ever",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.Login(ctx, LoginInput{Username: "student1", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, user.ID)

	_, err = f.svc.Login(ctx, LoginInput{Username: "student1", Password: "wrong"})
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)

	_, err = f.svc.Login(ctx, LoginInput{Username: "ghost", Password: "password123"})
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestMe(t *testing.T) {
	f := newFixture(t)

	user, err := f.svc.Me(f.student)
	require.NoError(t, err)
	assert.Equal(t, f.student.Username, user.Username)

	_, err = f.svc.Me(nil)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestSubmitEvaluation_ForcesStudentID(t *testing.T) {
	f := newFixture(t)

	input := allFives(f.lecturer.ID, f.course.ID)
	input.StudentID = "someone-else"

	eval, err := f.svc.SubmitEvaluation(context.Background(), f.student, input)
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, eval.StudentID)
}

func TestSubmitEvaluation_OutOfRangeRating(t *testing.T) {
	f := newFixture(t)

	input := allFives(f.lecturer.ID, f.course.ID)
	input.Overall = 6

	_, err := f.svc.SubmitEvaluation(context.Background(), f.student, input)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "overallRating", verr.Field)

	input.Overall = 0
	_, err = f.svc.SubmitEvaluation(context.Background(), f.student, input)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "overallRating", verr.Field)
}

func TestSubmitEvaluation_CommentsNormalized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	padded := "  great lectures  "
	input := allFives(f.lecturer.ID, f.course.ID)
	input.Comments = &padded

	eval, err := f.svc.SubmitEvaluation(ctx, f.student, input)
	require.NoError(t, err)
	require.NotNil(t, eval.Comments)
	assert.Equal(t, "great lectures", *eval.Comments)

	// A second student whose comment is only whitespace ends up with none.
	other, err := f.svc.Register(ctx, RegisterInput{
		Username: "student2", Password: "hunter2secret", Role: domain.RoleStudent, Name: "Student Two",
	})
	require.NoError(t, err)
	otherUser := f.store.users[other.ID]

	blank := "   "
	input2 := allFives(f.lecturer.ID, f.course.ID)
	input2.Comments = &blank

	eval2, err := f.svc.SubmitEvaluation(ctx, &otherUser, input2)
	require.NoError(t, err)
	assert.Nil(t, eval2.Comments)
}

func TestSubmitEvaluation_UnknownTargets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitEvaluation(ctx, f.student, allFives("user-nope", f.course.ID))
	assert.ErrorIs(t, err, ErrNotFound)

	// Targeting a student is the same as targeting a missing lecturer.
	_, err = f.svc.SubmitEvaluation(ctx, f.student, allFives(f.student.ID, f.course.ID))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.SubmitEvaluation(ctx, f.student, allFives(f.lecturer.ID, "course-nope"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitEvaluation_DuplicateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitEvaluation(ctx, f.student, allFives(f.lecturer.ID, f.course.ID))
	require.NoError(t, err)

	_, err = f.svc.SubmitEvaluation(ctx, f.student, allFives(f.lecturer.ID, f.course.ID))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lecturerId", verr.Field)
}

func TestSubmitEvaluation_PolicyDenies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := allFives(f.lecturer.ID, f.course.ID)

	_, err := f.svc.SubmitEvaluation(ctx, nil, input)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)

	_, err = f.svc.SubmitEvaluation(ctx, f.lecturer, input)
	assert.ErrorIs(t, err, policy.ErrUnauthorized)
}

func TestListMyEvaluations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListMyEvaluations(ctx, nil)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)

	_, err = f.svc.ListMyEvaluations(ctx, f.lecturer)
	assert.ErrorIs(t, err, policy.ErrUnauthorized)

	_, err = f.svc.SubmitEvaluation(ctx, f.student, allFives(f.lecturer.ID, f.course.ID))
	require.NoError(t, err)

	evals, err := f.svc.ListMyEvaluations(ctx, f.student)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, f.student.ID, evals[0].StudentID)
}

func TestGetLecturerSummary_SingleSubmission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SubmitEvaluation(ctx, f.student, allFives(f.lecturer.ID, f.course.ID))
	require.NoError(t, err)

	result, err := f.svc.GetLecturerSummary(ctx, f.lecturer)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.TotalEvaluations)
	assert.InDelta(t, 5.0, result.Summary.AverageOverall, 1e-9)
	assert.Equal(t, 1, result.Summary.RatingDistribution.Excellent)
	require.NotNil(t, result.Course)
	assert.Equal(t, "CS101", result.Course.Code)
}

func TestGetLecturerSummary_OwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherCourse := domain.Course{ID: "course-math101", Department: "Mathematics", Code: "MATH101", Name: "Calculus I"}
	f.store.courses[otherCourse.ID] = otherCourse
	otherLecturer := domain.User{ID: "user-lect2", Username: "lecturer2", Role: domain.RoleLecturer, Name: "Lecturer Two", CourseID: &otherCourse.ID}
	f.store.users[otherLecturer.ID] = otherLecturer

	_, err := f.svc.SubmitEvaluation(ctx, f.student, allFives(f.lecturer.ID, f.course.ID))
	require.NoError(t, err)

	low := allFives(otherLecturer.ID, otherCourse.ID)
	low.Overall = 1
	_, err = f.svc.SubmitEvaluation(ctx, f.student, low)
	require.NoError(t, err)

	result, err := f.svc.GetLecturerSummary(ctx, f.lecturer)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.TotalEvaluations)
	assert.Equal(t, 0, result.Summary.RatingDistribution.Poor)
	assert.InDelta(t, 5.0, result.Summary.AverageOverall, 1e-9)
}

func TestGetLecturerSummary_EmptyIsWellDefined(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.GetLecturerSummary(context.Background(), f.lecturer)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary.TotalEvaluations)
	assert.Zero(t, result.Summary.AverageOverall)
	assert.Equal(t, domain.RatingDistribution{}, result.Summary.RatingDistribution)
}

func TestGetLecturerSummary_PolicyDenies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetLecturerSummary(ctx, f.student)
	assert.ErrorIs(t, err, policy.ErrUnauthorized)

	_, err = f.svc.GetLecturerSummary(ctx, nil)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestListLecturers_IncludesCourseInfo(t *testing.T) {
	f := newFixture(t)

	lecturers, err := f.svc.ListLecturers(context.Background())
	require.NoError(t, err)
	require.Len(t, lecturers, 1)
	require.NotNil(t, lecturers[0].CourseCode)
	assert.Equal(t, "CS101", *lecturers[0].CourseCode)
}
