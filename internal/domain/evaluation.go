package domain

import "time"

// Evaluation is one student's rating submission for a lecturer/course pair.
// Records are immutable once created.
type Evaluation struct {
	ID         string
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

	Comments  *string
	CreatedAt time.Time
}
