package domain

// Course represents a course a lecturer can be assigned to and students
// evaluate lecturers for.
type Course struct {
	ID         string
	Department string
	Code       string
	Name       string
}
