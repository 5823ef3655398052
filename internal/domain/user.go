package domain

// Roles a user account can hold.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
)

// User represents an account in the database/service. Password holds the
// bcrypt hash and must never cross the HTTP boundary; use Public for that.
type User struct {
	ID         string
	Username   string
	Password   string
	Role       string
	Name       string
	Department *string
	CourseID   *string
}

// PublicUser is the password-free projection of a User. It is the only user
// shape serialized in responses.
type PublicUser struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Role       string  `json:"role"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
	CourseID   *string `json:"courseId"`
}

// Public projects the user into its response-safe form.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		Name:       u.Name,
		Department: u.Department,
		CourseID:   u.CourseID,
	}
}
