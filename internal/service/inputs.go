package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterInput is the typed registration payload.
type RegisterInput struct {
	Username   string  `json:"username" validate:"required,min=3,max=64"`
	Password   string  `json:"password" validate:"required,min=6,max=72"`
	Role       string  `json:"role" validate:"required,oneof=student lecturer"`
	Name       string  `json:"name" validate:"required"`
	Department *string `json:"department"`
	CourseID   *string `json:"courseId"`
}

// LoginInput is the typed login payload.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EvaluationInput is the typed submission payload. StudentID is accepted for
// wire compatibility but ignored; ownership is always taken from the actor.
type EvaluationInput struct {
	StudentID  string `json:"studentId"`
	LecturerID string `json:"lecturerId" validate:"required"`
	CourseID   string `json:"courseId" validate:"required"`

	Overall      int `json:"overallRating" validate:"min=1,max=5"`
	Clarity      int `json:"clarityRating" validate:"min=1,max=5"`
	Engagement   int `json:"engagementRating" validate:"min=1,max=5"`
	Materials    int `json:"materialsRating" validate:"min=1,max=5"`
	Organization int `json:"organizationRating" validate:"min=1,max=5"`
	Feedback     int `json:"feedbackRating" validate:"min=1,max=5"`
	Pace         int `json:"paceRating" validate:"min=1,max=5"`
	Support      int `json:"supportRating" validate:"min=1,max=5"`
	Fairness     int `json:"fairnessRating" validate:"min=1,max=5"`
	Relevance    int `json:"relevanceRating" validate:"min=1,max=5"`

	Comments *string `json:"comments"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Service) validateInput(input interface{}) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var ferrs validator.ValidationErrors
	if errors.As(err, &ferrs) && len(ferrs) > 0 {
		fe := ferrs[0]
		return &ValidationError{Field: fe.Field(), Message: fieldMessage(fe)}
	}
	return err
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min", "max":
		if fe.Kind() == reflect.Int {
			return fe.Field() + " must be an integer between 1 and 5"
		}
		if fe.Tag() == "min" {
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

func normalizeOptional(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	val := strings.TrimSpace(*ptr)
	if val == "" {
		return nil
	}
	return &val
}
