package httpserver

import (
	"net/http"
	"time"

	"github.com/evalboard/evalboard/internal/domain"
	"github.com/evalboard/evalboard/internal/repository"
	"github.com/evalboard/evalboard/internal/service"
)

type courseResponse struct {
	ID         string `json:"id"`
	Department string `json:"department"`
	Code       string `json:"code"`
	Name       string `json:"name"`
}

type lecturerResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
	CourseID   *string `json:"courseId"`
	CourseCode *string `json:"courseCode,omitempty"`
	CourseName *string `json:"courseName,omitempty"`
}

type evaluationResponse struct {
	ID         string `json:"id"`
	StudentID  string `json:"studentId"`
	LecturerID string `json:"lecturerId"`
	CourseID   string `json:"courseId"`

	Overall      int `json:"overallRating"`
	Clarity      int `json:"clarityRating"`
	Engagement   int `json:"engagementRating"`
	Materials    int `json:"materialsRating"`
	Organization int `json:"organizationRating"`
	Feedback     int `json:"feedbackRating"`
	Pace         int `json:"paceRating"`
	Support      int `json:"supportRating"`
	Fairness     int `json:"fairnessRating"`
	Relevance    int `json:"relevanceRating"`

	Comments  *string   `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

type distributionResponse struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

type summaryResponse struct {
	AverageOverall      float64 `json:"averageOverall"`
	AverageClarity      float64 `json:"averageClarity"`
	AverageEngagement   float64 `json:"averageEngagement"`
	AverageMaterials    float64 `json:"averageMaterials"`
	AverageOrganization float64 `json:"averageOrganization"`
	AverageFeedback     float64 `json:"averageFeedback"`
	AveragePace         float64 `json:"averagePace"`
	AverageSupport      float64 `json:"averageSupport"`
	AverageFairness     float64 `json:"averageFairness"`
	AverageRelevance    float64 `json:"averageRelevance"`

	RatingDistribution distributionResponse `json:"ratingDistribution"`
	TotalEvaluations   int                  `json:"totalEvaluations"`
	Course             *courseResponse      `json:"course,omitempty"`
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.svc.ListCourses(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "list courses")
		return
	}

	items := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		items = append(items, toCourseResponse(c))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleListLecturers(w http.ResponseWriter, r *http.Request) {
	lecturers, err := s.svc.ListLecturers(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "list lecturers")
		return
	}

	items := make([]lecturerResponse, 0, len(lecturers))
	for _, l := range lecturers {
		items = append(items, toLecturerResponse(l))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	evals, err := s.svc.ListMyEvaluations(r.Context(), actorFrom(r))
	if err != nil {
		s.respondServiceError(w, err, "list evaluations")
		return
	}

	items := make([]evaluationResponse, 0, len(evals))
	for _, e := range evals {
		items = append(items, toEvaluationResponse(e))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	var input service.EvaluationInput
	if err := decodeJSONBody(w, r, &input); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	eval, err := s.svc.SubmitEvaluation(r.Context(), actorFrom(r), input)
	if err != nil {
		s.respondServiceError(w, err, "submit evaluation")
		return
	}
	s.respondJSON(w, http.StatusCreated, toEvaluationResponse(eval))
}

func (s *Server) handleLecturerSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.GetLecturerSummary(r.Context(), actorFrom(r))
	if err != nil {
		s.respondServiceError(w, err, "lecturer summary")
		return
	}
	s.respondJSON(w, http.StatusOK, toSummaryResponse(result))
}

func toCourseResponse(c domain.Course) courseResponse {
	return courseResponse{
		ID:         c.ID,
		Department: c.Department,
		Code:       c.Code,
		Name:       c.Name,
	}
}

func toLecturerResponse(l repository.LecturerListing) lecturerResponse {
	return lecturerResponse{
		ID:         l.ID,
		Name:       l.Name,
		Department: l.Department,
		CourseID:   l.CourseID,
		CourseCode: l.CourseCode,
		CourseName: l.CourseName,
	}
}

func toEvaluationResponse(e domain.Evaluation) evaluationResponse {
	return evaluationResponse{
		ID:           e.ID,
		StudentID:    e.StudentID,
		LecturerID:   e.LecturerID,
		CourseID:     e.CourseID,
		Overall:      e.Overall,
		Clarity:      e.Clarity,
		Engagement:   e.Engagement,
		Materials:    e.Materials,
		Organization: e.Organization,
		Feedback:     e.Feedback,
		Pace:         e.Pace,
		Support:      e.Support,
		Fairness:     e.Fairness,
		Relevance:    e.Relevance,
		Comments:     e.Comments,
		CreatedAt:    e.CreatedAt,
	}
}

func toSummaryResponse(result service.LecturerSummary) summaryResponse {
	sum := result.Summary
	resp := summaryResponse{
		AverageOverall:      sum.AverageOverall,
		AverageClarity:      sum.AverageClarity,
		AverageEngagement:   sum.AverageEngagement,
		AverageMaterials:    sum.AverageMaterials,
		AverageOrganization: sum.AverageOrganization,
		AverageFeedback:     sum.AverageFeedback,
		AveragePace:         sum.AveragePace,
		AverageSupport:      sum.AverageSupport,
		AverageFairness:     sum.AverageFairness,
		AverageRelevance:    sum.AverageRelevance,
		RatingDistribution: distributionResponse{
			Excellent: sum.RatingDistribution.Excellent,
			Good:      sum.RatingDistribution.Good,
			Average:   sum.RatingDistribution.Average,
			Poor:      sum.RatingDistribution.Poor,
		},
		TotalEvaluations: sum.TotalEvaluations,
	}
	if result.Course != nil {
		course := toCourseResponse(*result.Course)
		resp.Course = &course
	}
	return resp
}
