package dto

import (
	"time"

	"codal-docs-be/internal/entity"
)

type SubjectListResponse struct {
	Subjects         []string `json:"subjects"`
	DefaultSubjectId string   `json:"default_subject_id"`
}

func NewSubjectListResponse(subjects []*entity.Subject, defaultId string) *SubjectListResponse {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = s.Id
	}
	return &SubjectListResponse{Subjects: names, DefaultSubjectId: defaultId}
}

type AddSubtopicRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type SubtopicResponse struct {
	Id        string    `json:"id"`
	SubjectId string    `json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSubtopicResponse(s *entity.Subtopic) SubtopicResponse {
	return SubtopicResponse{Id: s.Id, SubjectId: s.SubjectId, CreatedAt: s.CreatedAt}
}

func NewSubtopicResponses(subtopics []*entity.Subtopic) []SubtopicResponse {
	out := make([]SubtopicResponse, len(subtopics))
	for i, s := range subtopics {
		out[i] = NewSubtopicResponse(s)
	}
	return out
}
