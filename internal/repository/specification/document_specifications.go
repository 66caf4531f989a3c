package specification

import (
	"codal-docs-be/internal/entity"

	"gorm.io/gorm"
)

type BySubjectID struct {
	SubjectID string
}

func (s BySubjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject_id = ?", s.SubjectID)
}

// MatchingFilter applies a live list filter. The zero filter is a no-op.
type MatchingFilter struct {
	Filter entity.DocumentFilter
}

func (s MatchingFilter) Apply(db *gorm.DB) *gorm.DB {
	if s.Filter.SubjectId != nil {
		db = db.Where("subject_id = ?", *s.Filter.SubjectId)
	}
	if s.Filter.SubtopicId != nil {
		db = db.Where("subtopic_id = ?", *s.Filter.SubtopicId)
	}
	return db
}

// LiveOrder is the order every document list is delivered in.
func LiveOrder() Specification {
	return NullsLastDesc{Field: "last_modified"}
}
