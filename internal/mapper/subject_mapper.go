package mapper

import (
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/model"
)

type SubjectMapper struct{}

func NewSubjectMapper() *SubjectMapper {
	return &SubjectMapper{}
}

func (m *SubjectMapper) ToEntity(s *model.Subject) *entity.Subject {
	if s == nil {
		return nil
	}
	return &entity.Subject{
		Id:        s.Id,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SubjectMapper) ToModel(s *entity.Subject) *model.Subject {
	if s == nil {
		return nil
	}
	return &model.Subject{
		Id:        s.Id,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SubjectMapper) ToEntities(subjects []*model.Subject) []*entity.Subject {
	entities := make([]*entity.Subject, len(subjects))
	for i, s := range subjects {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *SubjectMapper) SubtopicToEntity(s *model.Subtopic) *entity.Subtopic {
	if s == nil {
		return nil
	}
	return &entity.Subtopic{
		Id:        s.Id,
		SubjectId: s.SubjectId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SubjectMapper) SubtopicToModel(s *entity.Subtopic) *model.Subtopic {
	if s == nil {
		return nil
	}
	return &model.Subtopic{
		Id:        s.Id,
		SubjectId: s.SubjectId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SubjectMapper) SubtopicsToEntities(subtopics []*model.Subtopic) []*entity.Subtopic {
	entities := make([]*entity.Subtopic, len(subtopics))
	for i, s := range subtopics {
		entities[i] = m.SubtopicToEntity(s)
	}
	return entities
}
