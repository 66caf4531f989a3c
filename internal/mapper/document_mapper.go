package mapper

import (
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	return &entity.Document{
		Id:           d.Id,
		Title:        d.Title,
		ContentHtml:  d.ContentHtml,
		SubjectId:    copyString(d.SubjectId),
		SubtopicId:   copyString(d.SubtopicId),
		CreatedAt:    d.CreatedAt,
		LastModified: copyTime(d.LastModified),
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:           d.Id,
		Title:        d.Title,
		ContentHtml:  d.ContentHtml,
		SubjectId:    copyString(d.SubjectId),
		SubtopicId:   copyString(d.SubtopicId),
		CreatedAt:    d.CreatedAt,
		LastModified: copyTime(d.LastModified),
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
