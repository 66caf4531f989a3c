package mapper

import (
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/model"
)

type ArticleMapper struct{}

func NewArticleMapper() *ArticleMapper {
	return &ArticleMapper{}
}

func (m *ArticleMapper) ToEntity(a *model.Article) *entity.Article {
	if a == nil {
		return nil
	}
	return &entity.Article{
		Id:          a.Id,
		Title:       a.Title,
		Author:      a.Author,
		ContentHtml: a.ContentHtml,
		CreatedAt:   a.CreatedAt,
		PublishedAt: copyTime(a.PublishedAt),
	}
}

func (m *ArticleMapper) ToModel(a *entity.Article) *model.Article {
	if a == nil {
		return nil
	}
	return &model.Article{
		Id:          a.Id,
		Title:       a.Title,
		Author:      a.Author,
		ContentHtml: a.ContentHtml,
		CreatedAt:   a.CreatedAt,
		PublishedAt: copyTime(a.PublishedAt),
	}
}

func (m *ArticleMapper) ToEntities(articles []*model.Article) []*entity.Article {
	entities := make([]*entity.Article, len(articles))
	for i, a := range articles {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
