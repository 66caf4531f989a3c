package dto

import (
	"time"

	"codal-docs-be/internal/entity"
)

type ArticleRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"max=255"`
	ContentHtml string `json:"content_html" validate:"required"`
}

type ArticleResponse struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ContentHtml string     `json:"content_html"`
	PublishedAt *time.Time `json:"published_at"`
}

func NewArticleResponse(a *entity.Article) ArticleResponse {
	return ArticleResponse{
		Id:          a.Id,
		Title:       a.Title,
		Author:      a.Author,
		ContentHtml: a.ContentHtml,
		PublishedAt: a.PublishedAt,
	}
}

func NewArticleResponses(articles []*entity.Article) []ArticleResponse {
	out := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		out[i] = NewArticleResponse(a)
	}
	return out
}
