package service

import (
	"context"
	"errors"
	"strings"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/repository/contract"
	"codal-docs-be/internal/repository/specification"
	"codal-docs-be/internal/repository/unitofwork"
	"codal-docs-be/pkg/events"
	"codal-docs-be/pkg/sanitize"
)

const DefaultArticleAuthor = "Admin"

type ArticleInput struct {
	Title       string
	Author      string
	ContentHtml string
}

type IArticleService interface {
	List(ctx context.Context) ([]*entity.Article, error)
	Get(ctx context.Context, id string) (*entity.Article, error)
	Create(ctx context.Context, in ArticleInput) (*entity.Article, error)
	Update(ctx context.Context, id string, in ArticleInput) (*entity.Article, error)
	Delete(ctx context.Context, id string) error
}

type articleService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewArticleService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, log logger.ILogger) IArticleService {
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	return &articleService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func prepareArticle(in ArticleInput) (ArticleInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, apperror.Validation("title", "title is required")
	}
	if tooLong(in.Title) {
		return in, apperror.Validation("title", "title is too long")
	}
	in.ContentHtml = sanitize.HTML(in.ContentHtml)
	if sanitize.IsBlank(in.ContentHtml) {
		return in, apperror.Validation("content_html", "content is required")
	}
	in.Author = strings.TrimSpace(in.Author)
	if in.Author == "" {
		in.Author = DefaultArticleAuthor
	}
	if tooLong(in.Author) {
		return in, apperror.Validation("author", "author is too long")
	}
	return in, nil
}

func (s *articleService) List(ctx context.Context) ([]*entity.Article, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	articles, err := uow.ArticleRepository().FindAll(ctx, specification.NullsLastDesc{Field: "published_at"})
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	return articles, nil
}

func (s *articleService) Get(ctx context.Context, id string) (*entity.Article, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	article, err := uow.ArticleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	if article == nil {
		return nil, apperror.NotFound("article not found")
	}
	return article, nil
}

func (s *articleService) Create(ctx context.Context, in ArticleInput) (*entity.Article, error) {
	in, err := prepareArticle(in)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	article := &entity.Article{Title: in.Title, Author: in.Author, ContentHtml: in.ContentHtml}
	if err := uow.ArticleRepository().Create(ctx, article); err != nil {
		return nil, apperror.SaveFailure(err)
	}

	s.publish(ctx, events.ARTICLE_CREATED, article)
	return article, nil
}

func (s *articleService) Update(ctx context.Context, id string, in ArticleInput) (*entity.Article, error) {
	in, err := prepareArticle(in)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	article := &entity.Article{Id: id, Title: in.Title, Author: in.Author, ContentHtml: in.ContentHtml}
	if err := uow.ArticleRepository().Update(ctx, article); err != nil {
		if errors.Is(err, contract.ErrNoRows) {
			return nil, apperror.NotFound("article not found")
		}
		return nil, apperror.SaveFailure(err)
	}

	s.publish(ctx, events.ARTICLE_UPDATED, article)
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ArticleRepository().Delete(ctx, id)
	if err != nil {
		return apperror.SaveFailure(err)
	}
	if !deleted {
		s.logger.Warn("ArticleService", "Delete of missing article ignored", map[string]interface{}{"article_id": id})
		return nil
	}

	s.publish(ctx, events.ARTICLE_DELETED, &entity.Article{Id: id})
	return nil
}

func (s *articleService) publish(ctx context.Context, eventType string, a *entity.Article) {
	evt := events.NewEvent(eventType, map[string]interface{}{
		"article_id": a.Id,
		"title":      a.Title,
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ArticleService", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
