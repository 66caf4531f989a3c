package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/repository/contract"
	"codal-docs-be/internal/repository/specification"
	"codal-docs-be/internal/repository/unitofwork"
	"codal-docs-be/pkg/events"
	"codal-docs-be/pkg/sanitize"
)

type IDocumentService interface {
	List(ctx context.Context, filter entity.DocumentFilter) ([]*entity.Document, error)
	Get(ctx context.Context, id string) (*entity.Document, error)
	Create(ctx context.Context, draft entity.DocumentDraft) (*entity.Document, error)
	Update(ctx context.Context, id string, draft entity.DocumentDraft) (*entity.Document, error)
	Remove(ctx context.Context, id string) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IDocumentService {
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// PrepareDocument validates a draft and returns it in stored form: title
// trimmed, content sanitized. It never touches the store, so callers can
// reject a save before any network call.
func PrepareDocument(draft entity.DocumentDraft) (entity.DocumentDraft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return draft, apperror.Validation("title", "title is required")
	}
	if tooLong(draft.Title) {
		return draft, apperror.Validation("title", "title is too long")
	}
	if sanitize.IsBlank(draft.ContentHtml) {
		return draft, apperror.Validation("content_html", "content is required")
	}

	draft.ContentHtml = sanitize.HTML(draft.ContentHtml)
	if sanitize.IsBlank(draft.ContentHtml) {
		return draft, apperror.Validation("content_html", "content has no visible text after sanitizing")
	}

	draft.SubjectId = normalizeRef(draft.SubjectId)
	draft.SubtopicId = normalizeRef(draft.SubtopicId)
	if draft.SubjectId != nil && tooLong(*draft.SubjectId) {
		return draft, apperror.Validation("subject_id", "subject is too long")
	}
	if draft.SubtopicId != nil && tooLong(*draft.SubtopicId) {
		return draft, apperror.Validation("subtopic_id", "subtopic is too long")
	}
	if draft.SubtopicId != nil && draft.SubjectId == nil {
		return draft, apperror.Validation("subtopic_id", "a subtopic needs its subject")
	}
	return draft, nil
}

func tooLong(s string) bool {
	return utf8.RuneCountInString(s) > entity.MaxNameLength
}

func normalizeRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return &v
}

func (s *documentService) List(ctx context.Context, filter entity.DocumentFilter) ([]*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.MatchingFilter{Filter: filter},
		specification.LiveOrder(),
	)
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	return docs, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	if doc == nil {
		return nil, apperror.NotFound("this document no longer exists")
	}
	return doc, nil
}

func (s *documentService) Create(ctx context.Context, draft entity.DocumentDraft) (*entity.Document, error) {
	draft, err := PrepareDocument(draft)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc := &entity.Document{
		Title:       draft.Title,
		ContentHtml: draft.ContentHtml,
		SubjectId:   draft.SubjectId,
		SubtopicId:  draft.SubtopicId,
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		s.logger.Error("DocumentService", "Failed to create document", map[string]interface{}{
			"title": doc.Title,
			"error": err.Error(),
		})
		return nil, apperror.SaveFailure(err)
	}

	s.logger.Info("DocumentService", "Document created", map[string]interface{}{"document_id": doc.Id})
	s.announce(ctx, events.DOCUMENT_CREATED, doc, doc.Location())
	return doc, nil
}

// Update overwrites the document unconditionally; the last write wins.
func (s *documentService) Update(ctx context.Context, id string, draft entity.DocumentDraft) (*entity.Document, error) {
	draft, err := PrepareDocument(draft)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.DocumentRepository()

	existing, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.SaveFailure(err)
	}
	if existing == nil {
		return nil, apperror.NotFound("this document no longer exists")
	}

	doc := &entity.Document{
		Id:          id,
		Title:       draft.Title,
		ContentHtml: draft.ContentHtml,
		SubjectId:   draft.SubjectId,
		SubtopicId:  draft.SubtopicId,
	}
	if err := repo.Update(ctx, doc); err != nil {
		if errors.Is(err, contract.ErrNoRows) {
			// deleted between the read and the write
			return nil, apperror.NotFound("this document no longer exists")
		}
		s.logger.Error("DocumentService", "Failed to update document", map[string]interface{}{
			"document_id": id,
			"error":       err.Error(),
		})
		return nil, apperror.SaveFailure(err)
	}

	s.announce(ctx, events.DOCUMENT_UPDATED, doc, existing.Location(), doc.Location())
	return doc, nil
}

// Remove is idempotent. Deleting a document that is already gone is logged
// and otherwise ignored.
func (s *documentService) Remove(ctx context.Context, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.DocumentRepository()

	existing, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.SaveFailure(err)
	}
	if existing == nil {
		s.logger.Warn("DocumentService", "Delete of missing document ignored", map[string]interface{}{"document_id": id})
		return nil
	}

	deleted, err := repo.Delete(ctx, id)
	if err != nil {
		return apperror.SaveFailure(err)
	}
	if !deleted {
		s.logger.Warn("DocumentService", "Document already deleted", map[string]interface{}{"document_id": id})
		return nil
	}

	s.announce(ctx, events.DOCUMENT_DELETED, existing, existing.Location())
	return nil
}

// announce refreshes live lists and emits the domain event. Neither failure
// undoes the committed write.
func (s *documentService) announce(ctx context.Context, eventType string, doc *entity.Document, locations ...entity.Location) {
	notice := feed.Notice{Kind: feed.DocumentChanged, DocumentId: doc.Id, Locations: locations}
	if err := s.publisherService.PublishNotice(ctx, notice); err != nil {
		s.logger.Warn("DocumentService", "Failed to publish change notice", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
	}

	evt := events.NewEvent(eventType, map[string]interface{}{
		"document_id": doc.Id,
		"title":       doc.Title,
		"subject_id":  doc.SubjectId,
		"subtopic_id": doc.SubtopicId,
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("DocumentService", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
