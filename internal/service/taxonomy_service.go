package service

import (
	"context"
	"strings"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/repository/memory"
	"codal-docs-be/internal/repository/specification"
	"codal-docs-be/internal/repository/unitofwork"
	"codal-docs-be/pkg/events"
)

type ITaxonomyService interface {
	// ListSubjects serves the cached list, loading it on first use.
	ListSubjects(ctx context.Context) ([]*entity.Subject, error)
	// DefaultSubject picks the primary subject if present, else the first.
	DefaultSubject(subjects []*entity.Subject) string
	RefreshSubjects(ctx context.Context) ([]*entity.Subject, error)
	ListSubtopics(ctx context.Context, subjectId string) ([]*entity.Subtopic, error)
	// AddSubtopic is idempotent: adding an existing name returns it.
	AddSubtopic(ctx context.Context, subjectId, name string) (*entity.Subtopic, error)
	SeedSubjects(ctx context.Context, names []string) (int, error)
}

type taxonomyService struct {
	uowFactory       unitofwork.RepositoryFactory
	cache            *memory.TaxonomyCache
	publisherService IPublisherService
	eventPublisher   events.Publisher
	primarySubject   string
	logger           logger.ILogger
}

func NewTaxonomyService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.TaxonomyCache,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	primarySubject string,
	log logger.ILogger,
) ITaxonomyService {
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	if publisherService == nil {
		publisherService = nopPublisherService{}
	}
	return &taxonomyService{
		uowFactory:       uowFactory,
		cache:            cache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		primarySubject:   primarySubject,
		logger:           log,
	}
}

func (s *taxonomyService) ListSubjects(ctx context.Context) ([]*entity.Subject, error) {
	if subjects, ok := s.cache.Subjects(); ok {
		return subjects, nil
	}
	return s.RefreshSubjects(ctx)
}

func (s *taxonomyService) RefreshSubjects(ctx context.Context) ([]*entity.Subject, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subjects, err := uow.SubjectRepository().FindAll(ctx, specification.OrderBy{Field: "id"})
	if err != nil {
		s.logger.Error("TaxonomyService", "Failed to load subjects", map[string]interface{}{"error": err.Error()})
		return nil, apperror.LoadFailure(err)
	}

	s.cache.SetSubjects(subjects)
	s.logger.Info("TaxonomyService", "Subjects loaded", map[string]interface{}{"count": len(subjects)})
	return subjects, nil
}

func (s *taxonomyService) DefaultSubject(subjects []*entity.Subject) string {
	for _, subj := range subjects {
		if subj.Id == s.primarySubject {
			return subj.Id
		}
	}
	if len(subjects) > 0 {
		return subjects[0].Id
	}
	return ""
}

func (s *taxonomyService) ListSubtopics(ctx context.Context, subjectId string) ([]*entity.Subtopic, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subtopics, err := uow.SubtopicRepository().FindAll(ctx,
		specification.BySubjectID{SubjectID: subjectId},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	return subtopics, nil
}

// PrepareSubtopicName trims name and checks that it can serve as a
// subtopic id.
func PrepareSubtopicName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return name, apperror.Validation("name", "subtopic name is required")
	}
	if tooLong(name) {
		return name, apperror.Validation("name", "subtopic name is too long")
	}
	if strings.ContainsAny(name, "/") {
		return name, apperror.Validation("name", "subtopic name cannot contain '/'")
	}
	return name, nil
}

func (s *taxonomyService) AddSubtopic(ctx context.Context, subjectId, name string) (*entity.Subtopic, error) {
	name, err := PrepareSubtopicName(name)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	subject, err := uow.SubjectRepository().FindOne(ctx, specification.ByID{ID: subjectId})
	if err != nil {
		return nil, apperror.SaveFailure(err)
	}
	if subject == nil {
		return nil, apperror.NotFound("subject does not exist")
	}

	subtopic := &entity.Subtopic{Id: name, SubjectId: subjectId}
	created, err := uow.SubtopicRepository().Create(ctx, subtopic)
	if err != nil {
		s.logger.Error("TaxonomyService", "Failed to add subtopic", map[string]interface{}{
			"subject_id": subjectId,
			"name":       name,
			"error":      err.Error(),
		})
		return nil, apperror.SaveFailure(err)
	}
	if !created {
		s.logger.Info("TaxonomyService", "Subtopic already exists", map[string]interface{}{
			"subject_id": subjectId,
			"name":       name,
		})
		return subtopic, nil
	}

	notice := feed.Notice{Kind: feed.SubtopicAdded, SubjectId: subjectId, SubtopicId: name}
	if err := s.publisherService.PublishNotice(ctx, notice); err != nil {
		s.logger.Warn("TaxonomyService", "Failed to publish subtopic notice", map[string]interface{}{"error": err.Error()})
	}
	evt := events.NewEvent(events.SUBTOPIC_CREATED, map[string]interface{}{
		"subject_id":  subjectId,
		"subtopic_id": name,
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("TaxonomyService", "Failed to publish event", map[string]interface{}{"error": err.Error()})
	}

	return subtopic, nil
}

// SeedSubjects inserts the named subjects that do not exist yet and reloads
// the cache. Returns how many were new.
func (s *taxonomyService) SeedSubjects(ctx context.Context, names []string) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, apperror.SaveFailure(err)
	}

	added := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		created, err := uow.SubjectRepository().Create(ctx, &entity.Subject{Id: name})
		if err != nil {
			_ = uow.Rollback()
			return 0, apperror.SaveFailure(err)
		}
		if created {
			added++
		}
	}
	if err := uow.Commit(); err != nil {
		return 0, apperror.SaveFailure(err)
	}

	if added > 0 {
		s.cache.InvalidateSubjects()
		if err := s.publisherService.PublishNotice(ctx, feed.Notice{Kind: feed.SubjectsChanged}); err != nil {
			s.logger.Warn("TaxonomyService", "Failed to publish subjects notice", map[string]interface{}{"error": err.Error()})
		}
		// other processes reload their subject cache on this event
		event := events.NewEvent(events.SUBJECTS_CHANGED, map[string]interface{}{"added": added})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("TaxonomyService", "Failed to publish subjects event", map[string]interface{}{"error": err.Error()})
		}
	}
	return added, nil
}
