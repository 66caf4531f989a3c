package service

import (
	"context"
	"sort"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/repository/unitofwork"
)

type IDashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory) IDashboardService {
	return &dashboardService{uowFactory: uowFactory}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalDocs, err := uow.DocumentRepository().Count(ctx)
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	totalSubjects, err := uow.SubjectRepository().Count(ctx)
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	totalSubtopics, err := uow.SubtopicRepository().Count(ctx)
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	totalArticles, err := uow.ArticleRepository().Count(ctx)
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}
	perSubject, err := uow.DocumentRepository().CountBySubject(ctx)
	if err != nil {
		return nil, apperror.LoadFailure(err)
	}

	res := &dto.DashboardStatsResponse{
		TotalDocuments: totalDocs,
		TotalSubjects:  totalSubjects,
		TotalSubtopics: totalSubtopics,
		TotalArticles:  totalArticles,
		BySubject:      make([]dto.SubjectCount, 0, len(perSubject)),
	}
	for subjectId, count := range perSubject {
		res.BySubject = append(res.BySubject, dto.SubjectCount{SubjectId: subjectId, Documents: count})
	}
	sort.Slice(res.BySubject, func(i, j int) bool {
		if res.BySubject[i].Documents != res.BySubject[j].Documents {
			return res.BySubject[i].Documents > res.BySubject[j].Documents
		}
		return res.BySubject[i].SubjectId < res.BySubject[j].SubjectId
	})
	return res, nil
}
