package unitofwork

import (
	"context"

	"codal-docs-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SubjectRepository() contract.SubjectRepository
	SubtopicRepository() contract.SubtopicRepository
	DocumentRepository() contract.DocumentRepository
	ArticleRepository() contract.ArticleRepository
}
