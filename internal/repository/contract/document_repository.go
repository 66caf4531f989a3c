package contract

import (
	"context"

	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/repository/specification"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	// Update overwrites the stored fields; ErrNoRows when the document is gone.
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id string) (deleted bool, err error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountBySubject(ctx context.Context) (map[string]int64, error)
}

type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id string) (deleted bool, err error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Article, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Article, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
