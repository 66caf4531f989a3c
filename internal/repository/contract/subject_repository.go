package contract

import (
	"context"

	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/repository/specification"
)

type SubjectRepository interface {
	// Create inserts the subject unless one with the same name exists.
	Create(ctx context.Context, subject *entity.Subject) (created bool, err error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subject, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subject, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type SubtopicRepository interface {
	// Create inserts the subtopic unless the subject already has one with
	// the same name.
	Create(ctx context.Context, subtopic *entity.Subtopic) (created bool, err error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subtopic, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
