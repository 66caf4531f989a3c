package implementation

import (
	"context"
	"errors"
	"time"

	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/mapper"
	"codal-docs-be/internal/model"
	"codal-docs-be/internal/repository/contract"
	"codal-docs-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
	now    func() time.Time
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
		now:    time.Now,
	}
}

// Create assigns the id and the modification timestamp.
func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *entity.Document) error {
	m := r.mapper.ToModel(doc)
	if m.Id == "" {
		m.Id = uuid.NewString()
	}
	now := r.now().UTC()
	m.LastModified = &now

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

// Update is last-write-wins: no version is compared.
func (r *DocumentRepositoryImpl) Update(ctx context.Context, doc *entity.Document) error {
	now := r.now().UTC()
	res := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", doc.Id).
		Updates(map[string]interface{}{
			"title":         doc.Title,
			"content_html":  doc.ContentHtml,
			"subject_id":    doc.SubjectId,
			"subtopic_id":   doc.SubtopicId,
			"last_modified": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrNoRows
	}

	var m model.Document
	if err := r.db.WithContext(ctx).Where("id = ?", doc.Id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract.ErrNoRows
		}
		return err
	}
	*doc = *r.mapper.ToEntity(&m)
	return nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Document{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	var m model.Document
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var models []*model.Document
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Document{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type subjectCount struct {
	SubjectId *string
	Total     int64
}

// CountBySubject groups live documents by subject. Unclassified documents are
// counted under the empty key.
func (r *DocumentRepositoryImpl) CountBySubject(ctx context.Context) (map[string]int64, error) {
	var rows []subjectCount
	err := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Select("subject_id, COUNT(*) AS total").
		Group("subject_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := ""
		if row.SubjectId != nil {
			key = *row.SubjectId
		}
		out[key] += row.Total
	}
	return out, nil
}
