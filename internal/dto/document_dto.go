package dto

import (
	"strings"
	"time"
	"unicode"

	"codal-docs-be/internal/entity"
	"codal-docs-be/pkg/sanitize"
)

const (
	excerptLength  = 100
	untitledTitle  = "Untitled Document"
	noContentLabel = "No content available"
)

type DocumentRequest struct {
	Title       string  `json:"title" validate:"max=255"`
	ContentHtml string  `json:"content_html"`
	SubjectId   *string `json:"subject_id" validate:"omitempty,max=255"`
	SubtopicId  *string `json:"subtopic_id" validate:"omitempty,max=255"`
}

func (r *DocumentRequest) Draft() entity.DocumentDraft {
	return entity.DocumentDraft{
		Title:       r.Title,
		ContentHtml: r.ContentHtml,
		SubjectId:   r.SubjectId,
		SubtopicId:  r.SubtopicId,
	}
}

type DocumentResponse struct {
	Id           string     `json:"id"`
	Title        string     `json:"title"`
	ContentHtml  string     `json:"content_html"`
	SubjectId    *string    `json:"subject_id"`
	SubtopicId   *string    `json:"subtopic_id"`
	CreatedAt    time.Time  `json:"created_at"`
	LastModified *time.Time `json:"last_modified"`
}

func NewDocumentResponse(d *entity.Document) *DocumentResponse {
	return &DocumentResponse{
		Id:           d.Id,
		Title:        d.Title,
		ContentHtml:  d.ContentHtml,
		SubjectId:    d.SubjectId,
		SubtopicId:   d.SubtopicId,
		CreatedAt:    d.CreatedAt,
		LastModified: d.LastModified,
	}
}

// DocumentSummary is one row of a document list.
type DocumentSummary struct {
	Id           string     `json:"id"`
	Title        string     `json:"title"`
	Initials     string     `json:"initials"`
	Excerpt      string     `json:"excerpt"`
	SubjectId    *string    `json:"subject_id"`
	SubtopicId   *string    `json:"subtopic_id"`
	LastModified *time.Time `json:"last_modified"`
}

func NewDocumentSummary(d *entity.Document) DocumentSummary {
	excerpt := sanitize.Excerpt(d.ContentHtml, excerptLength)
	if excerpt == "" {
		excerpt = noContentLabel
	}
	return DocumentSummary{
		Id:           d.Id,
		Title:        d.Title,
		Initials:     Initials(d.Title),
		Excerpt:      excerpt,
		SubjectId:    d.SubjectId,
		SubtopicId:   d.SubtopicId,
		LastModified: d.LastModified,
	}
}

func NewDocumentSummaries(docs []*entity.Document) []DocumentSummary {
	out := make([]DocumentSummary, len(docs))
	for i, d := range docs {
		out[i] = NewDocumentSummary(d)
	}
	return out
}

// Initials is the two letter avatar for a title: the first letter of the
// first two words, upper-cased.
func Initials(title string) string {
	title = strings.TrimSpace(title)
	if title == "" || title == untitledTitle {
		return "UD"
	}

	var out []rune
	for _, word := range strings.Fields(title) {
		r := []rune(word)[0]
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

type DocumentListQuery struct {
	SubjectId  string `query:"subject_id"`
	SubtopicId string `query:"subtopic_id"`
}

func (q DocumentListQuery) Filter() entity.DocumentFilter {
	var f entity.DocumentFilter
	if q.SubjectId != "" {
		v := q.SubjectId
		f.SubjectId = &v
	}
	if q.SubtopicId != "" {
		v := q.SubtopicId
		f.SubtopicId = &v
	}
	return f
}
