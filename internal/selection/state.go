// Package selection owns one author session: the cascading subject and
// subtopic selection, the browse/edit/view mode and the edit buffer.
package selection

import (
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/render"
)

type Mode string

const (
	Browsing Mode = "browsing"
	Editing  Mode = "editing"
	Viewing  Mode = "viewing"
)

// EditBuffer is the unsaved copy of a document. DocumentId is nil for a
// document that has never been saved.
type EditBuffer struct {
	DocumentId  *string `json:"document_id"`
	Title       string  `json:"title"`
	ContentHtml string  `json:"content_html"`
	SubjectId   *string `json:"subject_id"`
	SubtopicId  *string `json:"subtopic_id"`
}

func (b EditBuffer) Draft() entity.DocumentDraft {
	return entity.DocumentDraft{
		Title:       b.Title,
		ContentHtml: b.ContentHtml,
		SubjectId:   b.SubjectId,
		SubtopicId:  b.SubtopicId,
	}
}

func bufferFrom(d *entity.Document) *EditBuffer {
	id := d.Id
	return &EditBuffer{
		DocumentId:  &id,
		Title:       d.Title,
		ContentHtml: d.ContentHtml,
		SubjectId:   cloneRef(d.SubjectId),
		SubtopicId:  cloneRef(d.SubtopicId),
	}
}

// Failed operations, used by StateError.Op and RetryLoad.
const (
	OpSubjects    = "subjects"
	OpSubtopics   = "subtopics"
	OpDocuments   = "documents"
	OpDocument    = "document"
	OpSave        = "save"
	OpDelete      = "delete"
	OpAddSubtopic = "add_subtopic"
)

// StateError is the last failure shown to the author. None of them end the
// session.
type StateError struct {
	Op        string `json:"op"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable"`
}

// State is a read-only snapshot of a session. Slices are never modified
// after a snapshot is taken, only replaced.
type State struct {
	Mode             Mode    `json:"mode"`
	ActiveSubjectId  string  `json:"active_subject_id"`
	ActiveSubtopicId *string `json:"active_subtopic_id"`
	ActiveDocumentId *string `json:"active_document_id"`

	Subjects         []string              `json:"subjects"`
	DefaultSubjectId string                `json:"default_subject_id"`
	Subtopics        []string              `json:"subtopics"`
	Documents        []dto.DocumentSummary `json:"documents"`

	Document *dto.DocumentResponse `json:"document,omitempty"`
	Buffer   *EditBuffer           `json:"buffer,omitempty"`
	Views    []render.View         `json:"views,omitempty"`
	Error    *StateError           `json:"error,omitempty"`

	LoadingSubjects  bool `json:"loading_subjects"`
	LoadingSubtopics bool `json:"loading_subtopics"`
	LoadingDocuments bool `json:"loading_documents"`
	LoadingDocument  bool `json:"loading_document"`
	Saving           bool `json:"saving"`
}

// Filter is the document list filter for the current selection. Without a
// subtopic every document is listed.
func (s State) Filter() entity.DocumentFilter {
	if s.ActiveSubtopicId == nil || s.ActiveSubjectId == "" {
		return entity.DocumentFilter{}
	}
	subject := s.ActiveSubjectId
	subtopic := *s.ActiveSubtopicId
	return entity.DocumentFilter{SubjectId: &subject, SubtopicId: &subtopic}
}

func (s State) hasSubject(id string) bool {
	return contains(s.Subjects, id)
}

func (s State) hasSubtopic(id string) bool {
	return contains(s.Subtopics, id)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func cloneRef(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameFilter(a, b entity.DocumentFilter) bool {
	return sameRef(a.SubjectId, b.SubjectId) && sameRef(a.SubtopicId, b.SubtopicId)
}
