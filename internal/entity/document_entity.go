package entity

import "time"

// MaxNameLength bounds titles, authors and subject/subtopic names, in
// characters. The columns holding them are varchar(255).
const MaxNameLength = 255

type Document struct {
	Id           string
	Title        string
	ContentHtml  string
	SubjectId    *string
	SubtopicId   *string
	CreatedAt    time.Time
	LastModified *time.Time // nil until the store resolves the write timestamp
}

// DocumentFilter narrows a live document list. The zero value matches every
// document.
type DocumentFilter struct {
	SubjectId  *string
	SubtopicId *string
}

func (f DocumentFilter) IsZero() bool {
	return f.SubjectId == nil && f.SubtopicId == nil
}

// Matches reports whether d belongs to the filtered set.
func (f DocumentFilter) Matches(d *Document) bool {
	if d == nil {
		return false
	}
	return f.Covers(d.Location())
}

// Covers reports whether a document classified at loc belongs to the set.
func (f DocumentFilter) Covers(loc Location) bool {
	if f.SubjectId != nil && (loc.SubjectId == nil || *loc.SubjectId != *f.SubjectId) {
		return false
	}
	if f.SubtopicId != nil && (loc.SubtopicId == nil || *loc.SubtopicId != *f.SubtopicId) {
		return false
	}
	return true
}

// Location is where a document sits in the taxonomy.
type Location struct {
	SubjectId  *string `json:"subject_id,omitempty"`
	SubtopicId *string `json:"subtopic_id,omitempty"`
}

func (d *Document) Location() Location {
	return Location{SubjectId: d.SubjectId, SubtopicId: d.SubtopicId}
}

// DocumentDraft carries the author supplied fields of a create or update.
type DocumentDraft struct {
	Title       string
	ContentHtml string
	SubjectId   *string
	SubtopicId  *string
}
