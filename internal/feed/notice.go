// Package feed delivers live, ordered document lists to subscribers and
// re-delivers them whenever a change notice touches their filter.
package feed

import (
	"encoding/json"

	"codal-docs-be/internal/entity"
)

type NoticeKind string

const (
	DocumentChanged NoticeKind = "document"
	SubtopicAdded   NoticeKind = "subtopic"
	SubjectsChanged NoticeKind = "subjects"
)

// Notice announces a committed change. A document notice lists every
// location the document occupied before and after the write, so a move
// between subtopics refreshes both lists.
type Notice struct {
	Kind       NoticeKind        `json:"kind"`
	DocumentId string            `json:"document_id,omitempty"`
	Locations  []entity.Location `json:"locations,omitempty"`
	SubjectId  string            `json:"subject_id,omitempty"`
	SubtopicId string            `json:"subtopic_id,omitempty"`
	Origin     string            `json:"origin,omitempty"`
}

// Touches reports whether the notice can change the result of filter.
func (n Notice) Touches(filter entity.DocumentFilter) bool {
	if n.Kind != DocumentChanged {
		return false
	}
	if filter.IsZero() || len(n.Locations) == 0 {
		return true
	}
	for _, loc := range n.Locations {
		if filter.Covers(loc) {
			return true
		}
	}
	return false
}

func (n Notice) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func UnmarshalNotice(data []byte) (Notice, error) {
	var n Notice
	err := json.Unmarshal(data, &n)
	return n, err
}
