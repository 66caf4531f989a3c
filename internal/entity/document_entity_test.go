package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentFilterMatches(t *testing.T) {
	civil, criminal := "Civil Law", "Criminal Law"
	land, succession := "Land Titles", "Succession"

	doc := &Document{SubjectId: &civil, SubtopicId: &land}
	loose := &Document{}

	tests := []struct {
		name   string
		filter DocumentFilter
		doc    *Document
		want   bool
	}{
		{"zero filter matches everything", DocumentFilter{}, doc, true},
		{"zero filter matches unclassified", DocumentFilter{}, loose, true},
		{"subject and subtopic", DocumentFilter{SubjectId: &civil, SubtopicId: &land}, doc, true},
		{"other subtopic", DocumentFilter{SubjectId: &civil, SubtopicId: &succession}, doc, false},
		{"other subject", DocumentFilter{SubjectId: &criminal}, doc, false},
		{"unclassified against subject", DocumentFilter{SubjectId: &civil}, loose, false},
		{"nil document", DocumentFilter{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.doc))
		})
	}

	assert.True(t, DocumentFilter{}.IsZero())
	assert.False(t, DocumentFilter{SubjectId: &civil}.IsZero())
}
