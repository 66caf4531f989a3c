package dto

import (
	"strings"
	"testing"

	"codal-docs-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"", "UD"},
		{"   ", "UD"},
		{"Untitled Document", "UD"},
		{"land registration act", "LR"},
		{"Torts", "T"},
		{"  échange  de biens ", "ÉD"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.title))
		})
	}
}

func TestNewDocumentSummary(t *testing.T) {
	long := "<p>" + strings.Repeat("a", 150) + "</p>"
	s := NewDocumentSummary(&entity.Document{Id: "1", Title: "Long", ContentHtml: long})
	assert.Equal(t, strings.Repeat("a", 100)+"...", s.Excerpt)
	assert.Equal(t, "L", s.Initials)

	empty := NewDocumentSummary(&entity.Document{Id: "2", ContentHtml: "<p><br></p>"})
	assert.Equal(t, "No content available", empty.Excerpt)
	assert.Equal(t, "UD", empty.Initials)
}

func TestDocumentListQueryFilter(t *testing.T) {
	assert.True(t, DocumentListQuery{}.Filter().IsZero())

	f := DocumentListQuery{SubjectId: "Civil Law", SubtopicId: "Land Titles"}.Filter()
	assert.Equal(t, "Civil Law", *f.SubjectId)
	assert.Equal(t, "Land Titles", *f.SubtopicId)
}
