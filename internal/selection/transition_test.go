package selection

import (
	"errors"
	"testing"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func browsing() State {
	return State{
		Mode:             Browsing,
		ActiveSubjectId:  "Civil Law",
		ActiveSubtopicId: str("Land Titles"),
		Subjects:         []string{"Civil Law", "Tax Law"},
		Subtopics:        []string{"Land Titles", "Leases"},
	}
}

func TestTransitionModes(t *testing.T) {
	doc := &entity.Document{Id: "d1", Title: "T", ContentHtml: "<p>x</p>", SubjectId: str("Civil Law")}

	tests := []struct {
		name     string
		from     func() State
		event    Event
		wantMode Mode
		wantErr  error
	}{
		{name: "create new", from: browsing, event: Event{Kind: EvCreateNew}, wantMode: Editing},
		{name: "edit", from: browsing, event: Event{Kind: EvEdit, Document: doc}, wantMode: Editing},
		{name: "view", from: browsing, event: Event{Kind: EvView, Document: doc}, wantMode: Viewing},
		{name: "back from browsing", from: browsing, event: Event{Kind: EvBack}, wantErr: apperror.ErrValidation},
		{name: "cancel from browsing", from: browsing, event: Event{Kind: EvCancel}, wantErr: apperror.ErrValidation},
		{name: "edit without document", from: browsing, event: Event{Kind: EvEdit}, wantErr: apperror.ErrValidation},
		{name: "edit from viewer outside viewer", from: browsing, event: Event{Kind: EvEditFromViewer, Document: doc}, wantErr: apperror.ErrValidation},
		{name: "unknown subtopic", from: browsing, event: Event{Kind: EvSelectSubtopic, SubtopicId: str("Rates")}, wantErr: apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := tt.from()
			got, err := Transition(from, tt.event)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, got.Mode)
		})
	}
}

func TestCreateNewBufferTakesSelection(t *testing.T) {
	s, err := Transition(browsing(), Event{Kind: EvCreateNew})
	require.NoError(t, err)
	require.NotNil(t, s.Buffer)
	assert.Nil(t, s.Buffer.DocumentId)
	assert.Nil(t, s.ActiveDocumentId)
	assert.Equal(t, "Civil Law", *s.Buffer.SubjectId)
	assert.Equal(t, "Land Titles", *s.Buffer.SubtopicId)
}

func TestSelectSubjectResetsEverything(t *testing.T) {
	doc := &entity.Document{Id: "d1", Title: "T"}
	for _, kind := range []EventKind{EvEdit, EvView} {
		t.Run(kind.String(), func(t *testing.T) {
			open, err := Transition(browsing(), Event{Kind: kind, Document: doc})
			require.NoError(t, err)

			s, err := Transition(open, Event{Kind: EvSelectSubject, SubjectId: "Tax Law"})
			require.NoError(t, err)
			assert.Equal(t, Browsing, s.Mode)
			assert.Equal(t, "Tax Law", s.ActiveSubjectId)
			assert.Nil(t, s.ActiveSubtopicId)
			assert.Nil(t, s.ActiveDocumentId)
			assert.Nil(t, s.Buffer)
			assert.Nil(t, s.Document)
			assert.Empty(t, s.Subtopics)
		})
	}
}

func TestViewerRoundTrip(t *testing.T) {
	doc := &entity.Document{Id: "d1", Title: "T", ContentHtml: "<p>x</p>"}

	viewing, err := Transition(browsing(), Event{Kind: EvView, Document: doc})
	require.NoError(t, err)
	assert.Equal(t, "d1", *viewing.ActiveDocumentId)
	require.NotNil(t, viewing.Document)

	editing, err := Transition(viewing, Event{Kind: EvEditFromViewer, Document: doc})
	require.NoError(t, err)
	assert.Equal(t, Editing, editing.Mode)
	assert.Equal(t, "d1", *editing.Buffer.DocumentId)
	assert.Nil(t, editing.Document)

	_, err = Transition(viewing, Event{Kind: EvEditFromViewer, Document: &entity.Document{Id: "other"}})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	back, err := Transition(viewing, Event{Kind: EvBack})
	require.NoError(t, err)
	assert.Equal(t, Browsing, back.Mode)
	assert.Nil(t, back.ActiveDocumentId)
}

func TestDocumentGone(t *testing.T) {
	doc := &entity.Document{Id: "d1", Title: "T"}

	viewing, _ := Transition(browsing(), Event{Kind: EvView, Document: doc})
	s, err := Transition(viewing, Event{Kind: EvDocumentGone})
	require.NoError(t, err)
	assert.Equal(t, Browsing, s.Mode)

	editing, _ := Transition(browsing(), Event{Kind: EvEdit, Document: doc})
	s, err = Transition(editing, Event{Kind: EvDocumentGone})
	require.NoError(t, err)
	assert.Equal(t, Editing, s.Mode)
	assert.Equal(t, "T", s.Buffer.Title)
}

func TestBrokenInvariantKeepsState(t *testing.T) {
	s := browsing()
	s.Subtopics = nil // active subtopic no longer listed

	got, err := Transition(s, Event{Kind: EvCreateNew})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBrokenInvariant))
	assert.Equal(t, s, got)
}

func TestFilter(t *testing.T) {
	assert.True(t, State{ActiveSubjectId: "Civil Law"}.Filter().IsZero())

	f := browsing().Filter()
	assert.Equal(t, "Civil Law", *f.SubjectId)
	assert.Equal(t, "Land Titles", *f.SubtopicId)
}
