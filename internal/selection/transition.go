package selection

import (
	"errors"
	"fmt"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/entity"
)

type EventKind int

const (
	EvSelectSubject EventKind = iota
	EvSelectSubtopic
	EvCreateNew
	EvEdit
	EvView
	EvEditFromViewer
	EvBack
	EvCancel
	EvSaved
	EvDocumentGone
	EvReset
)

var eventNames = map[EventKind]string{
	EvSelectSubject:  "select subject",
	EvSelectSubtopic: "select subtopic",
	EvCreateNew:      "create new",
	EvEdit:           "edit",
	EvView:           "view",
	EvEditFromViewer: "edit from viewer",
	EvBack:           "back",
	EvCancel:         "cancel",
	EvSaved:          "saved",
	EvDocumentGone:   "document gone",
	EvReset:          "reset",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is an input to Transition. Document is required by EvEdit, EvView
// and EvEditFromViewer.
type Event struct {
	Kind       EventKind
	SubjectId  string
	SubtopicId *string
	Document   *entity.Document
}

// ErrBrokenInvariant means a transition produced an inconsistent state. It
// indicates a bug; the previous state is kept.
var ErrBrokenInvariant = errors.New("selection invariant broken")

// Transition applies ev to s. On error s is returned unchanged. Loaded
// lists, errors and loading flags are left to the caller.
func Transition(s State, ev Event) (State, error) {
	next := s

	switch ev.Kind {
	case EvSelectSubject:
		next.ActiveSubjectId = ev.SubjectId
		next.ActiveSubtopicId = nil
		next.Subtopics = nil
		next.toBrowsing()

	case EvSelectSubtopic:
		// allowed in every mode; only a subject change closes the editor
		if ev.SubtopicId != nil && !s.hasSubtopic(*ev.SubtopicId) {
			return s, apperror.Validation("subtopic_id", fmt.Sprintf("%q is not a subtopic of %q", *ev.SubtopicId, s.ActiveSubjectId))
		}
		next.ActiveSubtopicId = cloneRef(ev.SubtopicId)

	case EvCreateNew:
		if err := s.require(ev.Kind, Browsing); err != nil {
			return s, err
		}
		next.Mode = Editing
		next.ActiveDocumentId = nil
		next.Buffer = &EditBuffer{
			SubjectId:  ref(s.ActiveSubjectId),
			SubtopicId: cloneRef(s.ActiveSubtopicId),
		}

	case EvEdit, EvView:
		if err := s.require(ev.Kind, Browsing); err != nil {
			return s, err
		}
		if ev.Document == nil {
			return s, apperror.Validation("document_id", "no document to open")
		}
		next.ActiveDocumentId = ref(ev.Document.Id)
		if ev.Kind == EvEdit {
			next.Mode = Editing
			next.Buffer = bufferFrom(ev.Document)
		} else {
			next.Mode = Viewing
			next.Document = dto.NewDocumentResponse(ev.Document)
		}

	case EvEditFromViewer:
		if err := s.require(ev.Kind, Viewing); err != nil {
			return s, err
		}
		if ev.Document == nil || ev.Document.Id != *s.ActiveDocumentId {
			return s, apperror.Validation("document_id", "document is not the one being viewed")
		}
		next.Mode = Editing
		next.Document = nil
		next.Views = nil
		next.Buffer = bufferFrom(ev.Document)

	case EvBack:
		if err := s.require(ev.Kind, Viewing); err != nil {
			return s, err
		}
		next.toBrowsing()

	case EvCancel, EvSaved:
		if err := s.require(ev.Kind, Editing); err != nil {
			return s, err
		}
		next.toBrowsing()

	case EvDocumentGone:
		// an open editor keeps its buffer so the author can save it as new
		if s.Mode == Viewing {
			next.toBrowsing()
		}

	case EvReset:
		next.toBrowsing()

	default:
		return s, fmt.Errorf("unknown event %v", ev.Kind)
	}

	if err := next.check(); err != nil {
		return s, err
	}
	return next, nil
}

func (s *State) toBrowsing() {
	s.Mode = Browsing
	s.ActiveDocumentId = nil
	s.Document = nil
	s.Buffer = nil
	s.Views = nil
}

func (s State) require(kind EventKind, mode Mode) error {
	if s.Mode != mode {
		return apperror.Validation("mode", fmt.Sprintf("cannot %s while %s", kind, s.Mode))
	}
	return nil
}

func (s State) check() error {
	switch s.Mode {
	case Browsing:
		if s.ActiveDocumentId != nil || s.Buffer != nil || s.Document != nil {
			return fmt.Errorf("%w: browsing with an open document", ErrBrokenInvariant)
		}
	case Editing:
		if s.Buffer == nil || s.Document != nil {
			return fmt.Errorf("%w: editing without a buffer", ErrBrokenInvariant)
		}
		if !sameRef(s.ActiveDocumentId, s.Buffer.DocumentId) {
			return fmt.Errorf("%w: buffer belongs to another document", ErrBrokenInvariant)
		}
	case Viewing:
		if s.ActiveDocumentId == nil || s.Document == nil || s.Buffer != nil {
			return fmt.Errorf("%w: viewing without a document", ErrBrokenInvariant)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrBrokenInvariant, s.Mode)
	}

	if s.ActiveSubtopicId != nil {
		if s.ActiveSubjectId == "" || !s.hasSubtopic(*s.ActiveSubtopicId) {
			return fmt.Errorf("%w: subtopic %q outside subject %q", ErrBrokenInvariant, *s.ActiveSubtopicId, s.ActiveSubjectId)
		}
	}
	return nil
}
