package selection

import (
	"context"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/service"
)

// Target is an external navigation request. Empty fields keep the current
// selection.
type Target struct {
	SubjectId  string  `json:"subject_id"`
	SubtopicId *string `json:"subtopic_id"`
	DocumentId *string `json:"document_id"`
}

// State returns the current state.
func (c *Controller) State(ctx context.Context) (State, error) {
	var s State
	err := c.do(ctx, func() error {
		s = c.state
		return nil
	})
	return s, err
}

// SelectSubject switches subject. The subtopic selection is cleared at once
// and any open editor or viewer is abandoned. Selecting the active subject
// again does nothing.
func (c *Controller) SelectSubject(ctx context.Context, subjectId string) error {
	return c.do(ctx, func() error {
		if subjectId == c.state.ActiveSubjectId {
			return nil
		}
		return c.selectSubject(subjectId)
	})
}

// SelectSubtopic narrows the list to one subtopic of the active subject; nil
// lists every document again.
func (c *Controller) SelectSubtopic(ctx context.Context, subtopicId *string) error {
	return c.do(ctx, func() error {
		c.pendingSubtopic, c.hasPending = nil, false
		return c.selectSubtopic(subtopicId)
	})
}

func (c *Controller) CreateNew(ctx context.Context) error {
	return c.do(ctx, func() error {
		if err := c.apply(Event{Kind: EvCreateNew}); err != nil {
			return err
		}
		c.abandon()
		c.clearError(OpDocument, OpSave)
		c.renderViews()
		c.syncSubscription()
		return nil
	})
}

// EditExisting loads a document into the edit buffer. The mode changes when
// the read completes.
func (c *Controller) EditExisting(ctx context.Context, documentId string) error {
	return c.do(ctx, func() error {
		return c.open(EvEdit, documentId)
	})
}

func (c *Controller) View(ctx context.Context, documentId string) error {
	return c.do(ctx, func() error {
		return c.open(EvView, documentId)
	})
}

// EditFromViewer re-reads the viewed document, so a document deleted
// meanwhile is reported as not found.
func (c *Controller) EditFromViewer(ctx context.Context) error {
	return c.do(ctx, func() error {
		if err := c.state.require(EvEditFromViewer, Viewing); err != nil {
			return err
		}
		return c.open(EvEditFromViewer, *c.state.ActiveDocumentId)
	})
}

func (c *Controller) Back(ctx context.Context) error {
	return c.leave(ctx, EvBack)
}

// Cancel discards the edit buffer.
func (c *Controller) Cancel(ctx context.Context) error {
	return c.leave(ctx, EvCancel)
}

func (c *Controller) leave(ctx context.Context, kind EventKind) error {
	return c.do(ctx, func() error {
		if err := c.apply(Event{Kind: kind}); err != nil {
			return err
		}
		c.abandon()
		c.clearError(OpDocument, OpSave)
		c.syncSubscription()
		return nil
	})
}

// UpdateBuffer replaces the buffer contents and re-renders the previews.
func (c *Controller) UpdateBuffer(ctx context.Context, draft entity.DocumentDraft) error {
	return c.do(ctx, func() error {
		if err := c.state.require(EvSaved, Editing); err != nil {
			return err
		}
		c.state.Buffer = &EditBuffer{
			DocumentId:  cloneRef(c.state.Buffer.DocumentId),
			Title:       draft.Title,
			ContentHtml: draft.ContentHtml,
			SubjectId:   cloneRef(draft.SubjectId),
			SubtopicId:  cloneRef(draft.SubtopicId),
		}
		if c.state.Error != nil && c.state.Error.Op == OpSave && c.state.Error.Code == "VALIDATION_ERROR" {
			c.state.Error = nil
		}
		c.renderViews()
		return nil
	})
}

// Save writes the buffer. Validation failures are returned without any
// store call; the buffer is kept until the write succeeds.
func (c *Controller) Save(ctx context.Context) error {
	return c.do(ctx, func() error {
		return c.save(false)
	})
}

// SaveAsNew writes the buffer as a new document, e.g. after the original
// was deleted by someone else.
func (c *Controller) SaveAsNew(ctx context.Context) error {
	return c.do(ctx, func() error {
		return c.save(true)
	})
}

// Delete removes documentId, or the open document when documentId is
// empty. Nothing is sent unless confirm is true.
func (c *Controller) Delete(ctx context.Context, documentId string, confirm bool) error {
	return c.do(ctx, func() error {
		if !confirm {
			return apperror.Validation("confirm", "delete must be confirmed")
		}
		if documentId == "" {
			if c.state.ActiveDocumentId == nil {
				return apperror.Validation("document_id", "no document selected")
			}
			documentId = *c.state.ActiveDocumentId
		}

		id := documentId
		c.fetch(OpDelete, 0, func(ctx context.Context) (interface{}, error) {
			return id, c.documents.Remove(ctx, id)
		})
		return nil
	})
}

// AddSubtopic creates a subtopic under the active subject and selects it
// once the refreshed list contains it.
func (c *Controller) AddSubtopic(ctx context.Context, name string) error {
	return c.do(ctx, func() error {
		name, err := service.PrepareSubtopicName(name)
		if err != nil {
			c.fail(OpAddSubtopic, err)
			return err
		}
		subjectId := c.state.ActiveSubjectId
		if subjectId == "" {
			return apperror.Validation("subject_id", "select a subject first")
		}

		c.fetch(OpAddSubtopic, 0, func(ctx context.Context) (interface{}, error) {
			return c.taxonomy.AddSubtopic(ctx, subjectId, name)
		})
		return nil
	})
}

// Navigate applies an external selection. Any open editor or viewer is
// left first.
func (c *Controller) Navigate(ctx context.Context, t Target) error {
	return c.do(ctx, func() error {
		if t.SubjectId != "" && t.SubjectId != c.state.ActiveSubjectId {
			if err := c.selectSubject(t.SubjectId); err != nil {
				return err
			}
		} else if c.state.Mode != Browsing {
			c.abandon()
			if err := c.apply(Event{Kind: EvReset}); err != nil {
				return err
			}
			c.syncSubscription()
		}

		c.pendingSubtopic, c.hasPending = cloneRef(t.SubtopicId), true
		if !c.state.LoadingSubtopics {
			c.applyPendingSubtopic()
		}

		if t.DocumentId != nil {
			return c.open(EvView, *t.DocumentId)
		}
		return nil
	})
}

// RetryLoad repeats the failed operation named by the current error.
func (c *Controller) RetryLoad(ctx context.Context) error {
	return c.do(ctx, func() error {
		if c.state.Error == nil || !c.state.Error.Retryable {
			return apperror.Validation("op", "nothing to retry")
		}

		op := c.state.Error.Op
		switch op {
		case OpSubjects:
			c.loadSubjects()
		case OpSubtopics:
			c.loadSubtopics()
		case OpDocuments:
			if c.sub == nil {
				c.syncSubscription()
			} else {
				c.sub.Refresh()
				c.state.LoadingDocuments = true
			}
		case OpDocument:
			if c.lastOpen == nil {
				return apperror.Validation("op", "nothing to retry")
			}
			return c.open(c.lastOpen.kind, c.lastOpen.id)
		case OpSave:
			return c.save(false)
		default:
			return apperror.Validation("op", "operation cannot be retried")
		}
		c.clearError(op)
		return nil
	})
}
