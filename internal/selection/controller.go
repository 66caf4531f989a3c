package selection

import (
	"context"
	"errors"
	"time"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/render"
	"codal-docs-be/internal/service"
	"codal-docs-be/pkg/richtext"

	"github.com/google/uuid"
)

// Taxonomy is the part of the taxonomy service a session reads.
type Taxonomy interface {
	ListSubjects(ctx context.Context) ([]*entity.Subject, error)
	DefaultSubject(subjects []*entity.Subject) string
	ListSubtopics(ctx context.Context, subjectId string) ([]*entity.Subtopic, error)
	AddSubtopic(ctx context.Context, subjectId, name string) (*entity.Subtopic, error)
}

// Documents is the part of the document service a session writes through.
type Documents interface {
	Get(ctx context.Context, id string) (*entity.Document, error)
	Create(ctx context.Context, draft entity.DocumentDraft) (*entity.Document, error)
	Update(ctx context.Context, id string, draft entity.DocumentDraft) (*entity.Document, error)
	Remove(ctx context.Context, id string) error
}

type Options struct {
	FetchTimeout time.Duration
	EditSurfaces []richtext.Surface
	ViewSurfaces []richtext.Surface
}

func (o Options) withDefaults() Options {
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 10 * time.Second
	}
	if len(o.EditSurfaces) == 0 {
		o.EditSurfaces = []richtext.Surface{richtext.SurfaceEditor, richtext.SurfaceMobile}
	}
	if len(o.ViewSurfaces) == 0 {
		o.ViewSurfaces = []richtext.Surface{richtext.SurfaceViewer}
	}
	return o
}

var ErrClosed = errors.New("selection controller closed")

type command struct {
	fn    func() error
	reply chan error
}

type result struct {
	op    string
	gen   uint64
	value interface{}
	err   error
}

type openRequest struct {
	kind EventKind
	id   string
}

// Controller runs one session. All state is owned by the loop goroutine;
// commands, fetch results, list snapshots and taxonomy notices are all
// handled there, one at a time.
type Controller struct {
	id        string
	taxonomy  Taxonomy
	documents Documents
	feed      *feed.Feed
	pipeline  *render.Pipeline
	logger    logger.ILogger
	opts      Options

	commands chan command
	results  chan result
	updates  chan State
	done     chan struct{}
	cancel   context.CancelFunc

	// loop-owned
	ctx   context.Context
	state State
	scope *feed.Scope
	sub   *feed.Subscription
	watch *feed.TaxonomyWatch

	listFilter   entity.DocumentFilter
	subtopicsGen uint64
	documentGen  uint64
	saveGen      uint64

	pendingSubtopic *string
	hasPending      bool
	lastOpen        *openRequest
}

func New(taxonomy Taxonomy, documents Documents, f *feed.Feed, pipeline *render.Pipeline, log logger.ILogger, opts Options) *Controller {
	return &Controller{
		id:        uuid.NewString(),
		taxonomy:  taxonomy,
		documents: documents,
		feed:      f,
		pipeline:  pipeline,
		logger:    log,
		opts:      opts.withDefaults(),
		commands:  make(chan command),
		results:   make(chan result, 8),
		updates:   make(chan State, 1),
		done:      make(chan struct{}),
		state:     State{Mode: Browsing},
	}
}

func (c *Controller) Id() string {
	return c.id
}

// Start loads the subjects, opens the unfiltered document list and runs the
// loop until ctx is cancelled or Close is called.
func (c *Controller) Start(ctx context.Context) {
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.scope = c.feed.NewScope()
	c.watch = c.feed.WatchTaxonomy()

	c.loadSubjects()
	c.syncSubscription()
	c.publish()

	go c.loop()
}

// Close stops the loop and waits for it to release its subscription.
func (c *Controller) Close() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
}

func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Updates delivers the latest state after every change. A slow reader only
// misses intermediate states.
func (c *Controller) Updates() <-chan State {
	return c.updates
}

func (c *Controller) loop() {
	defer close(c.done)
	defer c.watch.Close()
	defer c.scope.Close()

	for {
		var snapshots <-chan feed.Snapshot
		if c.sub != nil {
			snapshots = c.sub.C()
		}

		select {
		case <-c.ctx.Done():
			c.logger.Debug("Selection", "Session loop stopped", map[string]interface{}{"session_id": c.id})
			return

		case cmd := <-c.commands:
			cmd.reply <- cmd.fn()

		case r := <-c.results:
			if !c.handleResult(r) {
				continue
			}

		case snap := <-snapshots:
			if !c.handleSnapshot(snap) {
				continue
			}

		case n := <-c.watch.C():
			if !c.handleNotice(n) {
				continue
			}
		}

		c.publish()
	}
}

// do runs fn on the loop and returns its error.
func (c *Controller) do(ctx context.Context, fn func() error) error {
	cmd := command{fn: fn, reply: make(chan error, 1)}
	select {
	case c.commands <- cmd:
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) publish() {
	select {
	case <-c.updates:
	default:
	}
	c.updates <- c.state
}

// fetch runs fn off the loop and posts its outcome tagged with gen.
func (c *Controller) fetch(op string, gen uint64, fn func(ctx context.Context) (interface{}, error)) {
	loopCtx := c.ctx
	timeout := c.opts.FetchTimeout
	go func() {
		ctx, cancel := context.WithTimeout(loopCtx, timeout)
		defer cancel()

		v, err := fn(ctx)
		select {
		case c.results <- result{op: op, gen: gen, value: v, err: err}:
		case <-c.done:
		}
	}()
}

func (c *Controller) apply(ev Event) error {
	next, err := Transition(c.state, ev)
	if err != nil {
		if errors.Is(err, ErrBrokenInvariant) {
			c.logger.Error("Selection", "Rejected transition", map[string]interface{}{
				"session_id": c.id,
				"event":      ev.Kind.String(),
				"error":      err.Error(),
			})
		}
		return err
	}
	c.state = next
	return nil
}

// abandon drops in-flight document reads and saves; their results no
// longer belong to the current state.
func (c *Controller) abandon() {
	c.documentGen++
	c.saveGen++
	c.state.LoadingDocument = false
	c.state.Saving = false
}

func (c *Controller) fail(op string, err error) {
	se := &StateError{Op: op, Code: "INTERNAL_ERROR", Message: err.Error(), Retryable: true}
	if de, ok := apperror.As(err); ok {
		se.Code = de.Code
		se.Message = de.Message
		se.Field = de.Field
		se.Retryable = de.Retryable()
	}
	c.state.Error = se

	c.logger.Warn("Selection", "Operation failed", map[string]interface{}{
		"session_id": c.id,
		"op":         op,
		"error":      err.Error(),
	})
}

func (c *Controller) clearError(ops ...string) {
	if c.state.Error == nil {
		return
	}
	if len(ops) == 0 || contains(ops, c.state.Error.Op) {
		c.state.Error = nil
	}
}

// syncSubscription keeps exactly one live list open while browsing and
// none otherwise.
func (c *Controller) syncSubscription() {
	if c.state.Mode != Browsing {
		if c.sub != nil {
			c.scope.Release()
			c.sub = nil
		}
		return
	}

	want := c.state.Filter()
	if c.sub != nil && sameFilter(c.sub.Filter(), want) {
		return
	}

	sub, err := c.scope.Subscribe(c.ctx, want)
	if err != nil {
		c.sub = nil
		return
	}
	c.sub = sub
	if !sameFilter(c.listFilter, want) {
		c.state.Documents = nil
	}
	c.listFilter = want
	c.state.LoadingDocuments = true
}

func (c *Controller) renderViews() {
	var title, markup string
	var surfaces []richtext.Surface

	switch c.state.Mode {
	case Editing:
		title, markup, surfaces = c.state.Buffer.Title, c.state.Buffer.ContentHtml, c.opts.EditSurfaces
	case Viewing:
		title, markup, surfaces = c.state.Document.Title, c.state.Document.ContentHtml, c.opts.ViewSurfaces
	default:
		c.state.Views = nil
		return
	}

	views, err := c.pipeline.Render(title, markup, surfaces...)
	if err != nil {
		c.logger.Error("Selection", "Render failed", map[string]interface{}{"error": err.Error()})
		c.state.Views = nil
		return
	}
	c.state.Views = views
}

func (c *Controller) loadSubjects() {
	c.state.LoadingSubjects = true
	c.fetch(OpSubjects, 0, func(ctx context.Context) (interface{}, error) {
		return c.taxonomy.ListSubjects(ctx)
	})
}

func (c *Controller) loadSubtopics() {
	c.subtopicsGen++
	subjectId := c.state.ActiveSubjectId
	if subjectId == "" {
		c.state.Subtopics = nil
		c.state.LoadingSubtopics = false
		return
	}

	c.state.LoadingSubtopics = true
	c.fetch(OpSubtopics, c.subtopicsGen, func(ctx context.Context) (interface{}, error) {
		return c.taxonomy.ListSubtopics(ctx, subjectId)
	})
}

func (c *Controller) selectSubject(id string) error {
	if !c.state.hasSubject(id) {
		return apperror.Validation("subject_id", "unknown subject")
	}
	if err := c.apply(Event{Kind: EvSelectSubject, SubjectId: id}); err != nil {
		return err
	}
	c.abandon()
	c.pendingSubtopic, c.hasPending = nil, false
	c.clearError(OpSubtopics, OpDocument, OpSave, OpAddSubtopic)
	c.loadSubtopics()
	c.syncSubscription()
	return nil
}

func (c *Controller) selectSubtopic(id *string) error {
	if err := c.apply(Event{Kind: EvSelectSubtopic, SubtopicId: id}); err != nil {
		return err
	}
	c.syncSubscription()
	return nil
}

// open reads a document before entering Editing or Viewing.
func (c *Controller) open(kind EventKind, id string) error {
	want := Browsing
	if kind == EvEditFromViewer {
		want = Viewing
	}
	if err := c.state.require(kind, want); err != nil {
		return err
	}
	if id == "" {
		return apperror.Validation("document_id", "document id is required")
	}

	c.documentGen++
	c.lastOpen = &openRequest{kind: kind, id: id}
	c.state.LoadingDocument = true
	c.clearError(OpDocument)

	c.fetch(OpDocument, c.documentGen, func(ctx context.Context) (interface{}, error) {
		return c.documents.Get(ctx, id)
	})
	return nil
}

func (c *Controller) save(asNew bool) error {
	if err := c.state.require(EvSaved, Editing); err != nil {
		return err
	}
	if c.state.Saving {
		return apperror.Validation("buffer", "a save is already in progress")
	}

	buf := *c.state.Buffer
	draft, err := service.PrepareDocument(buf.Draft())
	if err != nil {
		c.fail(OpSave, err)
		return err
	}

	c.saveGen++
	c.state.Saving = true
	c.clearError(OpSave)

	c.fetch(OpSave, c.saveGen, func(ctx context.Context) (interface{}, error) {
		if asNew || buf.DocumentId == nil {
			return c.documents.Create(ctx, draft)
		}
		return c.documents.Update(ctx, *buf.DocumentId, draft)
	})
	return nil
}

func (c *Controller) applyPendingSubtopic() {
	if !c.hasPending {
		return
	}
	pending := c.pendingSubtopic
	c.pendingSubtopic, c.hasPending = nil, false

	if pending != nil && !c.state.hasSubtopic(*pending) {
		c.logger.Debug("Selection", "Pending subtopic not found", map[string]interface{}{"subtopic_id": *pending})
		return
	}
	_ = c.selectSubtopic(pending)
}

func (c *Controller) handleResult(r result) bool {
	switch r.op {
	case OpSubjects:
		return c.onSubjects(r)
	case OpSubtopics:
		return c.onSubtopics(r)
	case OpDocument:
		return c.onDocument(r)
	case OpSave:
		return c.onSaved(r)
	case OpDelete:
		return c.onDeleted(r)
	case OpAddSubtopic:
		return c.onSubtopicAdded(r)
	}
	return false
}

func (c *Controller) onSubjects(r result) bool {
	c.state.LoadingSubjects = false
	if r.err != nil {
		c.fail(OpSubjects, r.err)
		return true
	}

	subjects := r.value.([]*entity.Subject)
	ids := make([]string, len(subjects))
	for i, s := range subjects {
		ids[i] = s.Id
	}
	c.state.Subjects = ids
	c.state.DefaultSubjectId = c.taxonomy.DefaultSubject(subjects)
	c.clearError(OpSubjects)

	if c.state.ActiveSubjectId == "" || !c.state.hasSubject(c.state.ActiveSubjectId) {
		if c.state.DefaultSubjectId != "" {
			_ = c.selectSubject(c.state.DefaultSubjectId)
		}
	}
	return true
}

func (c *Controller) onSubtopics(r result) bool {
	if r.gen != c.subtopicsGen {
		c.logger.Debug("Selection", "Dropped stale subtopics", map[string]interface{}{
			"session_id": c.id,
			"gen":        r.gen,
			"current":    c.subtopicsGen,
		})
		return false
	}

	c.state.LoadingSubtopics = false
	if r.err != nil {
		c.fail(OpSubtopics, r.err)
		return true
	}

	subtopics := r.value.([]*entity.Subtopic)
	ids := make([]string, len(subtopics))
	for i, s := range subtopics {
		ids[i] = s.Id
	}
	c.state.Subtopics = ids
	c.clearError(OpSubtopics)

	if c.state.ActiveSubtopicId != nil && !c.state.hasSubtopic(*c.state.ActiveSubtopicId) {
		c.state.ActiveSubtopicId = nil
		c.syncSubscription()
	}
	c.applyPendingSubtopic()
	return true
}

func (c *Controller) onDocument(r result) bool {
	if r.gen != c.documentGen || c.lastOpen == nil {
		return false
	}
	c.state.LoadingDocument = false

	if r.err != nil {
		if errors.Is(r.err, apperror.ErrNotFound) {
			_ = c.apply(Event{Kind: EvDocumentGone})
			c.syncSubscription()
		}
		c.fail(OpDocument, r.err)
		return true
	}

	doc := r.value.(*entity.Document)
	if err := c.apply(Event{Kind: c.lastOpen.kind, Document: doc}); err != nil {
		c.fail(OpDocument, err)
		return true
	}
	c.renderViews()
	c.syncSubscription()
	return true
}

func (c *Controller) onSaved(r result) bool {
	if r.gen != c.saveGen {
		return false
	}
	c.state.Saving = false

	if r.err != nil {
		// the buffer stays open so nothing authored is lost
		c.fail(OpSave, r.err)
		return true
	}

	doc := r.value.(*entity.Document)
	if err := c.apply(Event{Kind: EvSaved}); err != nil {
		return true
	}
	c.logger.Info("Selection", "Document saved", map[string]interface{}{
		"session_id":  c.id,
		"document_id": doc.Id,
	})
	c.clearError()
	c.syncSubscription()
	return true
}

func (c *Controller) onDeleted(r result) bool {
	if r.err != nil {
		c.fail(OpDelete, r.err)
		return true
	}

	id := r.value.(string)
	if c.state.ActiveDocumentId != nil && *c.state.ActiveDocumentId == id {
		c.abandon()
		_ = c.apply(Event{Kind: EvReset})
		c.syncSubscription()
	}
	c.clearError(OpDelete)
	return true
}

func (c *Controller) onSubtopicAdded(r result) bool {
	if r.err != nil {
		c.fail(OpAddSubtopic, r.err)
		return true
	}

	sub := r.value.(*entity.Subtopic)
	if sub.SubjectId != c.state.ActiveSubjectId {
		return false
	}
	c.clearError(OpAddSubtopic)
	c.pendingSubtopic, c.hasPending = cloneRef(&sub.Id), true
	c.loadSubtopics()
	return true
}

func (c *Controller) handleSnapshot(snap feed.Snapshot) bool {
	if c.sub == nil || snap.SubscriptionId != c.sub.Id() {
		return false
	}
	c.state.LoadingDocuments = false

	if snap.Err != nil {
		c.fail(OpDocuments, snap.Err)
		return true
	}
	c.state.Documents = dto.NewDocumentSummaries(snap.Documents)
	c.clearError(OpDocuments)
	return true
}

func (c *Controller) handleNotice(n feed.Notice) bool {
	switch n.Kind {
	case feed.SubtopicAdded:
		if n.SubjectId != c.state.ActiveSubjectId {
			return false
		}
		c.loadSubtopics()
		return true
	case feed.SubjectsChanged:
		c.loadSubjects()
		return true
	}
	return false
}
