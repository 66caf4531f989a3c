package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/render"
	"codal-docs-be/internal/repository/memory"
	"codal-docs-be/internal/repository/repotest"
	"codal-docs-be/internal/selection"
	"codal-docs-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommands struct {
	calls []string
	err   error
}

func (r *recordingCommands) record(format string, args ...interface{}) error {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	return r.err
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func (r *recordingCommands) SelectSubject(_ context.Context, id string) error {
	return r.record("select_subject %s", id)
}
func (r *recordingCommands) SelectSubtopic(_ context.Context, id *string) error {
	return r.record("select_subtopic %s", deref(id))
}
func (r *recordingCommands) CreateNew(context.Context) error { return r.record("create_new") }
func (r *recordingCommands) EditExisting(_ context.Context, id string) error {
	return r.record("edit %s", id)
}
func (r *recordingCommands) View(_ context.Context, id string) error { return r.record("view %s", id) }
func (r *recordingCommands) EditFromViewer(context.Context) error { return r.record("edit_from_viewer") }
func (r *recordingCommands) Back(context.Context) error { return r.record("back") }
func (r *recordingCommands) Cancel(context.Context) error { return r.record("cancel") }
func (r *recordingCommands) UpdateBuffer(_ context.Context, d entity.DocumentDraft) error {
	return r.record("update_buffer %s|%s|%s|%s", d.Title, d.ContentHtml, deref(d.SubjectId), deref(d.SubtopicId))
}
func (r *recordingCommands) Save(context.Context) error { return r.record("save") }
func (r *recordingCommands) SaveAsNew(context.Context) error { return r.record("save_as_new") }
func (r *recordingCommands) Delete(_ context.Context, id string, confirm bool) error {
	return r.record("delete %s %t", id, confirm)
}
func (r *recordingCommands) AddSubtopic(_ context.Context, name string) error {
	return r.record("add_subtopic %s", name)
}
func (r *recordingCommands) Navigate(_ context.Context, t selection.Target) error {
	return r.record("navigate %s|%s|%s", t.SubjectId, deref(t.SubtopicId), deref(t.DocumentId))
}
func (r *recordingCommands) RetryLoad(context.Context) error { return r.record("retry") }

func TestDispatch(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: `{"type":"select_subject","subject_id":"Civil Law"}`, want: "select_subject Civil Law"},
		{raw: `{"type":"select_subtopic","subtopic_id":"Contracts"}`, want: "select_subtopic Contracts"},
		{raw: `{"type":"select_subtopic"}`, want: "select_subtopic <nil>"},
		{raw: `{"type":"create_new"}`, want: "create_new"},
		{raw: `{"type":"edit","document_id":"d1"}`, want: "edit d1"},
		{raw: `{"type":"view","document_id":"d2"}`, want: "view d2"},
		{raw: `{"type":"edit_from_viewer"}`, want: "edit_from_viewer"},
		{raw: `{"type":"back"}`, want: "back"},
		{raw: `{"type":"cancel"}`, want: "cancel"},
		{raw: `{"type":"update_buffer","title":"T","content_html":"<p>x</p>","subject_id":"Civil Law"}`, want: "update_buffer T|<p>x</p>|Civil Law|<nil>"},
		{raw: `{"type":"update_buffer","title":"T"}`, want: "update_buffer T||<nil>|<nil>"},
		{raw: `{"type":"save"}`, want: "save"},
		{raw: `{"type":"save_as_new"}`, want: "save_as_new"},
		{raw: `{"type":"delete","document_id":"d3","confirm":true}`, want: "delete d3 true"},
		{raw: `{"type":"delete"}`, want: "delete  false"},
		{raw: `{"type":"add_subtopic","name":"Torts"}`, want: "add_subtopic Torts"},
		{raw: `{"type":"navigate","subject_id":"Civil Law","subtopic_id":"Torts","document_id":"d4"}`, want: "navigate Civil Law|Torts|d4"},
		{raw: `{"type":"navigate","subject_id":"Civil Law"}`, want: "navigate Civil Law|<nil>|<nil>"},
		{raw: `{"type":"retry"}`, want: "retry"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cmds := &recordingCommands{}
			_, err := Dispatch(context.Background(), cmds, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, cmds.calls)
		})
	}
}

func TestDispatchRejectsBadInput(t *testing.T) {
	cmds := &recordingCommands{}

	_, err := Dispatch(context.Background(), cmds, []byte(`{not json`))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	command, err := Dispatch(context.Background(), cmds, []byte(`{"type":"format_disk"}`))
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "format_disk", command)
	assert.Empty(t, cmds.calls)
}

func TestEncodeError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{err: apperror.Validation("title", "title is required"), code: "VALIDATION_ERROR"},
		{err: apperror.NotFound("gone"), code: "NOT_FOUND"},
		{err: fmt.Errorf("%w: x", selection.ErrBrokenInvariant), code: "INVALID_TRANSITION"},
		{err: selection.ErrClosed, code: "SESSION_CLOSED"},
		{err: context.DeadlineExceeded, code: "TIMEOUT"},
		{err: errors.New("boom"), code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		raw, err := EncodeError("save", tt.err)
		require.NoError(t, err)

		var msg struct {
			Type string        `json:"type"`
			Data dto.SyncError `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, dto.SyncMessageError, msg.Type)
		assert.Equal(t, tt.code, msg.Data.Code)
		assert.Equal(t, "save", msg.Data.Command)
	}
}

type fakeConn struct {
	in     chan []byte
	out    chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan []byte),
		out:    make(chan []byte, 256),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case m := <-c.in:
		return websocket.TextMessage, m, nil
	case <-c.closed:
		return 0, nil, errors.New("connection closed")
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	if messageType != websocket.TextMessage {
		return nil
	}
	select {
	case c.out <- data:
		return nil
	case <-c.closed:
		return errors.New("connection closed")
	}
}

func (c *fakeConn) SetReadLimit(int64) {}
func (c *fakeConn) SetReadDeadline(time.Time) error { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }
func (c *fakeConn) SetPongHandler(func(string) error) {}
func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) send(t *testing.T, raw string) {
	t.Helper()
	c.in <- []byte(raw)
}

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// next returns the first frame accepted by match, skipping the others.
func (c *fakeConn) next(t *testing.T, match func(frame) bool) frame {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case raw := <-c.out:
			var f frame
			require.NoError(t, json.Unmarshal(raw, &f))
			if match(f) {
				return f
			}
		case <-deadline:
			t.Fatal("no matching frame")
		}
	}
}

func stateWhere(t *testing.T, cond func(selection.State) bool) func(frame) bool {
	return func(f frame) bool {
		if f.Type != dto.SyncMessageState {
			return false
		}
		var s selection.State
		require.NoError(t, json.Unmarshal(f.Data, &s))
		return cond(s)
	}
}

type feedNotifier struct{ feed *feed.Feed }

func (n *feedNotifier) PublishNotice(_ context.Context, notice feed.Notice) error {
	n.feed.Notify(notice)
	return nil
}

func newSession(t *testing.T) *selection.Controller {
	t.Helper()
	factory, _ := repotest.NewFactory(t)
	log := logger.NewNopLogger()

	notifier := &feedNotifier{}
	docs := service.NewDocumentService(factory, notifier, nil, log)
	f := feed.New(docs, log, time.Second)
	notifier.feed = f

	taxonomy := service.NewTaxonomyService(factory, memory.NewTaxonomyCache(), notifier, nil, "Civil Law", log)
	_, err := taxonomy.SeedSubjects(context.Background(), []string{"Civil Law", "Criminal Law"})
	require.NoError(t, err)

	return selection.New(taxonomy, docs, f, render.Default(), log, selection.Options{FetchTimeout: 2 * time.Second})
}

func TestServeSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := logger.NewNopLogger()
	hub := NewHub(log)
	go hub.Run(ctx)

	conn := newFakeConn()
	session := newSession(t)
	served := make(chan struct{})
	go func() {
		ServeSession(ctx, hub, conn, session, log)
		close(served)
	}()

	conn.next(t, stateWhere(t, func(s selection.State) bool {
		return s.ActiveSubjectId == "Civil Law" && !s.LoadingSubtopics
	}))
	assert.Equal(t, 1, hub.Count())

	conn.send(t, `{"type":"create_new"}`)
	conn.next(t, stateWhere(t, func(s selection.State) bool { return s.Mode == selection.Editing }))

	conn.send(t, `{"type":"save"}`)
	f := conn.next(t, func(f frame) bool { return f.Type == dto.SyncMessageError })
	var rejected dto.SyncError
	require.NoError(t, json.Unmarshal(f.Data, &rejected))
	assert.Equal(t, "VALIDATION_ERROR", rejected.Code)
	assert.Equal(t, "save", rejected.Command)

	conn.send(t, `{"type":"update_buffer","title":"Lease terms","content_html":"<p>Monthly rent</p>","subject_id":"Civil Law"}`)
	conn.send(t, `{"type":"save"}`)
	conn.next(t, stateWhere(t, func(s selection.State) bool {
		return s.Mode == selection.Browsing && len(s.Documents) == 1 && s.Documents[0].Title == "Lease terms"
	}))

	_ = conn.Close()
	select {
	case <-served:
	case <-time.After(3 * time.Second):
		t.Fatal("session did not stop")
	}

	select {
	case <-session.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("controller still running")
	}
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 3*time.Second, 10*time.Millisecond)
}

func TestHubClosesSessionsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	log := logger.NewNopLogger()
	hub := NewHub(log)
	go hub.Run(ctx)

	conn := newFakeConn()
	session := newSession(t)
	served := make(chan struct{})
	go func() {
		ServeSession(context.Background(), hub, conn, session, log)
		close(served)
	}()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-served:
	case <-time.After(3 * time.Second):
		t.Fatal("session survived hub shutdown")
	}
	assert.False(t, hub.Register(NewClient(hub, newFakeConn(), "late", log)))
}

func TestServeSessionOnStoppedHub(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	log := logger.NewNopLogger()
	hub := NewHub(log)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	conn := newFakeConn()
	session := newSession(t)
	served := make(chan struct{})
	go func() {
		ServeSession(context.Background(), hub, conn, session, log)
		close(served)
	}()

	select {
	case <-served:
	case <-time.After(3 * time.Second):
		t.Fatal("session served on a stopped hub")
	}
	select {
	case <-session.Done():
	case <-time.After(time.Second):
		t.Fatal("session left running")
	}
	select {
	case <-conn.closed:
	default:
		t.Fatal("connection left open")
	}
	assert.Equal(t, 0, hub.Count())
}
