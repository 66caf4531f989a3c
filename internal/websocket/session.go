package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/selection"
)

// Commands is the command surface of a sync session.
type Commands interface {
	SelectSubject(ctx context.Context, subjectId string) error
	SelectSubtopic(ctx context.Context, subtopicId *string) error
	CreateNew(ctx context.Context) error
	EditExisting(ctx context.Context, documentId string) error
	View(ctx context.Context, documentId string) error
	EditFromViewer(ctx context.Context) error
	Back(ctx context.Context) error
	Cancel(ctx context.Context) error
	UpdateBuffer(ctx context.Context, draft entity.DocumentDraft) error
	Save(ctx context.Context) error
	SaveAsNew(ctx context.Context) error
	Delete(ctx context.Context, documentId string, confirm bool) error
	AddSubtopic(ctx context.Context, name string) error
	Navigate(ctx context.Context, t selection.Target) error
	RetryLoad(ctx context.Context) error
}

// Session is a running selection controller.
type Session interface {
	Commands
	Id() string
	Start(ctx context.Context)
	Close()
	Done() <-chan struct{}
	Updates() <-chan selection.State
}

// Dispatch decodes one client message and runs it against cmds.
func Dispatch(ctx context.Context, cmds Commands, raw []byte) (string, error) {
	var cmd dto.SyncCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return "", apperror.Validation("type", "malformed command")
	}

	switch cmd.Type {
	case "select_subject":
		return cmd.Type, cmds.SelectSubject(ctx, cmd.SubjectId)
	case "select_subtopic":
		return cmd.Type, cmds.SelectSubtopic(ctx, cmd.SubtopicId)
	case "create_new":
		return cmd.Type, cmds.CreateNew(ctx)
	case "edit":
		return cmd.Type, cmds.EditExisting(ctx, cmd.DocumentId)
	case "view":
		return cmd.Type, cmds.View(ctx, cmd.DocumentId)
	case "edit_from_viewer":
		return cmd.Type, cmds.EditFromViewer(ctx)
	case "back":
		return cmd.Type, cmds.Back(ctx)
	case "cancel":
		return cmd.Type, cmds.Cancel(ctx)
	case "update_buffer":
		return cmd.Type, cmds.UpdateBuffer(ctx, entity.DocumentDraft{
			Title:       cmd.Title,
			ContentHtml: cmd.ContentHtml,
			SubjectId:   optional(cmd.SubjectId),
			SubtopicId:  cmd.SubtopicId,
		})
	case "save":
		return cmd.Type, cmds.Save(ctx)
	case "save_as_new":
		return cmd.Type, cmds.SaveAsNew(ctx)
	case "delete":
		return cmd.Type, cmds.Delete(ctx, cmd.DocumentId, cmd.Confirm)
	case "add_subtopic":
		return cmd.Type, cmds.AddSubtopic(ctx, cmd.Name)
	case "navigate":
		return cmd.Type, cmds.Navigate(ctx, selection.Target{
			SubjectId:  cmd.SubjectId,
			SubtopicId: cmd.SubtopicId,
			DocumentId: optional(cmd.DocumentId),
		})
	case "retry":
		return cmd.Type, cmds.RetryLoad(ctx)
	default:
		return cmd.Type, apperror.Validation("type", fmt.Sprintf("unknown command %q", cmd.Type))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// EncodeState wraps a session state in the outbound envelope.
func EncodeState(s selection.State) ([]byte, error) {
	return json.Marshal(dto.SyncMessage{Type: dto.SyncMessageState, Data: s})
}

// EncodeError turns a rejected command into the outbound error envelope.
func EncodeError(command string, err error) ([]byte, error) {
	e := dto.SyncError{Command: command, Code: "INTERNAL_ERROR", Message: "command failed"}

	if de, ok := apperror.As(err); ok {
		e.Code, e.Message, e.Field = de.Code, de.Message, de.Field
	} else if errors.Is(err, selection.ErrBrokenInvariant) {
		e.Code, e.Message = "INVALID_TRANSITION", err.Error()
	} else if errors.Is(err, selection.ErrClosed) {
		e.Code, e.Message = "SESSION_CLOSED", "session closed"
	} else if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		e.Code, e.Message = "TIMEOUT", "command timed out"
	}

	return json.Marshal(dto.SyncMessage{Type: dto.SyncMessageError, Data: e})
}

// ServeSession runs one sync session over conn until either side closes.
// The current state is pushed after every change and rejected commands
// are answered with an error message.
func ServeSession(ctx context.Context, hub *Hub, conn Conn, session Session, log logger.ILogger) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := NewClient(hub, conn, session.Id(), log)
	client.onClose = func() {
		cancel()
		session.Close()
	}
	client.onMessage = func(raw []byte) {
		command, err := Dispatch(ctx, session, raw)
		if err == nil {
			return
		}
		log.Debug("Session", "Command rejected", map[string]interface{}{
			"session_id": session.Id(),
			"command":    command,
			"error":      err.Error(),
		})
		msg, encErr := EncodeError(command, err)
		if encErr != nil {
			return
		}
		client.Enqueue(msg)
	}

	// the hub may close the session as soon as the client is registered
	session.Start(ctx)
	if !hub.Register(client) {
		session.Close()
		_ = conn.Close()
		return
	}

	go forwardUpdates(client, session, log)
	go client.writePump()
	client.readPump()
}

func forwardUpdates(client *Client, session Session, log logger.ILogger) {
	for {
		select {
		case <-client.Closed():
			return
		case <-session.Done():
			client.close()
			return
		case s := <-session.Updates():
			msg, err := EncodeState(s)
			if err != nil {
				log.Error("Session", "Failed to encode state", map[string]interface{}{
					"session_id": session.Id(),
					"error":      err.Error(),
				})
				continue
			}
			if !client.Enqueue(msg) {
				return
			}
		}
	}
}
