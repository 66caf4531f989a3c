package dto

// Websocket message types.
const (
	SyncMessageState = "state"
	SyncMessageError = "error"
)

// SyncCommand is one client to server message on a sync session. Only the
// fields the command needs are read.
type SyncCommand struct {
	Type        string  `json:"type"`
	SubjectId   string  `json:"subject_id,omitempty"`
	SubtopicId  *string `json:"subtopic_id,omitempty"`
	DocumentId  string  `json:"document_id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Title       string  `json:"title,omitempty"`
	ContentHtml string  `json:"content_html,omitempty"`
	Confirm     bool    `json:"confirm,omitempty"`
}

type SyncMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type SyncError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Command string `json:"command,omitempty"`
}
