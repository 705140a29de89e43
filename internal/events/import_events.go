package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of import events published by the service
type EventType string

const (
	EventQuestionsImported     EventType = "questions.imported"
	EventQuestionsImportFailed EventType = "questions.import_failed"
)

const (
	eventSource  = "question-import-service"
	eventVersion = "1.0"
)

// ImportEvent is the envelope for every import event
type ImportEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type QuestionsImportedEvent struct {
	JobID    string `json:"job_id"`
	UserID   string `json:"user_id"`
	FileName string `json:"file_name"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Invalid  int    `json:"invalid"`
}

type QuestionsImportFailedEvent struct {
	JobID    string `json:"job_id"`
	UserID   string `json:"user_id"`
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

func NewImportEvent(eventType EventType, data interface{}) *ImportEvent {
	return &ImportEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewQuestionsImportedEvent(data QuestionsImportedEvent) *ImportEvent {
	return NewImportEvent(EventQuestionsImported, data)
}

func NewQuestionsImportFailedEvent(data QuestionsImportFailedEvent) *ImportEvent {
	return NewImportEvent(EventQuestionsImportFailed, data)
}
