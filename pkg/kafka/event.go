package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/logger"
)

// EventVersion is the envelope schema version written by this package.
const EventVersion = 1

// MetadataUserID holds the signed-in user that caused the event.
const MetadataUserID = "user_id"

// Event is the JSON envelope every directory event travels in.
type Event struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	AggregateID   string            `json:"aggregate_id"`
	AggregateType string            `json:"aggregate_type"`
	Version       int               `json:"version"`
	Timestamp     time.Time         `json:"timestamp"`
	Source        string            `json:"source"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Data          json.RawMessage   `json:"data"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// NewEvent wraps data in an envelope with a fresh id and the current time.
func NewEvent(eventType, aggregateID, aggregateType, source string, data any) (*Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		Version:       EventVersion,
		Timestamp:     time.Now().UTC(),
		Source:        source,
		Data:          payload,
	}, nil
}

// FromContext fills the correlation id and user id from ctx unless the
// event already has them.
func (e *Event) FromContext(ctx context.Context) *Event {
	if e.CorrelationID == "" {
		e.CorrelationID = logger.CorrelationIDFromContext(ctx)
	}
	id := logger.UserIDFromContext(ctx)
	if _, set := e.Metadata[MetadataUserID]; id != "" && !set {
		if e.Metadata == nil {
			e.Metadata = map[string]string{}
		}
		e.Metadata[MetadataUserID] = id
	}
	return e
}

// Key partitions by aggregate so events for one business stay ordered.
// Events without an aggregate spread by event id.
func (e *Event) Key() []byte {
	if e.AggregateID != "" {
		return []byte(e.AggregateID)
	}
	return []byte(e.EventID)
}

// Validate checks the fields consumers route on.
func (e *Event) Validate() error {
	var errs []error
	for _, f := range []struct{ value, name string }{
		{e.EventID, "event id"},
		{e.EventType, "event type"},
		{e.Source, "event source"},
	} {
		if f.value == "" {
			errs = append(errs, errors.New(f.name+" is required"))
		}
	}
	return errors.Join(errs...)
}

// UnmarshalData decodes the payload into target.
func (e *Event) UnmarshalData(target any) error {
	return json.Unmarshal(e.Data, target)
}
