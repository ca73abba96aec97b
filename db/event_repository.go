package db

import (
	"context"
	"encoding/json"
	"fmt"
	"shop/entities"
	"time"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
)

type IEventRepository interface {
	Store(ctx context.Context, eventID string, eventName string, payload []byte) error
}

// EventRepository appends every saga event to the data lake table. This is
// the operator-facing trail the design leans on when a rejected order leaves
// earlier lines reserved.
type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) EventRepository {
	if db == nil {
		panic("db is nil")
	}
	return EventRepository{
		db: db,
	}
}

func (e EventRepository) Store(ctx context.Context, eventID string, eventName string, payload []byte) error {
	var envelope struct {
		Header entities.EventHeader `json:"header"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("could not read event header: %w", err)
	}

	publishedAt := envelope.Header.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	_, err := e.db.Conn.ExecContext(ctx, `
		INSERT INTO
		    events (event_id, published_at, event_name, event_payload)
		VALUES
		    ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING
	`, eventID, publishedAt, eventName, payload)
	if err != nil {
		return fmt.Errorf("could not store event in the data lake: %w", err)
	}

	return nil
}

// StoreMessage adapts Store to a raw router handler.
func (e EventRepository) StoreMessage(msg *watermillMessage.Message) error {
	return e.Store(msg.Context(), msg.UUID, msg.Metadata.Get("name"), msg.Payload)
}
