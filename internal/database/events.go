package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	EventUsernameClaimed      = "username.claimed"
	EventCustomizationUpdated = "customization.updated"
	EventProfileImageRemoved  = "customization.image_removed"
	EventLinkCreated          = "link.created"
	EventLinkUpdated          = "link.updated"
	EventLinkDeleted          = "link.deleted"
)

type Event struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload"`
}

func (q *Queries) insertEvent(ctx context.Context, accountID string, eventType string, payload interface{}) ([]byte, error) {
	eventMsg := map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	}
	eventBytes, err := json.Marshal(eventMsg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `INSERT INTO profile_events (account_id, event_type, payload) VALUES ($1, $2, $3)`
	if _, err := q.db.Exec(ctx, query, accountID, eventType, eventBytes); err != nil {
		return nil, err
	}

	return eventBytes, nil
}

// LogEvent journals an event and pushes it to the account's live connections.
func (s *Store) LogEvent(ctx context.Context, accountID string, eventType string, payload interface{}) error {
	eventBytes, err := s.insertEvent(ctx, accountID, eventType, payload)
	if err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.PublishEvent(accountID, eventBytes)
	}

	return nil
}

func (q *Queries) GetEventsSince(ctx context.Context, accountID string, sinceID int64) ([]Event, error) {
	query := `
		SELECT id, event_type, event_time, payload
		FROM profile_events
		WHERE account_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT 100
	`
	rows, err := q.db.Query(ctx, query, accountID, sinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.EventTime,
			&event.Payload,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		return []Event{}, nil
	}

	return events, nil
}
