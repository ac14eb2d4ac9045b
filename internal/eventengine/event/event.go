package event

import (
	"encoding/json"
	"log"
)

type SubscriberName string
type EventName string

type Event struct {
	Name    EventName
	Payload any
}

type Subscriber struct {
	Name      SubscriberName // Name of subscriber
	AddressCh chan<- any     // Where a subscriber is listening for events at.
}

// Snapshot serializes a state snapshot for an event payload. Persistence is
// best-effort, so a marshal failure logs and yields nil; subscribers skip
// nil snapshots.
func Snapshot(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to snapshot event payload: %v\n", err)
		return nil
	}

	return b
}
