// file: treekit/codec/event.go
package codec

import (
	"encoding/json"
	"errors"
	"strconv"
)

// ----------------------------------------------------
// Event types
// ----------------------------------------------------

const (
	EventVisit = "visit"
	EventDone  = "done"
	EventError = "error"
)

// Event is the message emitted for each node a streamed traversal
// visits, followed by a single done (or error) event.
type Event struct {
	Type  string `json:"type"`
	Tree  string `json:"tree,omitempty"`
	Order string `json:"order,omitempty"`
	Seq   int    `json:"seq"`
	Depth int    `json:"depth,omitempty"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewVisit creates a visit event.
func NewVisit(treeID, order string, seq int, value any) *Event {
	return &Event{Type: EventVisit, Tree: treeID, Order: order, Seq: seq, Value: value}
}

// NewDone creates the terminating event; seq carries the visit count.
func NewDone(treeID, order string, count int) *Event {
	return &Event{Type: EventDone, Tree: treeID, Order: order, Seq: count}
}

// NewError creates a terminating error event.
func NewError(treeID, order string, err error) *Event {
	return &Event{Type: EventError, Tree: treeID, Order: order, Error: err.Error()}
}

// Err returns the carried error, if any.
func (e *Event) Err() error {
	if e.Type != EventError {
		return nil
	}
	return errors.New(e.Error)
}

// IntValue returns Value as an int64. JSON decoding turns numbers into
// float64, so the common shapes are accepted.
func (e *Event) IntValue() (int64, bool) {
	return toInt64(e.Value)
}

// Encode returns the JSON form of e.
func (e *Event) Encode() []byte {
	return MustMarshal(e)
}

// DecodeEvent parses an event produced by Encode.
func DecodeEvent(data []byte) (*Event, error) {
	var e Event
	if err := Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// toInt64 tries to convert any value to int64.
func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		return int64(x), true
	case json.Number:
		i, err := x.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(x, 10, 64)
		return i, err == nil
	}
	return 0, false
}
