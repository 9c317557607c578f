package history

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/sadopc/zencrawl/internal/protocol"
)

// Status is the terminal outcome of an extraction attempt.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// DefaultErrorMessage is recorded when a failure carries no message.
const DefaultErrorMessage = "An error occurred"

// Record is one past extraction attempt. Records are immutable once
// stored; the only mutation is removing a whole record.
type Record struct {
	ID        string
	Kind      protocol.Kind
	Target    string // URL, or the query for search
	Timestamp time.Time
	Status    Status
	Result    json.RawMessage // set iff Status is completed
	Error     string          // set iff Status is failed
}

// Completed reports whether the record holds a result.
func (r Record) Completed() bool { return r.Status == StatusCompleted }

// clone returns r with its own copy of the result bytes.
func (r Record) clone() Record {
	r.Result = bytes.Clone(r.Result)
	return r
}

func (r Record) valid() bool {
	if r.ID == "" || !r.Kind.Valid() {
		return false
	}
	switch r.Status {
	case StatusCompleted:
		return len(r.Result) > 0 && r.Error == ""
	case StatusFailed:
		return len(r.Result) == 0 && r.Error != ""
	}
	return false
}

// NewRecord is the caller-supplied part of a record. The store assigns
// the id and timestamp.
type NewRecord struct {
	Kind   protocol.Kind
	Target string
	Status Status
	Result json.RawMessage
	Error  string
}

// Completed builds a NewRecord for a successful attempt. An empty body
// is stored as an empty JSON object.
func Completed(kind protocol.Kind, target string, result json.RawMessage) NewRecord {
	if len(result) == 0 {
		result = json.RawMessage(`{}`)
	}
	return NewRecord{Kind: kind, Target: target, Status: StatusCompleted, Result: result}
}

// Failed builds a NewRecord for a failed attempt.
func Failed(kind protocol.Kind, target, message string) NewRecord {
	if message == "" {
		message = DefaultErrorMessage
	}
	return NewRecord{Kind: kind, Target: target, Status: StatusFailed, Error: message}
}

// wireRecord is the persisted JSON form. Field names and the millisecond
// timestamp match the extraction-history slot of the web playground.
type wireRecord struct {
	ID        string          `json:"id"`
	Type      protocol.Kind   `json:"type"`
	URL       string          `json:"url"`
	Timestamp int64           `json:"timestamp"`
	Status    Status          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		ID:        r.ID,
		Type:      r.Kind,
		URL:       r.Target,
		Timestamp: r.Timestamp.UnixMilli(),
		Status:    r.Status,
		Result:    r.Result,
		Error:     r.Error,
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if string(w.Result) == "null" {
		w.Result = nil
	}
	*r = Record{
		ID:        w.ID,
		Kind:      w.Type,
		Target:    w.URL,
		Timestamp: time.UnixMilli(w.Timestamp),
		Status:    w.Status,
		Result:    w.Result,
		Error:     w.Error,
	}
	return nil
}
