// server/domain/todo.go
package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// TimeLayout is the created_at format: second precision, no zone suffix.
const TimeLayout = "2006-01-02 15:04:05"

type Todo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

// UnmarshalJSON accepts loosely typed done values written by hand and
// normalizes them with Truthy.
func (t *Todo) UnmarshalJSON(b []byte) error {
	type plain Todo
	var raw struct {
		plain
		Done any `json:"done"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*t = Todo(raw.plain)
	t.Done = Truthy(raw.Done)
	return nil
}

// Document is the persisted unit. Seq is strictly greater than every ID ever issued.
type Document struct {
	Todos []Todo `json:"todos"`
	Seq   int    `json:"seq"`
}

func NewDocument() *Document {
	return &Document{Todos: []Todo{}, Seq: 1}
}

// Patch carries the fields of a partial update. Nil means absent.
type Patch struct {
	Title *string
	Done  *bool
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
