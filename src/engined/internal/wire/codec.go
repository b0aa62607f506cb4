package wire

import (
	"encoding/json"
	"fmt"
	"io"
)

// EncodeLine writes v as a single JSON line to w.
func EncodeLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	return nil
}

// DecodeLine parses one inbound line into a Message. The trailing newline, if
// present, must already be removed by the caller.
func DecodeLine(line []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(line, &m); err != nil {
		return nil, fmt.Errorf("decoding message: %w", err)
	}
	if m.Type == "" {
		return nil, fmt.Errorf("decoding message: missing type")
	}
	return &m, nil
}

// NewMessage builds an inbound Message with a marshaled payload, primarily
// for tests and loopback paths.
func NewMessage(t Type, id string, payload interface{}) (*Message, error) {
	m := &Message{Type: t, ID: id}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding payload: %w", err)
		}
		m.Payload = data
	}
	return m, nil
}
