package events

import "encoding/json"

// Event name constants
const (
	ConversionCompleted = "conversion.completed"
	ConfigChanged       = "config.changed"
)

// Event is a generic SSE event from the daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// ConversionEvent is the payload of conversion.completed. Result is nil when
// there was nothing to convert.
type ConversionEvent struct {
	Category  string   `json:"category"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Result    *float64 `json:"result"`
	Formatted string   `json:"formatted,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Ts        int64    `json:"ts"`
}

// ConfigChangedEvent is the payload of config.changed.
type ConfigChangedEvent struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Ts    int64  `json:"ts"`
}

// DecodeAs decodes the event payload into T. Empty data yields the zero value
// of T and a nil error.
//
//	payload, err := events.DecodeAs[events.ConversionEvent](ev)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
