package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind of an event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	}
	return "unknown"
}

// Attr is one key/value pair; attributes keep the order they were added in.
type Attr struct {
	Key   string `json:"k"`
	Value string `json:"v"`
}

// A builds an Attr, formatting value with %v.
func A(key string, value any) Attr {
	if s, ok := value.(string); ok {
		return Attr{Key: key, Value: s}
	}
	return Attr{Key: key, Value: fmt.Sprint(value)}
}

// Event is one trace record. Seq is assigned when the event is created.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Depth    int // nesting of the enclosing spans, for text indentation
	Name     string
	Detail   string
	Elapsed  time.Duration // end events only
	Attrs    []Attr
}

// Format of serialized events.
type Format uint8

const (
	FormatAuto Format = iota // по расширению файла
	FormatText
	FormatNDJSON
)

// ParseFormat accepts auto, text, ndjson and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatForPath picks NDJSON for .ndjson/.jsonl files and text otherwise.
func FormatForPath(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// AppendEvent serializes ev in format and appends a trailing newline.
func AppendEvent(dst []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(dst, ev)
	}
	return appendText(dst, ev)
}

type jsonEvent struct {
	Time     string `json:"time"`
	Seq      uint64 `json:"seq"`
	Kind     string `json:"kind"`
	Scope    string `json:"scope"`
	SpanID   uint64 `json:"span_id,omitempty"`
	ParentID uint64 `json:"parent_id,omitempty"`
	Name     string `json:"name"`
	Detail   string `json:"detail,omitempty"`
	Micros   int64  `json:"elapsed_us,omitempty"`
	Attrs    []Attr `json:"attrs,omitempty"`
}

func appendJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Micros:   ev.Elapsed.Microseconds(),
		Attrs:    ev.Attrs,
	})
	if err != nil {
		data = fmt.Appendf(nil, `{"seq":%d,"name":%q,"error":%q}`, ev.Seq, ev.Name, err.Error())
	}
	dst = append(dst, data...)
	return append(dst, '\n')
}

var kindMarks = map[Kind]string{KindBegin: "+", KindEnd: "-", KindPoint: "*", KindHeartbeat: "~"}

// 15:04:05.000 #seq   <indent>+ scope name (detail) [elapsed] k=v ...
func appendText(dst []byte, ev *Event) []byte {
	dst = ev.Time.AppendFormat(dst, "15:04:05.000")
	dst = fmt.Appendf(dst, " #%-5d ", ev.Seq)
	for range ev.Depth {
		dst = append(dst, "  "...)
	}
	dst = append(dst, kindMarks[ev.Kind]...)
	dst = append(dst, ' ')
	dst = append(dst, ev.Scope.String()...)
	dst = append(dst, ' ')
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = fmt.Appendf(dst, " (%s)", ev.Detail)
	}
	if ev.Kind == KindEnd {
		dst = fmt.Appendf(dst, " [%s]", ev.Elapsed.Round(time.Microsecond))
	}
	for _, a := range ev.Attrs {
		dst = fmt.Appendf(dst, " %s=%s", a.Key, a.Value)
	}
	return append(dst, '\n')
}
