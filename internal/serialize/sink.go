// Package serialize implements the entity-to-JSON output path (spec.md
// §6 "JSON output sink", §6 "Serialization restriction"): a minimal
// streaming sink the core writes into without ever choosing an encoding
// library's object model, and per-entity serializers that consult a
// Restriction to hide fields the caller isn't privileged to
// see, grounded on EntitySerialization.h/.cpp's JsonWriter stream-operator
// style.
package serialize

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Sink is the minimal streaming writer contract the core writes entity
// JSON into. It never interprets the bytes it's handed (spec.md §5
// "Suspension points"): no allocation beyond the stream's own buffer, no
// I/O besides the underlying io.Writer, safe to use entirely inside a
// held lock and flushed once outside it.
type Sink interface {
	StartObject()
	EndObject()
	StartArray()
	EndArray()
	// PropertyName writes name as the next object key; name is assumed
	// already safe (spec.md's "newPropertyWithSafeName") — entity field
	// names are Go string literals, never attacker-controlled, so there
	// is no unsafe variant to provide.
	PropertyName(name string)
	WriteString(s string)
	WriteInt64(v int64)
	WriteBool(v bool)
	WriteNull()
}

type frameKind int

const (
	objectFrame frameKind = iota
	arrayFrame
)

type frame struct {
	kind  frameKind
	count int
}

// JSONSink streams into an io.Writer via jsoniter.Stream, tracking
// per-level comma placement so callers only ever call the Sink methods
// above instead of managing jsoniter's WriteMore calls themselves.
type JSONSink struct {
	stream *jsoniter.Stream
	frames []frame
}

// NewJSONSink wraps w in a JSONSink. The returned sink buffers writes
// in-memory (spec.md §5: the sink delivers its buffer to network I/O
// outside the lock); call Flush once the write transaction has released
// its lock.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{stream: jsoniter.ConfigDefault.BorrowStream(w)}
}

// Flush writes any buffered bytes to the underlying io.Writer.
func (s *JSONSink) Flush() error {
	return s.stream.Flush()
}

// beforeArrayElement inserts a separating comma before a value that is
// itself a direct element of the innermost array (not a value following
// an object key, which PropertyName already separates).
func (s *JSONSink) beforeArrayElement() {
	if len(s.frames) == 0 {
		return
	}
	f := &s.frames[len(s.frames)-1]
	if f.kind != arrayFrame {
		return
	}
	if f.count > 0 {
		s.stream.WriteMore()
	}
	f.count++
}

func (s *JSONSink) StartObject() {
	s.beforeArrayElement()
	s.stream.WriteObjectStart()
	s.frames = append(s.frames, frame{kind: objectFrame})
}

func (s *JSONSink) EndObject() {
	s.frames = s.frames[:len(s.frames)-1]
	s.stream.WriteObjectEnd()
}

func (s *JSONSink) StartArray() {
	s.beforeArrayElement()
	s.stream.WriteArrayStart()
	s.frames = append(s.frames, frame{kind: arrayFrame})
}

func (s *JSONSink) EndArray() {
	s.frames = s.frames[:len(s.frames)-1]
	s.stream.WriteArrayEnd()
}

func (s *JSONSink) PropertyName(name string) {
	f := &s.frames[len(s.frames)-1]
	if f.count > 0 {
		s.stream.WriteMore()
	}
	f.count++
	s.stream.WriteObjectField(name)
}

func (s *JSONSink) WriteString(v string) {
	s.beforeArrayElement()
	s.stream.WriteString(v)
}

func (s *JSONSink) WriteInt64(v int64) {
	s.beforeArrayElement()
	s.stream.WriteInt64(v)
}

func (s *JSONSink) WriteBool(v bool) {
	s.beforeArrayElement()
	s.stream.WriteBool(v)
}

func (s *JSONSink) WriteNull() {
	s.beforeArrayElement()
	s.stream.WriteNil()
}
