package schema

import (
	"bytes"
	"encoding/json"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
)

// Record is the ordered set of decoded fields of one payload.
type Record struct {
	fields *orderedmap.OrderedMap[string, codec.Value]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.NewOrderedMap[string, codec.Value]()}
}

func newRecordWithCapacity(n int) *Record {
	return &Record{fields: orderedmap.NewOrderedMapWithCapacity[string, codec.Value](n)}
}

// Set stores a value. An existing name keeps its position and takes the new
// value.
func (r *Record) Set(name string, v codec.Value) {
	r.fields.Set(name, v)
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (codec.Value, bool) {
	if r == nil || r.fields == nil {
		return codec.Value{}, false
	}
	return r.fields.Get(name)
}

// Has reports whether name is present.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil || r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Names returns field names in insertion order.
func (r *Record) Names() []string {
	names := make([]string, 0, r.Len())
	if r.Len() == 0 {
		return names
	}
	for name := range r.fields.Keys() {
		names = append(names, name)
	}
	return names
}

// Clone returns an independent copy.
func (r *Record) Clone() *Record {
	out := newRecordWithCapacity(r.Len())
	if r.Len() == 0 {
		return out
	}
	for name, v := range r.fields.AllFromFront() {
		out.fields.Set(name, v)
	}
	return out
}

// Map flattens the record into plain Go values.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	if r.Len() == 0 {
		return out
	}
	for name, v := range r.fields.AllFromFront() {
		out[name] = v.Interface()
	}
	return out
}

// MarshalJSON writes the fields as an object in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r.Len() > 0 {
		first := true
		for name, v := range r.fields.AllFromFront() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
