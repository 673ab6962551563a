// Package schema composes field codecs into payload layouts and decodes
// payloads into records.
package schema

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
)

// ErrInsufficientBytes is matched by *InsufficientBytesError.
var ErrInsufficientBytes = errors.New("insufficient bytes")

// InsufficientBytesError reports a payload shorter than the schema mask.
type InsufficientBytesError struct {
	Schema     string
	MaskLength int
	Input      int
}

func (e *InsufficientBytesError) Error() string {
	return fmt.Sprintf("%s: mask length is %d whereas input is %d", e.Schema, e.MaskLength, e.Input)
}

// Is lets errors.Is match ErrInsufficientBytes.
func (e *InsufficientBytesError) Is(target error) bool {
	return target == ErrInsufficientBytes
}

// Field is one codec slot of a schema. Flags names the bits of a bitmap
// codec; it must stay nil for every other codec.
type Field struct {
	Codec codec.Codec
	Name  string
	Flags *[8]string
}

// F is shorthand for a plain field.
func F(c codec.Codec, name string) Field {
	return Field{Codec: c, Name: name}
}

// Bitmap is shorthand for a bitmap field with named bits, most significant
// bit first.
func Bitmap(name string, flags [8]string) Field {
	return Field{Codec: codec.Bitmap, Name: name, Flags: &flags}
}

// Schema is a named, ordered list of fields.
type Schema struct {
	name       string
	fields     []Field
	maskLength int
}

// New validates the field list and computes the mask length.
func New(name string, fields ...Field) (*Schema, error) {
	if name == "" {
		return nil, errors.New("schema name is required")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema %s has no fields", name)
	}
	s := &Schema{name: name, fields: make([]Field, len(fields))}
	for i, f := range fields {
		if f.Codec.Width() <= 0 {
			return nil, fmt.Errorf("schema %s field %d (%s) has no codec", name, i, f.Name)
		}
		if f.Flags != nil && !f.Codec.IsBitmap() {
			return nil, fmt.Errorf("schema %s field %d (%s): flag names on %s codec", name, i, f.Name, f.Codec.Name())
		}
		s.fields[i] = f
		s.maskLength += f.Codec.Width()
	}
	return s, nil
}

// MustNew is New for static tables; it panics on a malformed schema.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema identifier.
func (s *Schema) Name() string { return s.name }

// MaskLength is the sum of all codec widths.
func (s *Schema) MaskLength() int { return s.maskLength }

// Fields returns a copy of the field list.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Decode slices payload field by field. Bytes beyond the mask length are
// ignored. A short payload fails as a whole.
func Decode(payload []byte, s *Schema) (*Record, error) {
	if len(payload) < s.maskLength {
		return nil, &InsufficientBytesError{Schema: s.name, MaskLength: s.maskLength, Input: len(payload)}
	}
	rec := newRecordWithCapacity(len(s.fields))
	offset := 0
	for idx, f := range s.fields {
		width := f.Codec.Width()
		current := payload[offset : offset+width]
		offset += width
		v, err := f.Codec.Decode(current)
		if err != nil {
			return nil, fmt.Errorf("%s field %q: %w", s.name, f.Name, err)
		}
		if f.Flags != nil {
			v = codec.FlagsValue(v.Bits().Named(*f.Flags))
		}
		name := f.Name
		if name == "" {
			name = strconv.Itoa(idx)
		}
		rec.Set(name, v)
	}
	return rec, nil
}
