package paxdecode

import (
	"fmt"
	"math"

	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
)

// FieldSet offers typed helpers on top of the decoded fields.
type FieldSet struct {
	rec *schema.Record
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{rec: r.record}
}

// Names lists field names in payload order.
func (fs FieldSet) Names() []string {
	return fs.rec.Names()
}

// Map exposes the fields as plain Go values.
func (fs FieldSet) Map() map[string]any {
	return fs.rec.Map()
}

// Raw returns the stored value without conversions.
func (fs FieldSet) Raw(key string) (any, bool) {
	v, ok := fs.rec.Get(key)
	if !ok {
		return nil, false
	}
	return v.Interface(), true
}

func (fs FieldSet) value(key string) (codec.Value, error) {
	v, ok := fs.rec.Get(key)
	if !ok {
		return codec.Value{}, fmt.Errorf("field %q missing", key)
	}
	return v, nil
}

// Float returns a numeric field as float64.
func (fs FieldSet) Float(key string) (float64, error) {
	v, err := fs.value(key)
	if err != nil {
		return 0, err
	}
	n, ok := v.Number()
	if !ok {
		return 0, fmt.Errorf("field %q is not numeric (%s)", key, v.Kind())
	}
	return n, nil
}

// Int returns a numeric field as int64. Floats are truncated.
func (fs FieldSet) Int(key string) (int64, error) {
	v, err := fs.value(key)
	if err != nil {
		return 0, err
	}
	switch v.Kind() {
	case codec.KindInt:
		return v.Int(), nil
	case codec.KindUint:
		if v.Uint() > math.MaxInt64 {
			return 0, fmt.Errorf("field %q overflows int64", key)
		}
		return int64(v.Uint()), nil
	case codec.KindFloat:
		return int64(v.Float()), nil
	default:
		return 0, fmt.Errorf("field %q is not integer (%s)", key, v.Kind())
	}
}

// Uint returns a non-negative numeric field as uint64.
func (fs FieldSet) Uint(key string) (uint64, error) {
	v, err := fs.value(key)
	if err != nil {
		return 0, err
	}
	switch v.Kind() {
	case codec.KindUint:
		return v.Uint(), nil
	case codec.KindInt:
		if v.Int() < 0 {
			return 0, fmt.Errorf("field %q is negative", key)
		}
		return uint64(v.Int()), nil
	case codec.KindFloat:
		if v.Float() < 0 {
			return 0, fmt.Errorf("field %q is negative", key)
		}
		return uint64(v.Float()), nil
	default:
		return 0, fmt.Errorf("field %q is not integer (%s)", key, v.Kind())
	}
}

// String returns the field formatted as text.
func (fs FieldSet) String(key string) (string, error) {
	v, err := fs.value(key)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Flag returns one named bit of a bitmap field.
func (fs FieldSet) Flag(key, name string) (bool, error) {
	v, err := fs.value(key)
	if err != nil {
		return false, err
	}
	if v.Kind() != codec.KindFlags {
		return false, fmt.Errorf("field %q is not a named bitmap (%s)", key, v.Kind())
	}
	set, ok := v.Flags().Get(name)
	if !ok {
		return false, fmt.Errorf("field %q has no flag %q", key, name)
	}
	return set, nil
}

// Coords returns a latitude/longitude pair field.
func (fs FieldSet) Coords(key string) (lat, lng float64, err error) {
	v, err := fs.value(key)
	if err != nil {
		return 0, 0, err
	}
	if v.Kind() != codec.KindCoords {
		return 0, 0, fmt.Errorf("field %q is not a coordinate pair (%s)", key, v.Kind())
	}
	c := v.Coords()
	return c.Lat, c.Lng, nil
}
