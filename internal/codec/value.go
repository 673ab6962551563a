package codec

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elliotchance/orderedmap/v3"
)

// Kind identifies which member of a Value is populated.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUint
	KindInt
	KindFloat
	KindString
	KindBits
	KindFlags
	KindCoords
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBits:
		return "bits"
	case KindFlags:
		return "flags"
	case KindCoords:
		return "coords"
	default:
		return "invalid"
	}
}

// Bits holds the eight flags of a bitmap byte. Index 0 is the most
// significant bit.
type Bits [8]bool

// Named maps the raw bits onto a schema's flag names. Duplicate names keep
// their first position and the value of their last occurrence.
func (b Bits) Named(names [8]string) Flags {
	m := orderedmap.NewOrderedMapWithCapacity[string, bool](len(names))
	for i, name := range names {
		m.Set(name, b[i])
	}
	return Flags{m: m}
}

// Flags is a bitmap whose bits carry names.
type Flags struct {
	m *orderedmap.OrderedMap[string, bool]
}

// Get reports the flag value and whether the name exists.
func (f Flags) Get(name string) (bool, bool) {
	if f.m == nil {
		return false, false
	}
	return f.m.Get(name)
}

// Names returns the flag names in bit order.
func (f Flags) Names() []string {
	if f.m == nil {
		return nil
	}
	names := make([]string, 0, f.m.Len())
	for name := range f.m.Keys() {
		names = append(names, name)
	}
	return names
}

// Coords is a latitude/longitude pair in degrees.
type Coords struct {
	Lat float64
	Lng float64
}

// Value is a decoded field. Exactly one member is meaningful, selected by
// Kind.
type Value struct {
	kind   Kind
	u      uint64
	i      int64
	f      float64
	s      string
	bits   Bits
	flags  Flags
	coords Coords
}

// Constructors for each kind.
func UintValue(v uint64) Value { return Value{kind: KindUint, u: v} }
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }
func StringValue(v string) Value { return Value{kind: KindString, s: v} }
func BitsValue(v Bits) Value { return Value{kind: KindBits, bits: v} }
func FlagsValue(v Flags) Value { return Value{kind: KindFlags, flags: v} }
func CoordsValue(v Coords) Value { return Value{kind: KindCoords, coords: v} }

// Kind returns the populated member.
func (v Value) Kind() Kind { return v.kind }

// Uint returns the unsigned member.
func (v Value) Uint() uint64 { return v.u }

// Int returns the signed member.
func (v Value) Int() int64 { return v.i }

// Float returns the floating point member.
func (v Value) Float() float64 { return v.f }

// Str returns the string member.
func (v Value) Str() string { return v.s }

// Bits returns the raw bitmap member.
func (v Value) Bits() Bits { return v.bits }

// Flags returns the named bitmap member.
func (v Value) Flags() Flags { return v.flags }

// Coords returns the coordinate pair member.
func (v Value) Coords() Coords { return v.coords }

// Number converts any numeric kind to float64.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindUint:
		return float64(v.u), true
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// IsZero reports whether a numeric value equals zero. Non-numeric values
// are never zero.
func (v Value) IsZero() bool {
	n, ok := v.Number()
	return ok && n == 0
}

// Interface returns the value as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindUint:
		return v.u
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBits:
		return v.bits
	case KindFlags:
		out := make(map[string]bool)
		for _, name := range v.flags.Names() {
			out[name], _ = v.flags.Get(name)
		}
		return out
	case KindCoords:
		return [2]float64{v.coords.Lat, v.coords.Lng}
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindCoords:
		return fmt.Sprintf("%s,%s",
			strconv.FormatFloat(v.coords.Lat, 'f', -1, 64),
			strconv.FormatFloat(v.coords.Lng, 'f', -1, 64))
	default:
		data, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprintf("<%s>", v.kind)
		}
		return string(data)
	}
}

// MarshalJSON renders the value the way the console decoders emit it.
// Named flags keep their bit order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindFlags:
		buf := []byte{'{'}
		for i, name := range v.flags.Names() {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			set, _ := v.flags.Get(name)
			buf = append(buf, key...)
			buf = append(buf, ':')
			buf = strconv.AppendBool(buf, set)
		}
		return append(buf, '}'), nil
	case KindInvalid:
		return []byte("null"), nil
	default:
		return json.Marshal(v.Interface())
	}
}
