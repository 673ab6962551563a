package driver

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
	"github.com/cyberman54/ESP32-Paxcounter/internal/convert"
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
)

var (
	// ErrUnrecognized means no variant of the format matches the port and
	// payload length. Callers treat it as "no data".
	ErrUnrecognized = errors.New("unrecognized payload")
	// ErrUnknownFormat means no format is registered under the name.
	ErrUnknownFormat = errors.New("unknown payload format")
)

// Match selects how a variant compares the payload length.
type Match uint8

const (
	// Exact matches payloads of exactly Length bytes.
	Exact Match = iota
	// Longer matches payloads of more than Length bytes.
	Longer
	// Any matches every non-empty payload on the port.
	Any
)

func (m Match) String() string {
	switch m {
	case Exact:
		return "exact"
	case Longer:
		return "longer"
	default:
		return "any"
	}
}

// Variant is one schema of a port.
type Variant struct {
	Port   uint8
	Match  Match
	Length int
	Schema *schema.Schema
	// Raw names the single byte stored as-is instead of running a schema.
	Raw string
}

// Name identifies the variant for listings and results.
func (v Variant) Name() string {
	if v.Schema != nil {
		return v.Schema.Name()
	}
	return v.Raw
}

func (v Variant) matches(length int) bool {
	switch v.Match {
	case Exact:
		return length == v.Length
	case Longer:
		return length > v.Length
	default:
		return true
	}
}

// Decode runs the variant against a payload.
func (v Variant) Decode(payload []byte) (*schema.Record, error) {
	if v.Schema == nil {
		if len(payload) != 1 {
			return nil, &schema.InsufficientBytesError{Schema: v.Raw, MaskLength: 1, Input: len(payload)}
		}
		rec := schema.NewRecord()
		rec.Set(v.Raw, codec.UintValue(uint64(payload[0])))
		return rec, nil
	}
	return schema.Decode(payload, v.Schema)
}

// Format is one payload encoder generation with its variant table and the
// console conversion that goes with it.
type Format struct {
	Name        string
	Description string
	Variants    []Variant
	Converter   convert.Table
}

// Select picks the variant for port and payload length. Exact lengths are
// tried in ascending order before open-ended variants.
func (f *Format) Select(port uint8, length int) (Variant, error) {
	for _, v := range f.Variants {
		if v.Port == port && v.matches(length) {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%s: port %d length %d: %w", f.Name, port, length, ErrUnrecognized)
}

// Decode selects a variant and decodes the payload. An empty payload yields
// an empty record and a zero Variant.
func (f *Format) Decode(port uint8, payload []byte) (Variant, *schema.Record, error) {
	if len(payload) == 0 {
		return Variant{}, schema.NewRecord(), nil
	}
	v, err := f.Select(port, len(payload))
	if err != nil {
		return Variant{}, nil, err
	}
	rec, err := v.Decode(payload)
	if err != nil {
		return v, nil, err
	}
	return v, rec, nil
}

// Convert applies the format's console conversion to a copy of rec.
func (f *Format) Convert(port uint8, rec *schema.Record) *schema.Record {
	if f.Converter == nil {
		return rec.Clone()
	}
	return f.Converter.Apply(port, rec)
}

var (
	regMu    sync.RWMutex
	registry = map[string]*Format{}
)

// Register stores a format. Variants are ordered by port, then exact
// lengths ascending, then longer-than, then port-wide fallbacks.
func Register(f Format) {
	variants := append([]Variant(nil), f.Variants...)
	sort.SliceStable(variants, func(i, j int) bool {
		a, b := variants[i], variants[j]
		if a.Port != b.Port {
			return a.Port < b.Port
		}
		if a.Match != b.Match {
			return a.Match < b.Match
		}
		return a.Length < b.Length
	})
	f.Variants = variants

	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := registry[f.Name]; dup {
		panic(fmt.Sprintf("driver: format %q registered twice", f.Name))
	}
	registry[f.Name] = &f
}

// Lookup returns the format registered under name.
func Lookup(name string) (*Format, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("format %q: %w", name, ErrUnknownFormat)
	}
	return f, nil
}

// Names lists registered formats alphabetically.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
