// Package convert applies the console-side unit conversions and derived
// fields to a decoded record.
package convert

import (
	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
)

// Step mutates a record in place.
type Step interface {
	Apply(rec *schema.Record)
}

// Sum stores the total of Sources under Target. Missing sources count as
// zero. The result is unsigned when every present source is unsigned.
type Sum struct {
	Target  string
	Sources []string
}

func (s Sum) Apply(rec *schema.Record) {
	var total float64
	var utotal uint64
	unsigned := true
	for _, name := range s.Sources {
		v, ok := rec.Get(name)
		if !ok {
			continue
		}
		n, ok := v.Number()
		if !ok {
			continue
		}
		total += n
		if v.Kind() == codec.KindUint {
			utotal += v.Uint()
		} else {
			unsigned = false
		}
	}
	if unsigned {
		rec.Set(s.Target, codec.UintValue(utotal))
		return
	}
	rec.Set(s.Target, codec.FloatValue(total))
}

// Scale divides a numeric field by Divisor. Missing fields are left alone.
type Scale struct {
	Field   string
	Divisor float64
}

func (s Scale) Apply(rec *schema.Record) {
	v, ok := rec.Get(s.Field)
	if !ok || s.Divisor == 0 {
		return
	}
	n, ok := v.Number()
	if !ok {
		return
	}
	rec.Set(s.Field, codec.FloatValue(n/s.Divisor))
}

// When runs Steps only if Field is present and not zero.
type When struct {
	Field string
	Steps []Step
}

func (w When) Apply(rec *schema.Record) {
	v, ok := rec.Get(w.Field)
	if !ok || v.IsZero() {
		return
	}
	for _, step := range w.Steps {
		step.Apply(rec)
	}
}

// Table maps a port to the steps run for it.
type Table map[uint8][]Step

// Apply returns a converted copy of rec. The input record is not modified.
func (t Table) Apply(port uint8, rec *schema.Record) *schema.Record {
	out := rec.Clone()
	for _, step := range t[port] {
		step.Apply(out)
	}
	return out
}

// Pax is the derived visitor count: wifi plus ble.
var Pax = Sum{Target: "pax", Sources: []string{"wifi", "ble"}}
