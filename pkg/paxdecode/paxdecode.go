// Package paxdecode decodes ESP32 paxcounter LoRaWAN uplink payloads into
// named fields.
package paxdecode

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	_ "github.com/cyberman54/ESP32-Paxcounter/internal/driver/packed"     // register format
	_ "github.com/cyberman54/ESP32-Paxcounter/internal/driver/packedv3"   // register format
	_ "github.com/cyberman54/ESP32-Paxcounter/internal/driver/plain"      // register format
	_ "github.com/cyberman54/ESP32-Paxcounter/internal/driver/serialized" // register format
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
	"github.com/cyberman54/ESP32-Paxcounter/internal/uplink"
)

// Result captures the outcome of Decode.
type Result struct {
	Format string
	Port   uint8
	// Schema names the variant that decoded the payload. It is empty for
	// empty and unrecognized payloads.
	Schema     string
	Recognized bool
	Converted  bool
	RawHex     string
	ByteCount  int
	Fields     map[string]any

	record       *schema.Record
	unrecognized error
}

// FieldNames lists the decoded fields in payload order.
func (r Result) FieldNames() []string {
	return r.record.Names()
}

// String renders the result as indented JSON with fields in payload order.
func (r Result) String() string {
	rec := r.record
	if rec == nil {
		rec = schema.NewRecord()
	}
	summary := struct {
		Format     string         `json:"format"`
		Port       uint8          `json:"port"`
		Schema     string         `json:"schema,omitempty"`
		Recognized bool           `json:"recognized"`
		ByteCount  int            `json:"byte_count"`
		RawHex     string         `json:"raw_hex,omitempty"`
		Fields     *schema.Record `json:"fields"`
	}{r.Format, r.Port, r.Schema, r.Recognized, r.ByteCount, r.RawHex, rec}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("format: %s port:%d bytes:%d raw:%s (marshal error: %v)", r.Format, r.Port, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// Decode decodes a payload with the default packed format and the console
// conversion applied.
func Decode(payload []byte, port uint8) (Result, error) {
	return DecodeWithOptions(payload, port, Options{})
}

// DecodeWithOptions decodes a payload with custom options. A payload that
// matches no variant is not an error: the result has Recognized unset and
// no fields.
func DecodeWithOptions(payload []byte, port uint8, opts Options) (Result, error) {
	f, err := opts.format()
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Format:    f.Name,
		Port:      port,
		RawHex:    strings.ToUpper(hex.EncodeToString(payload)),
		ByteCount: len(payload),
		Fields:    map[string]any{},
		record:    schema.NewRecord(),
	}

	v, rec, err := f.Decode(port, payload)
	if errors.Is(err, driver.ErrUnrecognized) {
		result.unrecognized = err
		return result, nil
	}
	if err != nil {
		return result, err
	}
	result.Recognized = true
	result.Schema = v.Name()
	if !opts.Raw && v.Name() != "" {
		rec = f.Convert(port, rec)
		result.Converted = true
	}
	result.record = rec
	result.Fields = rec.Map()
	return result, nil
}

// DecodeHex decodes a hex payload. Whitespace, '|' and '_' separators and a
// 0x prefix are ignored.
func DecodeHex(raw string, port uint8, opts Options) (Result, error) {
	data, err := uplink.DecodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	result, err := DecodeWithOptions(data, port, opts)
	result.RawHex = uplink.NormalizeHex(raw)
	return result, err
}

// Formats lists the registered payload formats.
func Formats() []string {
	return driver.Names()
}
