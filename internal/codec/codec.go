// Package codec holds the fixed-width field decoders used by the paxcounter
// payload schemas.
package codec

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrLengthMismatch signals that a codec was handed a slice whose length
// differs from its width. Schema tables that slice correctly never see it.
var ErrLengthMismatch = errors.New("codec length mismatch")

// Codec decodes exactly Width bytes into a Value.
type Codec struct {
	name  string
	width int
	fn    func([]byte) Value
}

// Name returns the codec identifier used in schema listings.
func (c Codec) Name() string { return c.name }

// Width returns the number of bytes the codec consumes.
func (c Codec) Width() int { return c.width }

// IsBitmap reports whether the codec yields raw bits that a schema may name.
func (c Codec) IsBitmap() bool { return c.name == bitmapName }

// Decode validates the slice length and decodes it.
func (c Codec) Decode(b []byte) (Value, error) {
	if c.fn == nil {
		return Value{}, fmt.Errorf("codec %q is not initialised: %w", c.name, ErrLengthMismatch)
	}
	if len(b) != c.width {
		return Value{}, fmt.Errorf("%s must have exactly %d bytes, got %d: %w", c.name, c.width, len(b), ErrLengthMismatch)
	}
	return c.fn(b), nil
}

const bitmapName = "bitmap"

var (
	Uint8  = Codec{"uint8", 1, func(b []byte) Value { return UintValue(bytesToUint(b)) }}
	Uint16 = Codec{"uint16", 2, func(b []byte) Value { return UintValue(bytesToUint(b)) }}
	Uint32 = Codec{"uint32", 4, func(b []byte) Value { return UintValue(bytesToUint(b)) }}
	Uint64 = Codec{"uint64", 8, func(b []byte) Value { return UintValue(bytesToUint(b)) }}

	Int8  = Codec{"int8", 1, func(b []byte) Value { return IntValue(bytesToInt(b)) }}
	Int16 = Codec{"int16", 2, func(b []byte) Value { return IntValue(bytesToInt(b)) }}
	Int32 = Codec{"int32", 4, func(b []byte) Value { return IntValue(bytesToInt(b)) }}

	// Version is a NUL padded ASCII firmware version string.
	Version = Codec{"version", 10, decodeVersion}

	// LatLng is a signed 32-bit coordinate in micro degrees.
	LatLng = Codec{"latLng", 4, func(b []byte) Value {
		return FloatValue(roundTo(float64(bytesToInt(b))/1e6, 6))
	}}

	Hdop = Codec{"hdop", 2, func(b []byte) Value {
		return FloatValue(roundTo(float64(bytesToUint(b))/100, 2))
	}}

	// Altitude is transmitted in whole metres. The firmware can be built
	// with a quarter metre resolution (value/4 - 1000) but no encoder in
	// service uses it.
	Altitude = Codec{"altitude", 2, func(b []byte) Value { return IntValue(bytesToInt(b)) }}

	// Uptime is the device uptime in seconds.
	Uptime = Codec{"uptime", 8, func(b []byte) Value { return UintValue(bytesToUint(b)) }}

	// Float is the sensor fixed point format: high byte first, sign in the
	// top bit, hundredths.
	Float = Codec{"float", 2, func(b []byte) Value {
		return FloatValue(roundTo(float64(fixedPoint(b))/100, 2))
	}}

	UFloat = Codec{"ufloat", 2, func(b []byte) Value {
		return FloatValue(roundTo(float64(bytesToUint(b))/100, 2))
	}}

	// Pressure is in tenths of hPa.
	Pressure = Codec{"pressure", 2, func(b []byte) Value {
		return FloatValue(roundTo(float64(bytesToUint(b))/10, 1))
	}}

	// Bitmap exposes one byte as eight flags, most significant bit first.
	Bitmap = Codec{bitmapName, 1, decodeBitmap}
)

// Codecs of the serialized encoder.
var (
	Unixtime = Codec{"unixtime", 4, func(b []byte) Value { return UintValue(bytesToUint(b)) }}

	// Temperature shares the Float bit layout but is not rounded.
	Temperature = Codec{"temperature", 2, func(b []byte) Value {
		return FloatValue(float64(fixedPoint(b)) / 1e2)
	}}

	Humidity = Codec{"humidity", 2, func(b []byte) Value {
		return FloatValue(float64(bytesToUint(b)) / 1e2)
	}}

	// Coordinates packs latitude and longitude as two signed 32-bit values.
	Coordinates = Codec{"coords", 8, func(b []byte) Value {
		return CoordsValue(Coords{
			Lat: float64(bytesToInt(b[:4])) / 1e6,
			Lng: float64(bytesToInt(b[4:])) / 1e6,
		})
	}}
)

// Big endian integers of the plain encoder.
var (
	Uint16BE = Codec{"uint16be", 2, func(b []byte) Value { return UintValue(bigEndian(b)) }}
	Uint32BE = Codec{"uint32be", 4, func(b []byte) Value { return UintValue(bigEndian(b)) }}
	Uint64BE = Codec{"uint64be", 8, func(b []byte) Value { return UintValue(bigEndian(b)) }}
	Int32BE  = Codec{"int32be", 4, func(b []byte) Value { return IntValue(int64(int32(bigEndian(b)))) }}
)

// bytesToUint packs byte x at bit offset 8*x, so byte 0 is least significant.
func bytesToUint(b []byte) uint64 {
	var v uint64
	for x := 0; x < len(b); x++ {
		v |= uint64(b[x]) << (8 * x)
	}
	return v
}

// bytesToInt applies two's complement correction to bytesToUint.
func bytesToInt(b []byte) int64 {
	v := int64(bytesToUint(b))
	bits := 8 * len(b)
	if v > int64(1)<<(bits-1)-1 {
		v -= int64(1) << bits
	}
	return v
}

func bigEndian(b []byte) uint64 {
	var v uint64
	for _, by := range b {
		v = v<<8 | uint64(by)
	}
	return v
}

// fixedPoint decodes the 16-bit signed layout used by Float and
// Temperature. For negative values every bit is inverted, then the bits
// from the least significant end up to and including the first set bit
// are restored. The sign bit stays inverted.
func fixedPoint(b []byte) int64 {
	raw := uint16(b[0])<<8 | uint16(b[1])
	if b[0]&0x80 == 0 {
		return int64(raw)
	}
	mag := ^raw
	for bit := 0; bit < 15; bit++ {
		mask := uint16(1) << bit
		mag ^= mask
		if raw&mask != 0 {
			break
		}
	}
	return -int64(mag)
}

func decodeVersion(b []byte) Value {
	s := string(b)
	if idx := strings.IndexByte(s, 0x00); idx >= 0 {
		s = s[:idx]
	}
	return StringValue(s)
}

func decodeBitmap(b []byte) Value {
	var bits Bits
	for i := 0; i < 8; i++ {
		bits[i] = b[0]&(0x80>>i) != 0
	}
	return BitsValue(bits)
}

func roundTo(value float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	r := math.Round(value*pow) / pow
	if r == 0 {
		return 0
	}
	return r
}
