package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnsignedPacking(t *testing.T) {
	v, err := Uint16.Decode([]byte{0x10, 0x00})
	require.NoError(t, err)
	require.Equal(t, KindUint, v.Kind())
	require.Equal(t, uint64(16), v.Uint())

	v, err = Uint32.Decode([]byte{0x01, 0x02, 0x03, 0x04})
	require.NoError(t, err)
	require.Equal(t, uint64(0x04030201), v.Uint())

	v, err = Uint64.Decode([]byte{0, 0, 0, 0, 0x01, 0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, uint64(1)<<32, v.Uint())
}

func TestSignedPacking(t *testing.T) {
	cases := []struct {
		codec Codec
		in    []byte
		want  int64
	}{
		{Int16, []byte{0x10, 0x00}, 16},
		{Int16, []byte{0xFF, 0x00}, 255},
		{Int16, []byte{0xFF, 0xFF}, -1},
		{Int16, []byte{0x00, 0x80}, -32768},
		{Int8, []byte{0x7F}, 127},
		{Int8, []byte{0x80}, -128},
		{Int8, []byte{0xB5}, -75},
		{Int32, []byte{0xFF, 0xFF, 0xFF, 0x7F}, 2147483647},
		{Int32, []byte{0x00, 0x00, 0x00, 0x80}, -2147483648},
	}
	for _, tc := range cases {
		v, err := tc.codec.Decode(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, v.Int(), "%s % X", tc.codec.Name(), tc.in)
	}
}

func TestLengthMismatch(t *testing.T) {
	for _, c := range []Codec{Uint8, Uint16, Int32, Version, Float, Bitmap, Coordinates, Uint64BE} {
		_, err := c.Decode(make([]byte, c.Width()+1))
		require.ErrorIs(t, err, ErrLengthMismatch, c.Name())
		_, err = c.Decode(nil)
		require.True(t, errors.Is(err, ErrLengthMismatch), c.Name())
	}
	var zero Codec
	_, err := zero.Decode(nil)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestLatLng(t *testing.T) {
	// 52123456 = 0x031B5740
	v, err := LatLng.Decode([]byte{0x40, 0x57, 0x1B, 0x03})
	require.NoError(t, err)
	require.Equal(t, 52.123456, v.Float())

	v, err = LatLng.Decode([]byte{0xC0, 0xA8, 0xE4, 0xFC})
	require.NoError(t, err)
	require.Equal(t, -52.123456, v.Float())
}

func TestScaledUnsigned(t *testing.T) {
	v, err := Hdop.Decode([]byte{0x7B, 0x00})
	require.NoError(t, err)
	require.Equal(t, 1.23, v.Float())

	v, err = UFloat.Decode([]byte{0x10, 0x27})
	require.NoError(t, err)
	require.Equal(t, 100.0, v.Float())

	v, err = Pressure.Decode([]byte{0x8D, 0x27})
	require.NoError(t, err)
	require.Equal(t, 1012.5, v.Float())

	v, err = Altitude.Decode([]byte{0x9C, 0xFF})
	require.NoError(t, err)
	require.Equal(t, int64(-100), v.Int())
}

func TestFloat(t *testing.T) {
	cases := []struct {
		in   []byte
		want float64
	}{
		{[]byte{0x00, 0x64}, 1.00},
		{[]byte{0x09, 0x29}, 23.45},
		{[]byte{0xFF, 0x9C}, -1.00},
		{[]byte{0xFF, 0xFF}, -0.01},
		{[]byte{0xF6, 0xD7}, -23.45},
		{[]byte{0x80, 0x00}, 0},
		{[]byte{0x80, 0x01}, -327.67},
	}
	for _, tc := range cases {
		v, err := Float.Decode(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, v.Float(), "% X", tc.in)
	}
}

func TestFloatDeterministic(t *testing.T) {
	in := []byte{0xF6, 0xD7}
	a, err := Float.Decode(in)
	require.NoError(t, err)
	b, err := Float.Decode(in)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestTemperatureIsUnrounded(t *testing.T) {
	v, err := Temperature.Decode([]byte{0xF6, 0xD7})
	require.NoError(t, err)
	require.Equal(t, float64(-2345)/1e2, v.Float())
}

func TestVersion(t *testing.T) {
	v, err := Version.Decode([]byte{'3', '.', '4', '.', '1', 0, 'x', 'y', 0, 0})
	require.NoError(t, err)
	require.Equal(t, KindString, v.Kind())
	require.Equal(t, "3.4.1", v.Str())

	v, err = Version.Decode([]byte("1234567890"))
	require.NoError(t, err)
	require.Equal(t, "1234567890", v.Str())
}

func TestBitmap(t *testing.T) {
	v, err := Bitmap.Decode([]byte{0b10000001})
	require.NoError(t, err)
	require.Equal(t, KindBits, v.Kind())
	require.Equal(t, Bits{true, false, false, false, false, false, false, true}, v.Bits())

	flags := v.Bits().Named([8]string{"a", "b", "c", "d", "e", "f", "g", "h"})
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, flags.Names())
	for _, name := range []string{"a", "h"} {
		set, ok := flags.Get(name)
		require.True(t, ok)
		require.True(t, set, name)
	}
	for _, name := range []string{"b", "c", "d", "e", "f", "g"} {
		set, ok := flags.Get(name)
		require.True(t, ok)
		require.False(t, set, name)
	}
	_, ok := flags.Get("z")
	require.False(t, ok)
}

func TestBitmapDuplicateNames(t *testing.T) {
	v, err := Bitmap.Decode([]byte{0b00000010})
	require.NoError(t, err)
	flags := v.Bits().Named([8]string{"adr", "screensaver", "screen", "countermode", "blescan", "antenna", "reserved", "reserved"})
	require.Len(t, flags.Names(), 7)
	set, _ := flags.Get("reserved")
	require.False(t, set)

	data, err := json.Marshal(FlagsValue(flags))
	require.NoError(t, err)
	require.JSONEq(t, `{"adr":false,"screensaver":false,"screen":false,"countermode":false,"blescan":false,"antenna":false,"reserved":false}`, string(data))
}

func TestSerializedCodecs(t *testing.T) {
	v, err := Coordinates.Decode([]byte{0x40, 0x57, 0x1B, 0x03, 0x80, 0x96, 0x98, 0x00})
	require.NoError(t, err)
	require.Equal(t, Coords{Lat: 52.123456, Lng: 10}, v.Coords())

	v, err = Unixtime.Decode([]byte{0x00, 0xE1, 0xF5, 0x05})
	require.NoError(t, err)
	require.Equal(t, uint64(100000000), v.Uint())

	v, err = Humidity.Decode([]byte{0x39, 0x12})
	require.NoError(t, err)
	require.Equal(t, 46.65, v.Float())
}

func TestBigEndian(t *testing.T) {
	v, err := Uint16BE.Decode([]byte{0x01, 0x02})
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102), v.Uint())

	v, err = Int32BE.Decode([]byte{0xFF, 0xFF, 0xFF, 0xFE})
	require.NoError(t, err)
	require.Equal(t, int64(-2), v.Int())

	v, err = Uint64BE.Decode([]byte{0, 0, 0, 0, 0, 0, 0x0E, 0x10})
	require.NoError(t, err)
	require.Equal(t, uint64(3600), v.Uint())
}

func TestValueJSON(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{UintValue(7), `7`},
		{IntValue(-7), `-7`},
		{FloatValue(1.5), `1.5`},
		{StringValue("1.2.3"), `"1.2.3"`},
		{CoordsValue(Coords{Lat: 1.5, Lng: -2}), `[1.5,-2]`},
		{Value{}, `null`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.v)
		require.NoError(t, err)
		require.Equal(t, tc.want, string(data))
	}
}
