package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
)

var counters = MustNew("counters", F(codec.Uint16, "wifi"), F(codec.Uint16, "ble"))

func TestDecodeExactLength(t *testing.T) {
	require.Equal(t, 4, counters.MaskLength())
	rec, err := Decode([]byte{0x10, 0x00, 0x02, 0x01}, counters)
	require.NoError(t, err)
	require.Equal(t, []string{"wifi", "ble"}, rec.Names())

	wifi, ok := rec.Get("wifi")
	require.True(t, ok)
	require.Equal(t, uint64(16), wifi.Uint())
	ble, ok := rec.Get("ble")
	require.True(t, ok)
	require.Equal(t, uint64(0x0102), ble.Uint())
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	rec, err := Decode([]byte{0x10, 0x00, 0x02, 0x01, 0xFF}, counters)
	require.NoError(t, err)
	require.Equal(t, 2, rec.Len())
	ble, _ := rec.Get("ble")
	require.Equal(t, uint64(0x0102), ble.Uint())
}

func TestDecodeInsufficientBytes(t *testing.T) {
	rec, err := Decode([]byte{0x10, 0x00, 0x02}, counters)
	require.Nil(t, rec)
	require.ErrorIs(t, err, ErrInsufficientBytes)

	var short *InsufficientBytesError
	require.True(t, errors.As(err, &short))
	require.Equal(t, 4, short.MaskLength)
	require.Equal(t, 3, short.Input)
	require.Equal(t, "counters: mask length is 4 whereas input is 3", err.Error())
}

func TestDecodePositionalNames(t *testing.T) {
	s := MustNew("anon", F(codec.Uint8, ""), F(codec.Int8, "rssi"), F(codec.Uint8, ""))
	rec, err := Decode([]byte{1, 0xFF, 3}, s)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "rssi", "2"}, rec.Names())
	rssi, _ := rec.Get("rssi")
	require.Equal(t, int64(-1), rssi.Int())
}

func TestDecodeDuplicateNamesOverwrite(t *testing.T) {
	s := MustNew("dup", F(codec.Uint8, "a"), F(codec.Uint8, "b"), F(codec.Uint8, "a"))
	rec, err := Decode([]byte{1, 2, 3}, s)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, rec.Names())
	a, _ := rec.Get("a")
	require.Equal(t, uint64(3), a.Uint())
}

func TestDecodeNamedBitmap(t *testing.T) {
	s := MustNew("flags", Bitmap("flags", [8]string{"a", "b", "c", "d", "e", "f", "g", "h"}))
	rec, err := Decode([]byte{0b10000001}, s)
	require.NoError(t, err)
	v, ok := rec.Get("flags")
	require.True(t, ok)
	require.Equal(t, codec.KindFlags, v.Kind())

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	require.Equal(t, `{"flags":{"a":true,"b":false,"c":false,"d":false,"e":false,"f":false,"g":false,"h":true}}`, string(data))
}

func TestNewRejectsMalformedTables(t *testing.T) {
	_, err := New("", F(codec.Uint8, "x"))
	require.Error(t, err)

	_, err = New("empty")
	require.Error(t, err)

	_, err = New("zero", Field{Name: "x"})
	require.Error(t, err)

	names := [8]string{}
	_, err = New("badflags", Field{Codec: codec.Uint8, Name: "x", Flags: &names})
	require.Error(t, err)

	require.Panics(t, func() { MustNew("empty") })
}

func TestRecordJSONKeepsOrder(t *testing.T) {
	s := MustNew("order", F(codec.Uint8, "z"), F(codec.Uint8, "a"), F(codec.Version, "version"))
	payload := append([]byte{9, 8}, []byte("2.0.1\x00\x00\x00\x00\x00")...)
	rec, err := Decode(payload, s)
	require.NoError(t, err)
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	require.Equal(t, `{"z":9,"a":8,"version":"2.0.1"}`, string(data))
}

func TestRecordClone(t *testing.T) {
	rec, err := Decode([]byte{1, 0, 2, 0}, counters)
	require.NoError(t, err)
	cp := rec.Clone()
	cp.Set("pax", codec.UintValue(3))
	require.False(t, rec.Has("pax"))
	require.True(t, cp.Has("pax"))
	require.Equal(t, map[string]any{"wifi": uint64(1), "ble": uint64(2)}, rec.Map())
}

func TestEmptyRecordJSON(t *testing.T) {
	data, err := json.Marshal(NewRecord())
	require.NoError(t, err)
	require.Equal(t, `{}`, string(data))
	var nilRec *Record
	require.Equal(t, 0, nilRec.Len())
	require.Empty(t, nilRec.Names())
}
