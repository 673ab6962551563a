package uplink

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyberman54/ESP32-Paxcounter/internal/testutil"
)

func TestParseLineHex(t *testing.T) {
	up, err := ParseLine("1 0C00 1E00")
	require.NoError(t, err)
	require.Equal(t, uint8(1), up.Port)
	require.Equal(t, []byte{0x0C, 0x00, 0x1E, 0x00}, up.Bytes)
}

func TestParseLineBase64(t *testing.T) {
	up, err := Parse("  9 Kg== ")
	require.NoError(t, err)
	require.Equal(t, uint8(9), up.Port)
	require.Equal(t, []byte{0x2A}, up.Bytes)
}

func TestParseLineEmptyPayload(t *testing.T) {
	up, err := ParseLine("4")
	require.NoError(t, err)
	require.Equal(t, uint8(4), up.Port)
	require.Empty(t, up.Bytes)
}

func TestParseLineErrors(t *testing.T) {
	_, err := Parse("   ")
	require.ErrorIs(t, err, ErrEmptyLine)

	_, err = ParseLine("256 00")
	require.Error(t, err)

	_, err = ParseLine("x 00")
	require.Error(t, err)

	_, err = ParseLine("1 ***")
	require.Error(t, err)
}

func TestParseJSONFixture(t *testing.T) {
	var msg Message
	testutil.LoadJSON(t, "uplink/tts_uplink.json", &msg)
	up, err := msg.Uplink()
	require.NoError(t, err)
	require.Equal(t, uint8(1), up.Port)
	require.Equal(t, []byte{12, 0, 30, 0}, up.Bytes)
}

func TestParseJSONFRMPayload(t *testing.T) {
	up, err := Parse(`{"f_port": 2, "frm_payload": "DAAeAA=="}`)
	require.NoError(t, err)
	require.Equal(t, uint8(2), up.Port)
	require.Equal(t, []byte{12, 0, 30, 0}, up.Bytes)
}

func TestParseJSONErrors(t *testing.T) {
	for _, in := range []string{
		`{"bytes": [1]}`,
		`{"fPort": 300, "bytes": [1]}`,
		`{"fPort": 1, "bytes": [256]}`,
		`{"fPort": 1, "frm_payload": "!!"}`,
		`{"fPort": 1,`,
	} {
		if _, err := ParseJSON([]byte(in)); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestDecodeHexFixture(t *testing.T) {
	raw := testutil.LoadHex(t, "uplink/status.hex")
	data, err := DecodeHex(raw)
	require.NoError(t, err)
	require.Len(t, data, 17)
	require.Equal(t, "3610201C0000000000002D40E201000102", NormalizeHex(raw))
}

func TestDecodeHexSeparators(t *testing.T) {
	data, err := DecodeHex(" |0x0C00_1E00| ")
	require.NoError(t, err)
	require.Equal(t, []byte{0x0C, 0x00, 0x1E, 0x00}, data)

	_, err = DecodeHex("ABC")
	require.Error(t, err)
}

func TestDecodePayloadPrefersHex(t *testing.T) {
	// "AAAA" is valid in both encodings.
	data, err := DecodePayload("AAAA")
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xAA}, data)

	data, err = DecodePayload("")
	require.NoError(t, err)
	require.Empty(t, data)
}
