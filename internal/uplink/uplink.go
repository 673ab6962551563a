// Package uplink turns text and JSON uplink messages into a port and raw
// payload bytes.
package uplink

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrEmptyLine is returned for blank input lines.
var ErrEmptyLine = errors.New("empty uplink line")

// Uplink is a LoRaWAN application payload with its port.
type Uplink struct {
	Port  uint8
	Bytes []byte
}

// Message is the subset of a network server uplink object the decoder
// reads. Either Bytes or FRMPayload must be set.
type Message struct {
	FPort      *int   `json:"fPort"`
	FPortAlt   *int   `json:"f_port"`
	Bytes      []int  `json:"bytes"`
	FRMPayload string `json:"frm_payload"`
}

// Parse accepts either a JSON object or a "<port> <payload>" line.
func Parse(line string) (Uplink, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Uplink{}, ErrEmptyLine
	}
	if strings.HasPrefix(line, "{") {
		return ParseJSON([]byte(line))
	}
	return ParseLine(line)
}

// ParseLine parses "<port> <payload>" where payload is hex or base64. The
// payload may be omitted for an empty uplink.
func ParseLine(line string) (Uplink, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Uplink{}, ErrEmptyLine
	}
	port, err := ParsePort(fields[0])
	if err != nil {
		return Uplink{}, err
	}
	payload, err := DecodePayload(strings.Join(fields[1:], ""))
	if err != nil {
		return Uplink{}, err
	}
	return Uplink{Port: port, Bytes: payload}, nil
}

// ParseJSON reads an uplink object. "bytes" wins over "frm_payload".
func ParseJSON(data []byte) (Uplink, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Uplink{}, fmt.Errorf("decode uplink json: %w", err)
	}
	return msg.Uplink()
}

// Uplink validates the message and extracts port and payload.
func (m Message) Uplink() (Uplink, error) {
	portPtr := m.FPort
	if portPtr == nil {
		portPtr = m.FPortAlt
	}
	if portPtr == nil {
		return Uplink{}, errors.New("uplink has no fPort")
	}
	if *portPtr < 0 || *portPtr > 255 {
		return Uplink{}, fmt.Errorf("fPort %d out of range", *portPtr)
	}
	out := Uplink{Port: uint8(*portPtr)}
	switch {
	case m.Bytes != nil:
		out.Bytes = make([]byte, len(m.Bytes))
		for i, b := range m.Bytes {
			if b < 0 || b > 255 {
				return Uplink{}, fmt.Errorf("bytes[%d] = %d is not a byte", i, b)
			}
			out.Bytes[i] = byte(b)
		}
	case m.FRMPayload != "":
		payload, err := base64.StdEncoding.DecodeString(m.FRMPayload)
		if err != nil {
			return Uplink{}, fmt.Errorf("decode frm_payload: %w", err)
		}
		out.Bytes = payload
	default:
		out.Bytes = []byte{}
	}
	return out, nil
}

// ParsePort parses a decimal LoRaWAN port.
func ParsePort(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	return uint8(n), nil
}

// DecodePayload decodes hex (optionally 0x-prefixed, with spaces, '|' or
// '_' separators) and falls back to standard base64.
func DecodePayload(input string) ([]byte, error) {
	clean := stripSeparators(input)
	if clean == "" {
		return []byte{}, nil
	}
	if h := trimHexPrefix(clean); isHex(h) && len(h)%2 == 0 {
		return DecodeHex(h)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("payload is neither hex nor base64: %w", err)
	}
	return data, nil
}

// DecodeHex decodes a hex payload after stripping separators.
func DecodeHex(input string) ([]byte, error) {
	clean := trimHexPrefix(stripSeparators(input))
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex payload must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

// NormalizeHex returns the upper-case hex digits of input.
func NormalizeHex(input string) string {
	return strings.ToUpper(trimHexPrefix(stripSeparators(input)))
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return false
		}
	}
	return true
}

func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
