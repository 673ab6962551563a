// Package options validates user supplied decoder settings.
package options

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = "packed"

// ParseFormat normalizes a format name ("PACKED_V3", " packed v3 ") and
// checks that it is registered. An empty name selects DefaultFormat.
func ParseFormat(input string) (string, error) {
	name := normalizeName(input)
	if name == "" {
		name = DefaultFormat
	}
	if _, err := driver.Lookup(name); err != nil {
		return "", fmt.Errorf("%w (known: %s)", err, strings.Join(driver.Names(), ", "))
	}
	return name, nil
}

// ParseLogLevel maps a level name onto logrus. An empty name is info.
func ParseLogLevel(input string) (logrus.Level, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(input)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return lvl, nil
}

// ParseBool accepts the strconv spellings plus yes/no and on/off.
func ParseBool(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(input))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", input)
	}
	return v, nil
}

func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			pendingDash = b.Len() > 0
		default:
			if pendingDash {
				b.WriteByte('-')
				pendingDash = false
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
