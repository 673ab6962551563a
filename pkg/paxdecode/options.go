package paxdecode

import (
	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	internalopts "github.com/cyberman54/ESP32-Paxcounter/internal/options"
)

// Options configures decoding. The zero value decodes "packed" payloads
// and applies the console conversion.
type Options struct {
	// Format is a registered format name; empty selects "packed".
	Format string
	// Raw skips the console conversion.
	Raw bool
	// IncludeRaw adds the payload bytes and port to uplink output data.
	IncludeRaw bool
}

func (opts Options) format() (*driver.Format, error) {
	name, err := internalopts.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	return driver.Lookup(name)
}
