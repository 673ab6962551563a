// Package serialized registers the lora-serialization based "serialized"
// encoder of early firmware.
package serialized

import (
	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
	"github.com/cyberman54/ESP32-Paxcounter/internal/convert"
	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
)

// Name is the registry key of the format.
const Name = "serialized"

// Flags uses the library's generic bit names.
var Flags = [8]string{"a", "b", "c", "d", "e", "f", "g", "h"}

var (
	counter = schema.MustNew("counter",
		schema.F(codec.Uint16, "wifi"), schema.F(codec.Uint16, "ble"))

	counterGPS = schema.MustNew("counter_gps",
		schema.F(codec.Uint16, "wifi"), schema.F(codec.Uint16, "ble"),
		schema.F(codec.Coordinates, "coords"), schema.F(codec.Uint8, "sats"),
		schema.F(codec.Uint16, "hdop"), schema.F(codec.Uint16, "altitude"))

	config = schema.MustNew("config",
		schema.F(codec.Uint8, "lorasf"), schema.F(codec.Uint16, "rssilimit"),
		schema.F(codec.Uint8, "sendcycle"), schema.F(codec.Uint8, "wifichancycle"),
		schema.F(codec.Uint8, "blescantime"), schema.F(codec.Uint8, "rgblum"),
		schema.Bitmap("flags", Flags))

	// The status frame is 10 bytes long; the last two are not decoded.
	status = schema.MustNew("status",
		schema.F(codec.Uint16, "voltage"), schema.F(codec.Unixtime, "uptime"),
		schema.F(codec.Temperature, "cputemp"))
)

// Variants is the serialized variant table.
var Variants = []driver.Variant{
	{Port: 1, Match: driver.Exact, Length: 4, Schema: counter},
	{Port: 1, Match: driver.Longer, Length: 4, Schema: counterGPS},
	{Port: 2, Match: driver.Exact, Length: 8, Schema: config},
	{Port: 2, Match: driver.Exact, Length: 10, Schema: status},
}

// Converter adds the pax count to counter payloads.
var Converter = convert.Table{
	1: {convert.Pax},
}

func init() {
	driver.Register(driver.Format{
		Name:        Name,
		Description: "SERIALIZED encoder (lora-serialization)",
		Variants:    Variants,
		Converter:   Converter,
	})
}
