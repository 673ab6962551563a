// Package plain registers the "plain" encoder, which writes big-endian
// integers without scaling. Scaling happens in the converter.
package plain

import (
	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
	"github.com/cyberman54/ESP32-Paxcounter/internal/convert"
	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
)

// Name is the registry key of the format.
const Name = "plain"

func gpsFields() []schema.Field {
	return []schema.Field{
		schema.F(codec.Int32BE, "latitude"), schema.F(codec.Int32BE, "longitude"),
		schema.F(codec.Uint8, "sats"), schema.F(codec.Uint16BE, "hdop"), schema.F(codec.Uint16BE, "altitude"),
	}
}

var (
	counterWifi    = schema.MustNew("counter_wifi", schema.F(codec.Uint16BE, "wifi"))
	counterWifiBle = schema.MustNew("counter_wifi_ble", schema.F(codec.Uint16BE, "wifi"), schema.F(codec.Uint16BE, "ble"))

	counterWifiGPS = schema.MustNew("counter_wifi_gps",
		append([]schema.Field{schema.F(codec.Uint16BE, "wifi")}, gpsFields()...)...)
	counterWifiBleGPS = schema.MustNew("counter_wifi_ble_gps",
		append([]schema.Field{schema.F(codec.Uint16BE, "wifi"), schema.F(codec.Uint16BE, "ble")}, gpsFields()...)...)

	status = schema.MustNew("status",
		schema.F(codec.Uint16BE, "voltage"), schema.F(codec.Uint64BE, "uptime"), schema.F(codec.Uint8, "cputemp"),
		schema.F(codec.Uint32BE, "memory"), schema.F(codec.Uint8, "reset0"), schema.F(codec.Uint32BE, "restarts"))

	gps = schema.MustNew("gps", gpsFields()...)

	button = schema.MustNew("button", schema.F(codec.Uint8, "button"))

	sensor = schema.MustNew("bme",
		schema.F(codec.Uint16BE, "temperature"), schema.F(codec.Uint16BE, "pressure"),
		schema.F(codec.Uint16BE, "humidity"), schema.F(codec.Uint16BE, "air"))

	battery = schema.MustNew("battery", schema.F(codec.Uint16BE, "voltage"))

	timeAnswer = schema.MustNew("time_answer", schema.F(codec.Uint32BE, "time"), schema.F(codec.Uint8, "timestatus"))
)

// Variants is the plain variant table.
var Variants = []driver.Variant{
	{Port: 1, Match: driver.Exact, Length: 2, Schema: counterWifi},
	{Port: 1, Match: driver.Exact, Length: 4, Schema: counterWifiBle},
	{Port: 1, Match: driver.Exact, Length: 15, Schema: counterWifiGPS},
	{Port: 1, Match: driver.Exact, Length: 17, Schema: counterWifiBleGPS},
	{Port: 2, Match: driver.Exact, Length: 20, Schema: status},
	{Port: 4, Match: driver.Any, Schema: gps},
	{Port: 5, Match: driver.Any, Schema: button},
	{Port: 7, Match: driver.Any, Schema: sensor},
	{Port: 8, Match: driver.Any, Schema: battery},
	{Port: 9, Match: driver.Exact, Length: 1, Raw: "timesync_seqno"},
	{Port: 9, Match: driver.Exact, Length: 5, Schema: timeAnswer},
}

var scalePosition = convert.When{Field: "hdop", Steps: []convert.Step{
	convert.Scale{Field: "hdop", Divisor: 100},
	convert.Scale{Field: "latitude", Divisor: 1e6},
	convert.Scale{Field: "longitude", Divisor: 1e6},
}}

// Converter adds the pax count and scales position fixes.
var Converter = convert.Table{
	1: {convert.Pax, scalePosition},
	4: {scalePosition},
}

func init() {
	driver.Register(driver.Format{
		Name:        Name,
		Description: "PLAIN encoder, big-endian integers",
		Variants:    Variants,
		Converter:   Converter,
	})
}
