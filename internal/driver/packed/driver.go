// Package packed registers the "packed" payload encoder used by the TTN v2
// console decoder.
package packed

import (
	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
	"github.com/cyberman54/ESP32-Paxcounter/internal/convert"
	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
)

// Name is the registry key of the format.
const Name = "packed"

const (
	portCounter  = 1
	portStatus   = 2
	portConfig   = 3
	portGPS      = 4
	portButton   = 5
	portBeacon   = 6
	portSensor   = 7
	portBattery  = 8
	portTimesync = 9
)

var (
	// ConfigFlags names the bits of the config flags byte.
	ConfigFlags = [8]string{"adr", "screensaver", "screen", "countermode", "blescan", "antenna", "filter", "alarm"}
	// PayloadMask names the bits of the payload mask byte.
	PayloadMask = [8]string{"gps", "alarm", "bme", "counter", "sensor1", "sensor2", "sensor3", "battery"}
)

// Schemas shared with later encoder generations.
var (
	CounterWifi = schema.MustNew("counter_wifi",
		schema.F(codec.Uint16, "wifi"))
	CounterWifiBle = schema.MustNew("counter_wifi_ble",
		schema.F(codec.Uint16, "wifi"), schema.F(codec.Uint16, "ble"))
	CounterWifiGPS = schema.MustNew("counter_wifi_gps",
		schema.F(codec.Uint16, "wifi"),
		schema.F(codec.LatLng, "latitude"), schema.F(codec.LatLng, "longitude"),
		schema.F(codec.Uint8, "sats"), schema.F(codec.Hdop, "hdop"), schema.F(codec.Altitude, "altitude"))
	CounterWifiBleGPS = schema.MustNew("counter_wifi_ble_gps",
		schema.F(codec.Uint16, "wifi"), schema.F(codec.Uint16, "ble"),
		schema.F(codec.LatLng, "latitude"), schema.F(codec.LatLng, "longitude"),
		schema.F(codec.Uint8, "sats"), schema.F(codec.Hdop, "hdop"), schema.F(codec.Altitude, "altitude"))

	status = schema.MustNew("status",
		schema.F(codec.Uint16, "voltage"), schema.F(codec.Uptime, "uptime"), schema.F(codec.Uint8, "cputemp"),
		schema.F(codec.Uint32, "memory"), schema.F(codec.Uint8, "reset0"), schema.F(codec.Uint8, "reset1"))

	config = schema.MustNew("config",
		schema.F(codec.Uint8, "lorasf"), schema.F(codec.Uint8, "txpower"), schema.F(codec.Int16, "rssilimit"),
		schema.F(codec.Uint8, "sendcycle"), schema.F(codec.Uint8, "wifichancycle"), schema.F(codec.Uint8, "blescantime"),
		schema.F(codec.Uint8, "rgblum"),
		schema.Bitmap("flags", ConfigFlags), schema.Bitmap("payloadmask", PayloadMask),
		schema.F(codec.Version, "version"))

	GPS = schema.MustNew("gps",
		schema.F(codec.LatLng, "latitude"), schema.F(codec.LatLng, "longitude"),
		schema.F(codec.Uint8, "sats"), schema.F(codec.Hdop, "hdop"), schema.F(codec.Altitude, "altitude"))

	Button = schema.MustNew("button", schema.F(codec.Uint8, "button"))

	beacon = schema.MustNew("beacon", schema.F(codec.Int8, "rssi"), schema.F(codec.Uint8, "beacon"))

	Sensor = schema.MustNew("bme",
		schema.F(codec.Float, "temperature"), schema.F(codec.Pressure, "pressure"),
		schema.F(codec.UFloat, "humidity"), schema.F(codec.UFloat, "air"))

	Battery = schema.MustNew("battery", schema.F(codec.Uint16, "voltage"))

	TimeAnswer = schema.MustNew("time_answer", schema.F(codec.Uint32, "time"), schema.F(codec.Uint8, "timestatus"))
)

// Variants is the packed variant table.
var Variants = []driver.Variant{
	{Port: portCounter, Match: driver.Exact, Length: 2, Schema: CounterWifi},
	{Port: portCounter, Match: driver.Exact, Length: 4, Schema: CounterWifiBle},
	{Port: portCounter, Match: driver.Exact, Length: 15, Schema: CounterWifiGPS},
	{Port: portCounter, Match: driver.Exact, Length: 17, Schema: CounterWifiBleGPS},
	{Port: portStatus, Match: driver.Exact, Length: 17, Schema: status},
	{Port: portConfig, Match: driver.Any, Schema: config},
	{Port: portGPS, Match: driver.Any, Schema: GPS},
	{Port: portButton, Match: driver.Any, Schema: Button},
	{Port: portBeacon, Match: driver.Any, Schema: beacon},
	{Port: portSensor, Match: driver.Any, Schema: Sensor},
	{Port: portBattery, Match: driver.Any, Schema: Battery},
	{Port: portTimesync, Match: driver.Exact, Length: 1, Raw: "timesync_seqno"},
	{Port: portTimesync, Match: driver.Exact, Length: 5, Schema: TimeAnswer},
}

// Converter is the console conversion for packed payloads.
var Converter = convert.Table{
	portCounter: {convert.Pax},
	portStatus: {
		convert.Scale{Field: "voltage", Divisor: 1000},
		convert.Scale{Field: "uptime", Divisor: 60},
	},
}

func init() {
	driver.Register(driver.Format{
		Name:        Name,
		Description: "PACKED encoder, TTN v2 console decoder",
		Variants:    Variants,
		Converter:   Converter,
	})
}
