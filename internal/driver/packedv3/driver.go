// Package packedv3 registers the "packed" encoder as decoded by The Things
// Stack v3 and the LoRaWAN device repository. It adds the SDS011 and
// openSenseMap counter layouts and the restart counter in status.
package packedv3

import (
	"github.com/cyberman54/ESP32-Paxcounter/internal/codec"
	"github.com/cyberman54/ESP32-Paxcounter/internal/convert"
	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	"github.com/cyberman54/ESP32-Paxcounter/internal/driver/packed"
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
)

// Name is the registry key of the format.
const Name = "packed-v3"

var (
	// ConfigFlags names the bits of the config flags byte.
	ConfigFlags = [8]string{"adr", "screensaver", "screen", "countermode", "blescan", "antenna", "reserved", "reserved"}
	// PayloadMask names the bits of the payload mask byte.
	PayloadMask = [8]string{"battery", "sensor3", "sensor2", "sensor1", "gps", "bme", "reserved", "counter"}
)

var (
	counterSDS011 = schema.MustNew("counter_wifi_ble_sds011",
		schema.F(codec.Uint16, "wifi"), schema.F(codec.Uint16, "ble"),
		schema.F(codec.Uint16, "PM10"), schema.F(codec.Uint16, "PM25"))

	// openSenseMap layouts put the position first.
	counterOSMWifi = schema.MustNew("counter_osm_wifi",
		schema.F(codec.LatLng, "latitude"), schema.F(codec.LatLng, "longitude"),
		schema.F(codec.Uint16, "wifi"))
	counterOSMWifiBle = schema.MustNew("counter_osm_wifi_ble",
		schema.F(codec.LatLng, "latitude"), schema.F(codec.LatLng, "longitude"),
		schema.F(codec.Uint16, "wifi"), schema.F(codec.Uint16, "ble"))

	status = schema.MustNew("status_restarts",
		schema.F(codec.Uint16, "voltage"), schema.F(codec.Uptime, "uptime"), schema.F(codec.Uint8, "cputemp"),
		schema.F(codec.Uint32, "memory"), schema.F(codec.Uint8, "reset0"), schema.F(codec.Uint32, "restarts"))

	config = schema.MustNew("config_sleepcycle",
		schema.F(codec.Uint8, "loradr"), schema.F(codec.Uint8, "txpower"), schema.F(codec.Int16, "rssilimit"),
		schema.F(codec.Uint8, "sendcycle"), schema.F(codec.Uint8, "wifichancycle"), schema.F(codec.Uint8, "blescantime"),
		schema.F(codec.Uint16, "sleepcycle"),
		schema.Bitmap("flags", ConfigFlags), schema.Bitmap("payloadmask", PayloadMask),
		schema.F(codec.Version, "version"))

	position = schema.MustNew("gps_position",
		schema.F(codec.LatLng, "latitude"), schema.F(codec.LatLng, "longitude"))
)

// Variants is the packed-v3 variant table.
var Variants = []driver.Variant{
	{Port: 1, Match: driver.Exact, Length: 2, Schema: packed.CounterWifi},
	{Port: 1, Match: driver.Exact, Length: 4, Schema: packed.CounterWifiBle},
	{Port: 1, Match: driver.Exact, Length: 8, Schema: counterSDS011},
	{Port: 1, Match: driver.Exact, Length: 10, Schema: counterOSMWifi},
	{Port: 1, Match: driver.Exact, Length: 12, Schema: counterOSMWifiBle},
	{Port: 1, Match: driver.Exact, Length: 15, Schema: packed.CounterWifiGPS},
	{Port: 1, Match: driver.Exact, Length: 17, Schema: packed.CounterWifiBleGPS},
	{Port: 2, Match: driver.Exact, Length: 20, Schema: status},
	{Port: 3, Match: driver.Any, Schema: config},
	{Port: 4, Match: driver.Exact, Length: 8, Schema: position},
	{Port: 4, Match: driver.Any, Schema: packed.GPS},
	{Port: 5, Match: driver.Any, Schema: packed.Button},
	{Port: 7, Match: driver.Any, Schema: packed.Sensor},
	{Port: 8, Match: driver.Any, Schema: packed.Battery},
	{Port: 9, Match: driver.Exact, Length: 1, Raw: "timesync_seqno"},
	{Port: 9, Match: driver.Exact, Length: 5, Schema: packed.TimeAnswer},
}

// Converter adds the pax count to counter payloads. The v3 formatter does
// not rescale status values.
var Converter = convert.Table{
	1: {convert.Pax},
}

func init() {
	driver.Register(driver.Format{
		Name:        Name,
		Description: "PACKED encoder, The Things Stack v3 uplink formatter",
		Variants:    Variants,
		Converter:   Converter,
	})
}
