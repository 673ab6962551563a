package packed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	"github.com/cyberman54/ESP32-Paxcounter/internal/schema"
	"github.com/cyberman54/ESP32-Paxcounter/internal/testutil"
)

func TestGolden(t *testing.T) {
	testutil.RunGolden(t, Name, "packed/cases.yaml")
}

func TestCounterVariantsByLength(t *testing.T) {
	f, err := driver.Lookup(Name)
	require.NoError(t, err)

	v, err := f.Select(1, 2)
	require.NoError(t, err)
	require.Equal(t, "counter_wifi", v.Name())

	v, err = f.Select(1, 4)
	require.NoError(t, err)
	require.Equal(t, "counter_wifi_ble", v.Name())

	_, err = f.Select(1, 3)
	require.ErrorIs(t, err, driver.ErrUnrecognized)
}

func TestZeroLengthOnEveryPort(t *testing.T) {
	f, err := driver.Lookup(Name)
	require.NoError(t, err)
	for port := 0; port < 256; port++ {
		v, rec, err := f.Decode(uint8(port), nil)
		require.NoError(t, err)
		require.Equal(t, 0, rec.Len())
		require.Equal(t, "", v.Name())
	}
}

func TestConfigTooShort(t *testing.T) {
	f, err := driver.Lookup(Name)
	require.NoError(t, err)
	_, rec, err := f.Decode(3, []byte{12, 14, 0xB0, 0xFF})
	require.Nil(t, rec)
	require.True(t, errors.Is(err, schema.ErrInsufficientBytes))
	require.False(t, errors.Is(err, driver.ErrUnrecognized))
}

func TestSchemaWidths(t *testing.T) {
	require.Equal(t, 2, CounterWifi.MaskLength())
	require.Equal(t, 4, CounterWifiBle.MaskLength())
	require.Equal(t, 15, CounterWifiGPS.MaskLength())
	require.Equal(t, 17, CounterWifiBleGPS.MaskLength())
	require.Equal(t, 17, status.MaskLength())
	require.Equal(t, 20, config.MaskLength())
	require.Equal(t, 8, Sensor.MaskLength())
}
