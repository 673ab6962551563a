package packedv3

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
	"github.com/cyberman54/ESP32-Paxcounter/internal/testutil"
)

func TestGolden(t *testing.T) {
	testutil.RunGolden(t, Name, "packed-v3/cases.yaml")
}

func TestPositionBeforeFullFix(t *testing.T) {
	f, err := driver.Lookup(Name)
	require.NoError(t, err)

	v, err := f.Select(4, 8)
	require.NoError(t, err)
	require.Equal(t, "gps_position", v.Name())

	v, err = f.Select(4, 15)
	require.NoError(t, err)
	require.Equal(t, "gps", v.Name())

	// Any other length falls back to the full fix and fails on the mask.
	_, _, err = f.Decode(4, make([]byte, 9))
	require.Error(t, err)
	require.Contains(t, err.Error(), "mask length is 13 whereas input is 9")
}

func TestCounterLengthWithoutLayout(t *testing.T) {
	f, err := driver.Lookup(Name)
	require.NoError(t, err)
	for _, length := range []int{1, 3, 5, 9, 16, 18} {
		_, rec, err := f.Decode(1, make([]byte, length))
		require.ErrorIs(t, err, driver.ErrUnrecognized, "length %d", length)
		require.Nil(t, rec)
	}
}

func TestConfigWidth(t *testing.T) {
	require.Equal(t, 21, config.MaskLength())
	require.Equal(t, 20, status.MaskLength())
}
