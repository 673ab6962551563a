package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyberman54/ESP32-Paxcounter/internal/driver"
)

// RunGolden decodes every case of a fixture with the named format and
// compares raw and converted records.
func RunGolden(t *testing.T, format, rel string) {
	t.Helper()
	f, err := driver.Lookup(format)
	require.NoError(t, err)

	for _, tc := range LoadCases(t, rel) {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			payload := tc.Bytes(t)
			v, rec, err := f.Decode(tc.Port, payload)
			if tc.Error != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.Error)
				require.Nil(t, rec)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.Schema, v.Name())

			data, err := json.Marshal(rec)
			require.NoError(t, err)
			require.Equal(t, Expected(t, tc.Fields), Normalize(t, data))

			converted := rec
			if v.Name() != "" {
				converted = f.Convert(tc.Port, rec)
			}
			data, err = json.Marshal(converted)
			require.NoError(t, err)
			require.Equal(t, Expected(t, tc.Converted), Normalize(t, data))
		})
	}
}
