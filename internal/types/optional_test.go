package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementPatchDistinguishesNullFromAbsent(t *testing.T) {
	var patch MeasurementPatch
	require.NoError(t, json.Unmarshal([]byte(`{"no2": null, "pm10": 21.5}`), &patch))

	assert.True(t, patch.No2.Set)
	assert.Nil(t, patch.No2.Value)

	assert.True(t, patch.Pm10.Set)
	require.NotNil(t, patch.Pm10.Value)
	assert.InDelta(t, 21.5, *patch.Pm10.Value, 1e-9)

	assert.False(t, patch.Pm25.Set)
	assert.Nil(t, patch.Pm25.Value)
}

func TestOptionalUnmarshalRejectsWrongType(t *testing.T) {
	var patch MeasurementPatch
	err := json.Unmarshal([]byte(`{"annee": "twenty-twenty"}`), &patch)
	assert.Error(t, err)
}

func TestOptionalMarshalRoundTrip(t *testing.T) {
	raw, err := json.Marshal(Some(42.5))
	require.NoError(t, err)
	assert.Equal(t, "42.5", string(raw))

	raw, err = json.Marshal(Null[float64]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
