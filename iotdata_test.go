package iotdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTripThroughFacade(t *testing.T) {
	e := NewEncoder()
	require.NoError(t, e.Begin(0, 7, 42))
	require.NoError(t, e.SetBattery(64, false))
	packet, err := e.End()
	require.NoError(t, err)

	variantID, station, sequence, err := Peek(packet)
	require.NoError(t, err)
	assert.Equal(t, 0, variantID)
	assert.Equal(t, 7, station)
	assert.Equal(t, 42, sequence)

	rec, err := Decode(packet)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.Station)
	assert.Equal(t, 42, rec.Sequence)

	obj, err := ToJSON(rec)
	require.NoError(t, err)
	reencoded, err := FromJSON(obj)
	require.NoError(t, err)
	assert.Equal(t, packet, reencoded)

	report := Print(nil, rec)
	assert.Contains(t, string(report), "battery:")

	window := NewDedupWindow(4)
	assert.False(t, window.IsDuplicate(rec.Station, rec.Sequence))
	assert.True(t, window.IsDuplicate(rec.Station, rec.Sequence))
}
