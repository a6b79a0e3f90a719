package human

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewgream/iotdata/codec"
)

func buildSample(t *testing.T) (codec.Record, []byte) {
	t.Helper()
	e := codec.NewEncoder()
	require.NoError(t, e.Begin(0, 1, 1))
	require.NoError(t, e.SetBattery(75, true))
	require.NoError(t, e.SetLink(-90, 0))
	out, err := e.End()
	require.NoError(t, err)
	rec, err := codec.Decode(out)
	require.NoError(t, err)

	return rec, out
}

func TestPrintIncludesVariantAndFields(t *testing.T) {
	rec, _ := buildSample(t)
	out := Print(nil, rec)
	s := string(out)
	assert.Contains(t, s, "weather_full")
	assert.Contains(t, s, "station=1 sequence=1")
	assert.Contains(t, s, "battery:")
	assert.Contains(t, s, "link:")
}

func TestPrintReusesScratchBuffer(t *testing.T) {
	rec, _ := buildSample(t)
	scratch := make([]byte, 0, 256)
	out := Print(scratch, rec)
	assert.Equal(t, cap(scratch), cap(out))
}

func TestDumpAnnotatesSections(t *testing.T) {
	rec, packet := buildSample(t)
	out := Dump(nil, packet, rec)
	s := string(out)
	assert.Contains(t, s, "header:")
	assert.True(t, strings.Contains(s, "pres0:"))
	assert.Contains(t, s, "battery: 6 bits")
	assert.Contains(t, s, "link: 6 bits")
}

func TestDumpRejectsShortPacket(t *testing.T) {
	rec, _ := buildSample(t)
	out := Dump(nil, []byte{0x00, 0x00}, rec)
	assert.Contains(t, string(out), "too short")
}
