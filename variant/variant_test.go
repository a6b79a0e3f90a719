package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewgream/iotdata/errs"
	"github.com/matthewgream/iotdata/field"
)

func TestGetKnownVariant(t *testing.T) {
	e, err := Get(0)
	require.NoError(t, err)
	assert.Equal(t, "weather_full", e.Name)
	assert.Equal(t, 3, e.NumPresenceBytes)
	assert.LessOrEqual(t, len(e.Slots), MaxSlots)
}

func TestGetReservedVariant(t *testing.T) {
	_, err := Get(ReservedID)
	assert.ErrorIs(t, err, errs.ErrHdrVariantReserved)
}

func TestGetUnknownVariant(t *testing.T) {
	_, err := Get(Count())
	assert.ErrorIs(t, err, errs.ErrHdrVariantUnknown)
	_, err = Get(14)
	assert.ErrorIs(t, err, errs.ErrHdrVariantUnknown)
}

func TestSlotOf(t *testing.T) {
	e, err := Get(0)
	require.NoError(t, err)
	assert.Equal(t, 0, e.SlotOf(field.Battery))
	assert.Equal(t, -1, e.SlotOf(field.Type(200)))
}

func TestNoDuplicateFieldTypeWithinVariant(t *testing.T) {
	// Invariant (spec §3): within one variant, no field-type appears in
	// two slots.
	for _, e := range table {
		seen := map[field.Type]bool{}
		for _, s := range e.Slots {
			if s.Type == field.None {
				continue
			}
			assert.False(t, seen[s.Type], "variant %d: field type %v duplicated", e.ID, s.Type)
			seen[s.Type] = true
		}
	}
}

func TestDeclaredPresenceBytesCoverAllSlots(t *testing.T) {
	for _, e := range table {
		maxSlots := 6 + 7*(e.NumPresenceBytes-1)
		assert.LessOrEqual(t, len(e.Slots), maxSlots, "variant %d declares too few presence bytes for its slot count", e.ID)
	}
}

func TestLookupAgainstPrivateSet(t *testing.T) {
	private := []Entry{
		{ID: 0, Name: "private_minimal", NumPresenceBytes: 1, Slots: []Slot{{field.Battery, "battery"}}},
	}
	e, err := Lookup(private, 0)
	require.NoError(t, err)
	assert.Equal(t, "private_minimal", e.Name)

	_, err = Lookup(private, 1)
	assert.ErrorIs(t, err, errs.ErrHdrVariantUnknown)

	_, err = Lookup(private, ReservedID)
	assert.ErrorIs(t, err, errs.ErrHdrVariantReserved)
}

func TestGetDelegatesToLookupOnCompiledTable(t *testing.T) {
	fromGet, err := Get(0)
	require.NoError(t, err)
	fromLookup, err := Lookup(table, 0)
	require.NoError(t, err)
	assert.Equal(t, fromLookup, fromGet)
}
