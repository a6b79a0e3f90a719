// Package variant holds the compile-time VariantMap (spec §4.4): for each
// variant id, a display name, a declared presence-byte count, and the
// ordered slot -> field-type assignment that is the packet's schema.
//
// The map is a read-only, build-time table (spec §9 "Global variant
// registry" design note) — no lazy init, no mutation after package init.
// New variants are appended; existing slots are never renumbered, so
// that variants may evolve additively without breaking deployed peers
// (spec §6).
package variant

import (
	"fmt"

	"github.com/matthewgream/iotdata/errs"
	"github.com/matthewgream/iotdata/field"
)

// MaxPresenceBytes is the implementation cap on presence-chain length
// (spec §3): byte 0 carries 6 slot bits, each following byte 7, so
// MaxSlots = 6 + 7*(MaxPresenceBytes-1).
const MaxPresenceBytes = 4

// MaxSlots is the largest slot count any variant may declare.
const MaxSlots = 6 + 7*(MaxPresenceBytes-1)

// ReservedID is the one variant id the header format reserves (spec §3):
// 4 header bits give ids 0..15, and 15 is never a valid data variant.
const ReservedID = 15

// Slot names one position in a variant's ordered field list.
type Slot struct {
	Type  field.Type // field.None for an unused, reserved-for-future slot
	Label string      // presentation label, used as the JSON field key
}

// Entry is one variant's full schema.
type Entry struct {
	ID               int
	Name             string
	NumPresenceBytes int
	Slots            []Slot
}

// SlotOf returns the slot index carrying field-type t within e, or -1 if
// t is not one of e's slots.
func (e Entry) SlotOf(t field.Type) int {
	for i, s := range e.Slots {
		if s.Type == t {
			return i
		}
	}

	return -1
}

// table is the compile-time variant registry. Indices double as variant
// ids; table[i].ID must equal i.
var table = []Entry{
	{
		ID: 0, Name: "weather_full", NumPresenceBytes: 3,
		Slots: []Slot{
			{field.Battery, "battery"},
			{field.Link, "link"},
			{field.Environment, "environment"},
			{field.Wind, "wind"},
			{field.Rain, "rain"},
			{field.Solar, "solar"},
			{field.Clouds, "clouds"},
			{field.AirQualityIndex, "air_quality_index"},
			{field.AirQualityPM, "air_quality_pm"},
			{field.AirQualityGas, "air_quality_gas"},
			{field.Radiation, "radiation"},
			{field.Depth, "depth"},
			{field.Position, "position"},
			{field.Datetime, "datetime"},
			{field.Flags, "flags"},
			{field.Image, "image"},
			{field.None, ""},
			{field.None, ""},
			{field.None, ""},
			{field.None, ""},
		},
	},
	{
		ID: 1, Name: "weather_compact", NumPresenceBytes: 1,
		Slots: []Slot{
			{field.Battery, "battery"},
			{field.Link, "link"},
			{field.Environment, "environment"},
			{field.Flags, "flags"},
			{field.None, ""},
			{field.None, ""},
		},
	},
	{
		ID: 2, Name: "soil_probe", NumPresenceBytes: 1,
		Slots: []Slot{
			{field.Battery, "battery"},
			{field.Temperature, "temperature"},
			{field.Humidity, "humidity"},
			{field.Depth, "depth"},
			{field.None, ""},
			{field.None, ""},
		},
	},
	{
		ID: 3, Name: "camera_trap", NumPresenceBytes: 1,
		Slots: []Slot{
			{field.Battery, "battery"},
			{field.Link, "link"},
			{field.Datetime, "datetime"},
			{field.Image, "image"},
			{field.None, ""},
			{field.None, ""},
		},
	},
}

// Count returns how many variant ids the map declares. Header variants
// at or above Count (but below ReservedID) decode as HDR_VARIANT_UNKNOWN.
func Count() int {
	return len(table)
}

// Get looks up a variant by id in the compiled-in table.
//
// Returns errs.ErrHdrVariantReserved for id == ReservedID, or
// errs.ErrHdrVariantUnknown for any id the map does not declare.
func Get(id int) (Entry, error) {
	return Lookup(table, id)
}

// Lookup looks up a variant by id in set rather than the compiled-in
// table, the mechanism behind the codec.WithVariantSet option (spec §6:
// "select a variant-map set"): a caller that deploys a private variant
// map in place of the four built-ins passes it here instead of letting
// Get consult the package-global table.
//
// Returns errs.ErrHdrVariantReserved for id == ReservedID, or
// errs.ErrHdrVariantUnknown for any id set does not declare.
func Lookup(set []Entry, id int) (Entry, error) {
	if id == ReservedID {
		return Entry{}, errs.ErrHdrVariantReserved
	}
	if id < 0 || id >= len(set) {
		return Entry{}, fmt.Errorf("%w: variant %d", errs.ErrHdrVariantUnknown, id)
	}

	return set[id], nil
}
