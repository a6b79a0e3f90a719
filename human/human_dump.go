//go:build !no_dump

package human

import (
	"fmt"

	"github.com/matthewgream/iotdata/codec"
	"github.com/matthewgream/iotdata/field"
	"github.com/matthewgream/iotdata/presence"
	"github.com/matthewgream/iotdata/variant"
)

// Dump renders packet (the raw wire bytes rec was decoded from) as a hex
// dump annotated by section: header, presence chain, field-data body,
// and TLV block if present.
//
// buf[:0] is reused as the output backing array, as with Print.
func Dump(buf []byte, packet []byte, rec codec.Record) []byte {
	b := buf[:0]
	if len(packet) < codec.HeaderLen {
		return append(b, fmt.Sprintf("<packet too short: %d bytes>\n", len(packet))...)
	}
	b = append(b, fmt.Sprintf("header: % x  (variant=%d station=%d sequence=%d)\n",
		packet[:codec.HeaderLen], rec.Variant, rec.Station, rec.Sequence)...)

	entry, err := variant.Get(rec.Variant)
	if err != nil {
		return append(b, fmt.Sprintf("<unknown variant: %v>\n", err)...)
	}

	var setSlots []int
	for i, slot := range entry.Slots {
		if slot.Type != field.None && rec.Values.Has(slot.Type) {
			setSlots = append(setSlots, i)
		}
	}
	presenceBytes, err := presence.Encode(setSlots, len(rec.TLV) > 0, entry.NumPresenceBytes)
	if err != nil {
		return append(b, fmt.Sprintf("<presence chain mismatch: %v>\n", err)...)
	}
	presenceEnd := codec.HeaderLen + len(presenceBytes)
	if presenceEnd > len(packet) {
		presenceEnd = len(packet)
	}
	b = append(b, fmt.Sprintf("pres%d: % x\n", len(presenceBytes)-1, packet[codec.HeaderLen:presenceEnd])...)

	for _, slotIdx := range setSlots {
		slot := entry.Slots[slotIdx]
		d, ok := field.Lookup(slot.Type)
		if !ok {
			continue
		}
		b = append(b, fmt.Sprintf("%s: %d bits\n", slot.Label, d.WireWidth(&rec.Values))...)
	}

	if presenceEnd < len(packet) {
		b = append(b, fmt.Sprintf("body: % x\n", packet[presenceEnd:])...)
	}

	return b
}
