//go:build !no_print

package human

import (
	"fmt"

	"github.com/matthewgream/iotdata/codec"
	"github.com/matthewgream/iotdata/field"
	"github.com/matthewgream/iotdata/variant"
)

// Print renders rec as a multi-line labelled report: variant name and
// header triple, then one line per present field using its variant
// label and the field's own formatted value, then a TLV summary line if
// any entries are present.
//
// buf[:0] is reused as the output backing array; the returned slice
// aliases buf when its capacity suffices.
func Print(buf []byte, rec codec.Record) []byte {
	b := buf[:0]
	b = append(b, fmt.Sprintf("%s (variant %d)\n", rec.VariantName, rec.Variant)...)
	b = append(b, fmt.Sprintf("station=%d sequence=%d\n", rec.Station, rec.Sequence)...)

	entry, err := variant.Get(rec.Variant)
	if err != nil {
		return append(b, fmt.Sprintf("<unknown variant: %v>\n", err)...)
	}

	for _, slot := range entry.Slots {
		if slot.Type == field.None || !rec.Values.Has(slot.Type) {
			continue
		}
		d, ok := field.Lookup(slot.Type)
		if !ok {
			continue
		}
		b = append(b, fmt.Sprintf("%s: %s\n", slot.Label, d.Print(&rec.Values))...)
	}

	if len(rec.TLV) > 0 {
		b = append(b, fmt.Sprintf("tlv: %d entries\n", len(rec.TLV))...)
	}

	return b
}
