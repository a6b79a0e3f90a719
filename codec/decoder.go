//go:build !no_decoder

package codec

import (
	"fmt"

	"github.com/matthewgream/iotdata/bitstream"
	"github.com/matthewgream/iotdata/errs"
	"github.com/matthewgream/iotdata/field"
	"github.com/matthewgream/iotdata/internal/options"
	"github.com/matthewgream/iotdata/presence"
	"github.com/matthewgream/iotdata/tlv"
	"github.com/matthewgream/iotdata/variant"
)

// Decode parses one packet in a single shot. opts configure the decode
// (currently only WithDecodeVariantSet, spec §6's "select a variant-map
// set"); the zero-value config consults the compiled-in variant table.
//
// Fails with errs.ErrDecodeShort if data is shorter than MinPacketLen,
// errs.ErrDecodeVariant if the header names the reserved variant id,
// errs.ErrHdrVariantUnknown if the variant is not in the map,
// errs.ErrDecodePresence or errs.ErrDecodeTruncated for a malformed
// presence chain or a body shorter than the declared fields need.
func Decode(data []byte, opts ...DecodeOption) (Record, error) {
	if len(data) < MinPacketLen {
		return Record{}, fmt.Errorf("%w: %d bytes", errs.ErrDecodeShort, len(data))
	}

	var cfg decodeConfig
	_ = options.Apply(&cfg, opts...)

	hdr, err := decodeHeader(data)
	if err != nil {
		return Record{}, err
	}
	if hdr.Variant == variant.ReservedID {
		return Record{}, fmt.Errorf("%w: variant %d", errs.ErrDecodeVariant, hdr.Variant)
	}
	var entry variant.Entry
	if cfg.variantSet != nil {
		entry, err = variant.Lookup(cfg.variantSet, hdr.Variant)
	} else {
		entry, err = variant.Get(hdr.Variant)
	}
	if err != nil {
		return Record{}, err
	}

	setSlots, tlvPresent, consumed, err := presence.Decode(data[HeaderLen:], entry.NumPresenceBytes)
	if err != nil {
		return Record{}, err
	}

	bodyStart := HeaderLen + consumed
	r := bitstream.NewReader(data[bodyStart:], len(data)-bodyStart)

	var values field.Values
	for _, slotIdx := range setSlots {
		if slotIdx >= len(entry.Slots) {
			return Record{}, fmt.Errorf("%w: slot %d beyond variant %q schema", errs.ErrDecodePresence, slotIdx, entry.Name)
		}
		t := entry.Slots[slotIdx].Type
		if t == field.None {
			return Record{}, fmt.Errorf("%w: slot %d is reserved in variant %q", errs.ErrDecodePresence, slotIdx, entry.Name)
		}
		d, ok := field.Lookup(t)
		if !ok {
			return Record{}, fmt.Errorf("%w: slot %d has no registered field type", errs.ErrDecodePresence, slotIdx)
		}
		if err := d.Decode(r, &values); err != nil {
			return Record{}, err
		}
	}

	var entries []tlv.Entry
	if tlvPresent {
		entries, err = tlv.Decode(r)
		if err != nil {
			return Record{}, err
		}
	}

	return Record{
		Variant:     hdr.Variant,
		VariantName: entry.Name,
		Station:     hdr.Station,
		Sequence:    hdr.Sequence,
		Values:      values,
		TLV:         entries,
	}, nil
}
