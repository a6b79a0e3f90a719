package codec

// Peek extracts the header triple without parsing the packet body, for
// cheap use by a deduplication layer keyed on (station, sequence) (spec
// §6 "Deduplication").
//
// Fails with errs.ErrDecodeShort if data is shorter than HeaderLen.
func Peek(data []byte) (variantID, station, sequence int, err error) {
	hdr, err := decodeHeader(data)
	if err != nil {
		return 0, 0, 0, err
	}

	return hdr.Variant, hdr.Station, hdr.Sequence, nil
}
