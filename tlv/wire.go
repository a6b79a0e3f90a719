package tlv

import (
	"fmt"

	"github.com/matthewgream/iotdata/bitstream"
	"github.com/matthewgream/iotdata/errs"
)

// ComputeWidth returns the total wire width in bits of the given entry
// list's TLV block.
func ComputeWidth(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += 1 + 6 + 1 + 8 // format + type + more + length
		switch e.Format {
		case FormatRaw:
			total += 8 * len(e.Raw)
		case FormatString:
			total += 6 * len([]rune(e.Str))
		}
	}

	return total
}

// Encode packs entries onto w in order, chaining the "more" bit.
//
// Fails with errs.ErrTLVFull if len(entries) > MaxEntries, and with
// errs.ErrTLVTypeRange / errs.ErrTLVLengthRange / errs.ErrTLVStrCharInvalid
// for a malformed entry.
func Encode(w *bitstream.Writer, entries []Entry) error {
	if len(entries) > MaxEntries {
		return fmt.Errorf("%w: %d entries", errs.ErrTLVFull, len(entries))
	}

	for i, e := range entries {
		more := i < len(entries)-1
		if err := encodeOne(w, e, more); err != nil {
			return err
		}
	}

	return nil
}

func encodeOne(w *bitstream.Writer, e Entry, more bool) error {
	if e.Type > 63 {
		return fmt.Errorf("%w: type %d", errs.ErrTLVTypeRange, e.Type)
	}

	if err := w.Put(uint32(e.Format), 1); err != nil {
		return err
	}
	if err := w.Put(uint32(e.Type), 6); err != nil {
		return err
	}
	moreBit := uint32(0)
	if more {
		moreBit = 1
	}
	if err := w.Put(moreBit, 1); err != nil {
		return err
	}

	switch e.Format {
	case FormatRaw:
		if e.Raw == nil {
			return errs.ErrTLVDataNil
		}
		if len(e.Raw) > MaxRawLen {
			return fmt.Errorf("%w: %d bytes", errs.ErrTLVLengthRange, len(e.Raw))
		}
		if err := w.Put(uint32(len(e.Raw)), 8); err != nil {
			return err
		}
		for _, b := range e.Raw {
			if err := w.Put(uint32(b), 8); err != nil {
				return err
			}
		}
	case FormatString:
		runes := []rune(e.Str)
		if len(runes) > MaxStrLen {
			return fmt.Errorf("%w: %d chars", errs.ErrTLVLengthRange, len(runes))
		}
		if err := w.Put(uint32(len(runes)), 8); err != nil {
			return err
		}
		for _, c := range runes {
			code, err := encodeChar(c)
			if err != nil {
				return err
			}
			if err := w.Put(uint32(code), 6); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: format %d", errs.ErrTLVTypeRange, e.Format)
	}

	return nil
}

// Decode reads TLV entries from r until an entry with more=0 is read or
// MaxEntries is reached.
//
// Fails with errs.ErrTLVFull if a 9th entry is signalled, or any wire
// error the underlying bitstream.Reader surfaces (e.g. DECODE_TRUNCATED).
func Decode(r *bitstream.Reader) ([]Entry, error) {
	var entries []Entry
	for {
		e, more, err := decodeOne(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		if !more {
			return entries, nil
		}
		if len(entries) >= MaxEntries {
			return nil, fmt.Errorf("%w: more than %d entries", errs.ErrTLVFull, MaxEntries)
		}
	}
}

func decodeOne(r *bitstream.Reader) (Entry, bool, error) {
	format, err := r.Get(1)
	if err != nil {
		return Entry{}, false, err
	}
	typ, err := r.Get(6)
	if err != nil {
		return Entry{}, false, err
	}
	more, err := r.Get(1)
	if err != nil {
		return Entry{}, false, err
	}
	length, err := r.Get(8)
	if err != nil {
		return Entry{}, false, err
	}

	e := Entry{Type: uint8(typ), Format: Format(format)}
	switch e.Format {
	case FormatRaw:
		data := make([]byte, length)
		for i := range data {
			b, err := r.Get(8)
			if err != nil {
				return Entry{}, false, err
			}
			data[i] = byte(b)
		}
		e.Raw = data
	case FormatString:
		runes := make([]rune, length)
		for i := range runes {
			code, err := r.Get(6)
			if err != nil {
				return Entry{}, false, err
			}
			c, err := decodeChar(uint8(code))
			if err != nil {
				return Entry{}, false, err
			}
			runes[i] = c
		}
		e.Str = string(runes)
	}

	return e, more != 0, nil
}
