package codec

import (
	"github.com/matthewgream/iotdata/field"
	"github.com/matthewgream/iotdata/tlv"
)

// Record is the decoded form of a packet: the header triple, the
// variant's schema, the per-field values, and any TLV metadata (spec's
// "Decoded record").
//
// Record is a plain value, owned by the caller with no internal aliasing
// back to the decoder or its input buffer.
type Record struct {
	Variant     int
	VariantName string
	Station     int
	Sequence    int
	Values      field.Values
	TLV         []tlv.Entry
}
