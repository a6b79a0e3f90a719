//go:build !no_json

// Package jsonproj implements the lossless JSON projection of a packet
// (spec §5): Decoder output renders to a JSON object keyed by the
// variant's own field labels, and that same shape parses back into an
// Encoder call sequence that reproduces the original bytes exactly.
//
// The whole projection is independently excludable at build time (spec
// §6): build with `-tags no_json` to drop it from a constrained node's
// firmware build.
package jsonproj

import (
	"encoding/hex"
	"fmt"

	"github.com/matthewgream/iotdata/codec"
	"github.com/matthewgream/iotdata/errs"
	"github.com/matthewgream/iotdata/field"
	"github.com/matthewgream/iotdata/tlv"
	"github.com/matthewgream/iotdata/variant"
)

// ToJSON renders a decoded record as a plain JSON-shaped value (a
// map[string]any that encoding/json.Marshal accepts directly).
//
// The object carries "variant" (numeric), "variant_name", "station",
// "sequence", a "fields" object keyed by the variant's slot labels, and
// (when non-empty) a "tlv" array of {type, format, value}.
func ToJSON(rec codec.Record) (map[string]any, error) {
	entry, err := variant.Get(rec.Variant)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	for _, slot := range entry.Slots {
		if slot.Type == field.None || !rec.Values.Has(slot.Type) {
			continue
		}
		d, ok := field.Lookup(slot.Type)
		if !ok {
			continue
		}
		fields[slot.Label] = d.JSONEmit(&rec.Values)
	}

	out := map[string]any{
		"variant":      rec.Variant,
		"variant_name": rec.VariantName,
		"station":      rec.Station,
		"sequence":     rec.Sequence,
		"fields":       fields,
	}
	if len(rec.TLV) > 0 {
		tlvs := make([]any, len(rec.TLV))
		for i, e := range rec.TLV {
			tlvs[i] = tlvEntryToJSON(e)
		}
		out["tlv"] = tlvs
	}

	return out, nil
}

// FromJSON parses a value of the shape ToJSON produces and re-encodes
// it, byte-for-byte equal to the packet ToJSON was given when the input
// is unmodified (spec's JSON bit-exactness law).
//
// Fails with errs.ErrJSONMissingField if variant, station or sequence is
// absent, or errs.ErrJSONParse for any other malformed input.
func FromJSON(raw any) ([]byte, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", errs.ErrJSONParse, raw)
	}

	variantF, ok := obj["variant"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: variant", errs.ErrJSONMissingField)
	}
	stationF, ok := obj["station"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: station", errs.ErrJSONMissingField)
	}
	sequenceF, ok := obj["sequence"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: sequence", errs.ErrJSONMissingField)
	}

	variantID := int(variantF)
	entry, err := variant.Get(variantID)
	if err != nil {
		return nil, err
	}

	enc := codec.NewEncoder()
	if err := enc.Begin(variantID, int(stationF), int(sequenceF)); err != nil {
		return nil, err
	}

	fieldsRaw, _ := obj["fields"].(map[string]any)
	for _, slot := range entry.Slots {
		if slot.Type == field.None {
			continue
		}
		v, present := fieldsRaw[slot.Label]
		if !present {
			continue
		}
		if err := enc.SetFieldJSON(slot.Type, v); err != nil {
			return nil, err
		}
	}

	if tlvsRaw, ok := obj["tlv"].([]any); ok {
		for _, t := range tlvsRaw {
			entry, err := tlvEntryFromJSON(t)
			if err != nil {
				return nil, err
			}
			if err := enc.EncodeTLV(entry); err != nil {
				return nil, err
			}
		}
	}

	return enc.End()
}

// numField reads a required numeric key from a JSON object, failing
// (never panicking) with errs.ErrJSONMissingField if absent or
// errs.ErrJSONParse if the wrong type.
func numField(obj map[string]any, key string) (float64, error) {
	v, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errs.ErrJSONMissingField, key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s expected number, got %T", errs.ErrJSONParse, key, v)
	}

	return f, nil
}

func formatName(f tlv.Format) string {
	if f == tlv.FormatString {
		return "string"
	}

	return "raw"
}

func tlvEntryToJSON(e tlv.Entry) map[string]any {
	out := map[string]any{"type": int(e.Type), "format": formatName(e.Format)}

	switch e.Type {
	case tlv.TypeVersion:
		if kv, err := tlv.ParseVersion(e); err == nil {
			out["value"] = map[string]any{"kv": kv}

			return out
		}
	case tlv.TypeConfig:
		if kv, err := tlv.ParseConfig(e); err == nil {
			out["value"] = map[string]any{"kv": kv}

			return out
		}
	case tlv.TypeStatus:
		if v, err := tlv.ParseStatus(e); err == nil {
			out["value"] = map[string]any{
				"session_s": v.SessionS, "lifetime_s": v.LifetimeS,
				"restarts": v.Restarts, "reason": v.Reason,
			}

			return out
		}
	case tlv.TypeHealth:
		if v, err := tlv.ParseHealth(e); err == nil {
			out["value"] = map[string]any{
				"cpu_c": v.CPUC, "supply_mv": v.SupplyMV,
				"free_heap": v.FreeHeap, "active_s": v.ActiveS,
			}

			return out
		}
	}

	if e.Format == tlv.FormatString {
		out["value"] = e.Str
	} else {
		out["value"] = hex.EncodeToString(e.Raw)
	}

	return out
}

func tlvEntryFromJSON(raw any) (tlv.Entry, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return tlv.Entry{}, fmt.Errorf("%w: tlv entry must be an object", errs.ErrJSONParse)
	}
	typeF, ok := obj["type"].(float64)
	if !ok {
		return tlv.Entry{}, fmt.Errorf("%w: tlv entry type", errs.ErrJSONMissingField)
	}
	typ := uint8(typeF)

	switch typ {
	case tlv.TypeVersion, tlv.TypeConfig:
		valObj, ok := obj["value"].(map[string]any)
		if !ok {
			return tlv.Entry{}, fmt.Errorf("%w: version/config value", errs.ErrJSONParse)
		}
		kvRaw, _ := valObj["kv"].([]any)
		kv := make([]string, len(kvRaw))
		for i, s := range kvRaw {
			str, ok := s.(string)
			if !ok {
				return tlv.Entry{}, fmt.Errorf("%w: kv entry not a string", errs.ErrJSONParse)
			}
			kv[i] = str
		}
		if typ == tlv.TypeVersion {
			return tlv.NewVersion(kv)
		}

		return tlv.NewConfig(kv)
	case tlv.TypeStatus:
		valObj, ok := obj["value"].(map[string]any)
		if !ok {
			return tlv.Entry{}, fmt.Errorf("%w: status value", errs.ErrJSONParse)
		}
		sessionS, err := numField(valObj, "session_s")
		if err != nil {
			return tlv.Entry{}, err
		}
		lifetimeS, err := numField(valObj, "lifetime_s")
		if err != nil {
			return tlv.Entry{}, err
		}
		restarts, err := numField(valObj, "restarts")
		if err != nil {
			return tlv.Entry{}, err
		}
		reason, err := numField(valObj, "reason")
		if err != nil {
			return tlv.Entry{}, err
		}

		return tlv.NewStatus(int(sessionS), int(lifetimeS), int(restarts), uint8(reason))
	case tlv.TypeHealth:
		valObj, ok := obj["value"].(map[string]any)
		if !ok {
			return tlv.Entry{}, fmt.Errorf("%w: health value", errs.ErrJSONParse)
		}
		cpuC, err := numField(valObj, "cpu_c")
		if err != nil {
			return tlv.Entry{}, err
		}
		supplyMV, err := numField(valObj, "supply_mv")
		if err != nil {
			return tlv.Entry{}, err
		}
		freeHeap, err := numField(valObj, "free_heap")
		if err != nil {
			return tlv.Entry{}, err
		}
		activeS, err := numField(valObj, "active_s")
		if err != nil {
			return tlv.Entry{}, err
		}

		return tlv.NewHealth(int(cpuC), int(supplyMV), int(freeHeap), int(activeS))
	}

	formatRaw, _ := obj["format"].(string)
	valueRaw, ok := obj["value"]
	if !ok {
		return tlv.Entry{}, fmt.Errorf("%w: tlv entry value", errs.ErrJSONMissingField)
	}
	if formatRaw == "string" {
		s, ok := valueRaw.(string)
		if !ok {
			return tlv.Entry{}, fmt.Errorf("%w: tlv string value", errs.ErrJSONParse)
		}

		return tlv.Entry{Type: typ, Format: tlv.FormatString, Str: s}, nil
	}

	hexStr, ok := valueRaw.(string)
	if !ok {
		return tlv.Entry{}, fmt.Errorf("%w: tlv raw value", errs.ErrJSONParse)
	}
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return tlv.Entry{}, fmt.Errorf("%w: tlv hex value: %w", errs.ErrJSONParse, err)
	}

	return tlv.Entry{Type: typ, Format: tlv.FormatRaw, Raw: data}, nil
}
