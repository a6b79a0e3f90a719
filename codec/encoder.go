//go:build !no_encoder

package codec

import (
	"fmt"

	"github.com/matthewgream/iotdata/bitstream"
	"github.com/matthewgream/iotdata/errs"
	"github.com/matthewgream/iotdata/field"
	"github.com/matthewgream/iotdata/image"
	"github.com/matthewgream/iotdata/internal/options"
	"github.com/matthewgream/iotdata/presence"
	"github.com/matthewgream/iotdata/tlv"
	"github.com/matthewgream/iotdata/variant"
)

type encoderState int

const (
	stateIdle encoderState = iota
	stateBegun
	stateEnded
)

// Encoder builds one packet at a time: Begin, any number of field
// setters and EncodeTLV* calls in any order, then End.
//
// Encoder is not safe for concurrent use; one instance builds one packet
// per Begin/End cycle and may be reused across cycles.
type Encoder struct {
	state  encoderState
	entry  variant.Entry
	hdr    header
	values field.Values
	tlvs   []tlv.Entry

	disableRangeChecks bool
	allowedFields      map[field.Type]bool
	variantSet         []variant.Entry
}

// NewEncoder returns an idle Encoder ready for Begin, applying any
// Options (spec §6's constructor-time compile options; see encoder_options.go).
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{}
	_ = options.Apply(e, opts...)

	return e
}

// Begin validates the header triple and enters the begun state.
//
// Fails with errs.ErrHdrVariantReserved, errs.ErrHdrVariantUnknown or
// errs.ErrHdrStationRange; the Encoder remains idle on failure.
func (e *Encoder) Begin(variantID, station, sequence int) error {
	var entry variant.Entry
	var err error
	if e.variantSet != nil {
		entry, err = variant.Lookup(e.variantSet, variantID)
	} else {
		entry, err = variant.Get(variantID)
	}
	if err != nil {
		return err
	}
	if station < 0 || station > MaxStation {
		return fmt.Errorf("%w: %d", errs.ErrHdrStationRange, station)
	}

	e.state = stateBegun
	e.entry = entry
	e.hdr = header{Variant: variantID, Station: station, Sequence: sequence}
	e.values = field.Values{}
	e.tlvs = nil

	return nil
}

// checkSet validates the state machine and the no-duplicate-field
// invariant for field type t, fails with errs.ErrFieldRange if the
// variant has no slot for t, and (WithFieldSubset) if t was excluded
// from this Encoder's allowed field subset.
func (e *Encoder) checkSet(t field.Type) error {
	if e.state != stateBegun {
		return errs.ErrCtxNotBegun
	}
	if e.allowedFields != nil && !e.allowedFields[t] {
		return fmt.Errorf("%w: %v excluded by field subset", errs.ErrFieldRange, t)
	}
	if e.values.Has(t) {
		return fmt.Errorf("%w: %v", errs.ErrDuplicateField, t)
	}
	if e.entry.SlotOf(t) < 0 {
		return fmt.Errorf("%w: %v has no slot in variant %q", errs.ErrFieldRange, t, e.entry.Name)
	}

	return nil
}

// validate encodes field t into a scratch buffer to confirm its stored
// value is within the field's declared range (spec §4.8: "validates
// field range"). Every setter calls this immediately after storing its
// value and marking it present, so a range violation is caught and
// rolled back (the field is unmarked, the encoder stays begun) before
// End ever sees it — the caller may retry the same setter with a
// corrected value (spec §4.8, §7: "field-range errors are non-fatal").
func (e *Encoder) validate(t field.Type) error {
	if e.disableRangeChecks {
		return nil
	}

	d, ok := field.Lookup(t)
	if !ok {
		e.values.Unset(t)
		return fmt.Errorf("%w: %v has no registered field type", errs.ErrFieldRange, t)
	}

	scratch := make([]byte, d.WireWidth(&e.values)/8+2)
	if err := d.Encode(bitstream.NewWriter(scratch), &e.values); err != nil {
		e.values.Unset(t)
		return err
	}

	return nil
}

// SetBattery sets the battery field.
func (e *Encoder) SetBattery(level float64, charging bool) error {
	if err := e.checkSet(field.Battery); err != nil {
		return err
	}
	e.values.Battery = field.BatteryValue{Level: level, Charging: charging}
	e.values.Set(field.Battery)

	return e.validate(field.Battery)
}

// SetLink sets the radio-link-quality field.
func (e *Encoder) SetLink(rssi, snr float64) error {
	if err := e.checkSet(field.Link); err != nil {
		return err
	}
	e.values.Link = field.LinkValue{RSSI: rssi, SNR: snr}
	e.values.Set(field.Link)

	return e.validate(field.Link)
}

// SetTemperature sets the standalone temperature field.
func (e *Encoder) SetTemperature(c float64) error {
	if err := e.checkSet(field.Temperature); err != nil {
		return err
	}
	e.values.Temperature = c
	e.values.Set(field.Temperature)

	return e.validate(field.Temperature)
}

// SetPressure sets the standalone pressure field.
func (e *Encoder) SetPressure(hpa float64) error {
	if err := e.checkSet(field.Pressure); err != nil {
		return err
	}
	e.values.Pressure = hpa
	e.values.Set(field.Pressure)

	return e.validate(field.Pressure)
}

// SetHumidity sets the standalone humidity field.
func (e *Encoder) SetHumidity(pct float64) error {
	if err := e.checkSet(field.Humidity); err != nil {
		return err
	}
	e.values.Humidity = pct
	e.values.Set(field.Humidity)

	return e.validate(field.Humidity)
}

// SetEnvironment sets the temperature+pressure+humidity bundle.
func (e *Encoder) SetEnvironment(tempC, hpa, humidityPct float64) error {
	if err := e.checkSet(field.Environment); err != nil {
		return err
	}
	e.values.Environment = field.EnvironmentValue{Temperature: tempC, Pressure: hpa, Humidity: humidityPct}
	e.values.Set(field.Environment)

	return e.validate(field.Environment)
}

// SetWind sets the speed+direction+gust bundle.
func (e *Encoder) SetWind(speed, direction, gust float64) error {
	if err := e.checkSet(field.Wind); err != nil {
		return err
	}
	e.values.Wind = field.WindValue{Speed: speed, Direction: direction, Gust: gust}
	e.values.Set(field.Wind)

	return e.validate(field.Wind)
}

// SetRain sets the rate+size bundle.
func (e *Encoder) SetRain(rate, size float64) error {
	if err := e.checkSet(field.Rain); err != nil {
		return err
	}
	e.values.Rain = field.RainValue{Rate: rate, Size: size}
	e.values.Set(field.Rain)

	return e.validate(field.Rain)
}

// SetSolar sets the irradiance+UV bundle.
func (e *Encoder) SetSolar(irradiance float64, uv int) error {
	if err := e.checkSet(field.Solar); err != nil {
		return err
	}
	e.values.Solar = field.SolarValue{Irradiance: irradiance, UV: uv}
	e.values.Set(field.Solar)

	return e.validate(field.Solar)
}

// SetClouds sets the cloud-cover octas field.
func (e *Encoder) SetClouds(octas int) error {
	if err := e.checkSet(field.Clouds); err != nil {
		return err
	}
	e.values.Clouds = octas
	e.values.Set(field.Clouds)

	return e.validate(field.Clouds)
}

// SetAirQualityIndex sets the standalone AQI field.
func (e *Encoder) SetAirQualityIndex(aqi int) error {
	if err := e.checkSet(field.AirQualityIndex); err != nil {
		return err
	}
	e.values.AirQualityIndex = aqi
	e.values.Set(field.AirQualityIndex)

	return e.validate(field.AirQualityIndex)
}

// SetAirQualityPM sets the particulate-matter bitmap field. present
// selects which of the four slots (pm1_0, pm2_5, pm4_0, pm10) carry a
// value in values, in slot order.
func (e *Encoder) SetAirQualityPM(present uint8, values [4]float64) error {
	if err := e.checkSet(field.AirQualityPM); err != nil {
		return err
	}
	e.values.AirQualityPM = field.AirQualityPMValue{Mask: present, Values: values}
	e.values.Set(field.AirQualityPM)

	return e.validate(field.AirQualityPM)
}

// SetAirQualityGas sets the 8-slot gas bitmap field.
func (e *Encoder) SetAirQualityGas(present uint8, values [8]float64) error {
	if err := e.checkSet(field.AirQualityGas); err != nil {
		return err
	}
	e.values.AirQualityGas = field.AirQualityGasValue{Mask: present, Values: values}
	e.values.Set(field.AirQualityGas)

	return e.validate(field.AirQualityGas)
}

// SetRadiation sets the counts-per-minute+dose bundle.
func (e *Encoder) SetRadiation(cpm int, dose float64) error {
	if err := e.checkSet(field.Radiation); err != nil {
		return err
	}
	e.values.Radiation = field.RadiationValue{CPM: cpm, Dose: dose}
	e.values.Set(field.Radiation)

	return e.validate(field.Radiation)
}

// SetDepth sets the standalone depth field.
func (e *Encoder) SetDepth(cm int) error {
	if err := e.checkSet(field.Depth); err != nil {
		return err
	}
	e.values.Depth = cm
	e.values.Set(field.Depth)

	return e.validate(field.Depth)
}

// SetPosition sets the lat/lon bundle.
func (e *Encoder) SetPosition(lat, lon float64) error {
	if err := e.checkSet(field.Position); err != nil {
		return err
	}
	e.values.Position = field.PositionValue{Lat: lat, Lon: lon}
	e.values.Set(field.Position)

	return e.validate(field.Position)
}

// SetDatetime sets the datetime field: seconds since the start of the
// year, 0..83,886,075 (24-bit code x 5 s), rounded to a multiple of 5 by
// the field's quantiser.
func (e *Encoder) SetDatetime(unixSeconds int) error {
	if err := e.checkSet(field.Datetime); err != nil {
		return err
	}
	e.values.Datetime = unixSeconds
	e.values.Set(field.Datetime)

	return e.validate(field.Datetime)
}

// SetFlags sets the 8-bit application flags field.
func (e *Encoder) SetFlags(flags uint8) error {
	if err := e.checkSet(field.Flags); err != nil {
		return err
	}
	e.values.Flags = flags
	e.values.Set(field.Flags)

	return e.validate(field.Flags)
}

// SetImage sets the self-describing image field.
func (e *Encoder) SetImage(img image.Value) error {
	if err := e.checkSet(field.Image); err != nil {
		return err
	}
	e.values.Image = img
	e.values.Set(field.Image)

	return e.validate(field.Image)
}

// SetFieldJSON sets field type t from a previously decoded JSON value
// (a map[string]any, float64, bool, ... as encoding/json produces),
// using that field's own JSONApply. Used by the JSON projection to
// reconstruct an encode from a parsed JSON object without a field-type
// switch of its own.
func (e *Encoder) SetFieldJSON(t field.Type, raw any) error {
	if err := e.checkSet(t); err != nil {
		return err
	}
	d, ok := field.Lookup(t)
	if !ok {
		return fmt.Errorf("%w: %v has no registered field type", errs.ErrFieldRange, t)
	}
	if err := d.JSONApply(&e.values, raw); err != nil {
		return err
	}

	return e.validate(t)
}

// EncodeTLV appends one TLV metadata entry.
//
// Fails with errs.ErrTLVFull once 8 entries are already queued (spec
// §4.6), or errs.ErrCtxNotBegun if called before Begin.
func (e *Encoder) EncodeTLV(entry tlv.Entry) error {
	if e.state != stateBegun {
		return errs.ErrCtxNotBegun
	}
	if len(e.tlvs) >= tlv.MaxEntries {
		return fmt.Errorf("%w: %d entries", errs.ErrTLVFull, len(e.tlvs)+1)
	}
	e.tlvs = append(e.tlvs, entry)

	return nil
}

// End assembles the final packet: header, presence chain, field data in
// slot order (regardless of the order fields were set in), and any TLV
// block. End always leaves the Encoder in the ended state, win or lose;
// every field was already range-checked by its setter, so a failure here
// is a packet-level failure (not a field-range one) and a fresh Begin is
// required to try again.
//
// Fails with errs.ErrCtxAlreadyEnded if called twice, or any error the
// header, presence, field or TLV layers surface (most commonly
// errs.ErrBufTooSmall if the assembled packet would exceed MaxPacketLen).
func (e *Encoder) End() ([]byte, error) {
	if e.state == stateIdle {
		return nil, errs.ErrCtxNotBegun
	}
	if e.state == stateEnded {
		return nil, errs.ErrCtxAlreadyEnded
	}
	e.state = stateEnded

	var setSlots []int
	for i, slot := range e.entry.Slots {
		if slot.Type != field.None && e.values.Has(slot.Type) {
			setSlots = append(setSlots, i)
		}
	}

	presenceBytes, err := presence.Encode(setSlots, len(e.tlvs) > 0, e.entry.NumPresenceBytes)
	if err != nil {
		return nil, err
	}

	hdrBytes, err := encodeHeader(e.hdr)
	if err != nil {
		return nil, err
	}

	bodyBuf := make([]byte, MaxPacketLen)
	w := bitstream.NewWriter(bodyBuf)
	for _, slot := range e.entry.Slots {
		if slot.Type == field.None || !e.values.Has(slot.Type) {
			continue
		}
		d, ok := field.Lookup(slot.Type)
		if !ok {
			continue
		}
		if err := d.Encode(w, &e.values); err != nil {
			return nil, err
		}
	}
	if len(e.tlvs) > 0 {
		if err := tlv.Encode(w, e.tlvs); err != nil {
			return nil, err
		}
	}

	total := HeaderLen + len(presenceBytes) + w.Len()
	if total > MaxPacketLen {
		return nil, fmt.Errorf("%w: packet would be %d bytes", errs.ErrBufTooSmall, total)
	}

	out := make([]byte, 0, total)
	out = append(out, hdrBytes[:]...)
	out = append(out, presenceBytes...)
	out = append(out, w.Bytes()...)

	return out, nil
}
