// Package field is the static FieldRegistry: one descriptor per field-type
// id, each exposing wire width (or a width computed from its own contents),
// and the encode/decode/JSON/print behaviour for that type. VariantMap
// references fields only by Type id; the registry is the single source of
// truth for what a Type id means (spec §4.3).
package field

import "github.com/matthewgream/iotdata/image"

// Type identifies a field kind. Values are stable across releases: new
// field-types are appended, never renumbered (spec §6).
type Type uint8

const (
	// None is the VariantMap sentinel for an unused slot. It is never
	// present in a decoded record's presence mask.
	None Type = iota
	Battery
	Link
	Temperature
	Pressure
	Humidity
	Environment
	Wind
	Rain
	Solar
	Clouds
	AirQualityIndex
	AirQualityPM
	AirQualityGas
	Radiation
	Depth
	Position
	Datetime
	Flags
	Image
	numTypes
)

func (t Type) String() string {
	if d, ok := lookup(t); ok {
		return d.Name
	}

	return "unknown"
}

// BatteryValue holds the battery field's decoded sub-fields.
type BatteryValue struct {
	Level    float64 // percent, 0..100
	Charging bool
}

// LinkValue holds the radio-link quality field's decoded sub-fields.
type LinkValue struct {
	RSSI float64 // dBm
	SNR  float64 // dB
}

// EnvironmentValue is the temperature+pressure+humidity bundle.
type EnvironmentValue struct {
	Temperature float64 // °C
	Pressure    float64 // hPa
	Humidity    float64 // percent
}

// WindValue is the speed+direction+gust bundle.
type WindValue struct {
	Speed     float64 // m/s
	Direction float64 // degrees
	Gust      float64 // m/s
}

// RainValue is the rate+size bundle.
type RainValue struct {
	Rate float64 // mm/h
	Size float64 // mm
}

// SolarValue is the irradiance+UV-index bundle.
type SolarValue struct {
	Irradiance float64 // W/m^2
	UV         int     // UV index 0..15
}

// airQualityPMSlots names the four PM sub-slots in wire order.
var airQualityPMSlots = [4]string{"pm1_0", "pm2_5", "pm4_0", "pm10"}

// AirQualityPMValue is the 4-slot particulate-matter bitmap field.
//
// Mask bit i set iff Values[i] is present; units are µg/m³.
type AirQualityPMValue struct {
	Mask   uint8
	Values [4]float64
}

// airQualityGasSlots names the eight gas sub-slots in wire order; the
// last two are reserved and carry a raw, unscaled code.
var airQualityGasSlots = [8]string{"voc", "nox", "co2", "co", "hcho", "o3", "reserved0", "reserved1"}

// AirQualityGasValue is the 8-slot gas bitmap field, each slot with its
// own width and scale per spec §3.
type AirQualityGasValue struct {
	Mask   uint8
	Values [8]float64
}

// RadiationValue is the cpm+dose bundle.
type RadiationValue struct {
	CPM  int     // counts per minute, 0..16383
	Dose float64 // µSv/h
}

// PositionValue is the lat/lon bundle.
type PositionValue struct {
	Lat, Lon float64
}

// Values holds every field a decoded record (or an in-progress encode) may
// carry, plus the 32-bit "fields present" mask over Type ids that spec §3
// requires. Exactly one bit per Type, never the sub-slot bitmaps inside
// AirQualityPM/AirQualityGas, which are internal to those two fields.
type Values struct {
	Present uint32

	Battery         BatteryValue
	Link            LinkValue
	Temperature     float64
	Pressure        float64
	Humidity        float64
	Environment     EnvironmentValue
	Wind            WindValue
	Rain            RainValue
	Solar           SolarValue
	Clouds          int
	AirQualityIndex int
	AirQualityPM    AirQualityPMValue
	AirQualityGas   AirQualityGasValue
	Radiation       RadiationValue
	Depth           int
	Position        PositionValue
	Datetime        int
	Flags           uint8
	Image           image.Value
}

// Has reports whether t's bit is set in the presence mask.
func (v *Values) Has(t Type) bool {
	return v.Present&(1<<uint(t)) != 0
}

func (v *Values) set(t Type) {
	v.Present |= 1 << uint(t)
}

// Set marks t present without touching its value, for callers (the
// Encoder) that populate a field's struct directly and then need the
// presence mask updated to match.
func (v *Values) Set(t Type) {
	v.set(t)
}

// Unset clears t's presence bit without touching its stored value, for
// callers (the Encoder) that provisionally mark a field present to
// validate it and must roll the mark back on a range failure.
func (v *Values) Unset(t Type) {
	v.Present &^= 1 << uint(t)
}
