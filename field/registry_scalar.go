package field

import (
	"fmt"

	"github.com/matthewgream/iotdata/bitstream"
	"github.com/matthewgream/iotdata/quant"
)

var (
	batteryLevelQ = quant.Affine{Low: 0, High: 100, Width: 5}
	linkRSSIQ     = quant.Step{Low: -120, High: -60, Step: 4, Width: 4}
	linkSNRQ      = quant.Step{Low: -20, High: 10, Step: 10, Width: 2}
	temperatureQ  = quant.Step{Low: -40, High: 80, Step: 0.25, Width: 9}
	pressureQ     = quant.Step{Low: 850, High: 1105, Step: 1, Width: 8}
	humidityQ     = quant.Step{Low: 0, High: 100, Step: 1, Width: 7}
	cloudsQ       = quant.Step{Low: 0, High: 8, Step: 1, Width: 4}
	aqiQ          = quant.Step{Low: 0, High: 500, Step: 1, Width: 9}
	depthQ        = quant.Step{Low: 0, High: 1023, Step: 1, Width: 10}
	datetimeQ     = quant.Step{Low: 0, High: float64((uint32(1)<<24 - 1)) * 5, Step: 5, Width: 24}
)

func init() {
	register(Descriptor{
		Type: Battery, Name: "battery", Width: 6,
		Encode: func(w *bitstream.Writer, v *Values) error {
			code, err := batteryLevelQ.Encode(v.Battery.Level)
			if err != nil {
				return err
			}
			if err := w.Put(code, 5); err != nil {
				return err
			}
			charging := uint32(0)
			if v.Battery.Charging {
				charging = 1
			}

			return w.Put(charging, 1)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			level, err := r.Get(5)
			if err != nil {
				return err
			}
			charging, err := r.Get(1)
			if err != nil {
				return err
			}
			v.Battery = BatteryValue{Level: batteryLevelQ.Decode(level), Charging: charging != 0}
			v.set(Battery)

			return nil
		},
		JSONEmit: func(v *Values) any {
			return map[string]any{"level": v.Battery.Level, "charging": v.Battery.Charging}
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			level, err := asFloat(m["level"])
			if err != nil {
				return err
			}
			v.Battery = BatteryValue{Level: level, Charging: asBoolOr(m["charging"], false)}
			v.set(Battery)

			return nil
		},
		Print: func(v *Values) string {
			return fmt.Sprintf("%.0f%% charging=%t", v.Battery.Level, v.Battery.Charging)
		},
	})

	register(Descriptor{
		Type: Link, Name: "link", Width: 6,
		Encode: func(w *bitstream.Writer, v *Values) error {
			rssi, err := linkRSSIQ.Encode(v.Link.RSSI)
			if err != nil {
				return err
			}
			snr, err := linkSNRQ.Encode(v.Link.SNR)
			if err != nil {
				return err
			}
			if err := w.Put(rssi, 4); err != nil {
				return err
			}

			return w.Put(snr, 2)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			rssi, err := r.Get(4)
			if err != nil {
				return err
			}
			snr, err := r.Get(2)
			if err != nil {
				return err
			}
			v.Link = LinkValue{RSSI: linkRSSIQ.Decode(rssi), SNR: linkSNRQ.Decode(snr)}
			v.set(Link)

			return nil
		},
		JSONEmit: func(v *Values) any {
			return map[string]any{"rssi": v.Link.RSSI, "snr": v.Link.SNR}
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			rssi, err := asFloat(m["rssi"])
			if err != nil {
				return err
			}
			snr, err := asFloat(m["snr"])
			if err != nil {
				return err
			}
			v.Link = LinkValue{RSSI: rssi, SNR: snr}
			v.set(Link)

			return nil
		},
		Print: func(v *Values) string {
			return fmt.Sprintf("rssi=%.0fdBm snr=%.0fdB", v.Link.RSSI, v.Link.SNR)
		},
	})

	register(scalarDescriptor(Temperature, "temperature", 9, temperatureQ,
		func(v *Values) float64 { return v.Temperature },
		func(v *Values, f float64) { v.Temperature = f }))

	register(scalarDescriptor(Pressure, "pressure", 8, pressureQ,
		func(v *Values) float64 { return v.Pressure },
		func(v *Values, f float64) { v.Pressure = f }))

	register(scalarDescriptor(Humidity, "humidity", 7, humidityQ,
		func(v *Values) float64 { return v.Humidity },
		func(v *Values, f float64) { v.Humidity = f }))

	register(intDescriptor(Clouds, "clouds", 4, cloudsQ,
		func(v *Values) int { return v.Clouds },
		func(v *Values, i int) { v.Clouds = i }))

	register(intDescriptor(AirQualityIndex, "air_quality_index", 9, aqiQ,
		func(v *Values) int { return v.AirQualityIndex },
		func(v *Values, i int) { v.AirQualityIndex = i }))

	register(intDescriptor(Depth, "depth", 10, depthQ,
		func(v *Values) int { return v.Depth },
		func(v *Values, i int) { v.Depth = i }))

	register(intDescriptor(Datetime, "datetime", 24, datetimeQ,
		func(v *Values) int { return v.Datetime },
		func(v *Values, i int) { v.Datetime = i }))

	register(Descriptor{
		Type: Flags, Name: "flags", Width: 8,
		Encode: func(w *bitstream.Writer, v *Values) error { return w.Put(uint32(v.Flags), 8) },
		Decode: func(r *bitstream.Reader, v *Values) error {
			b, err := r.Get(8)
			if err != nil {
				return err
			}
			v.Flags = uint8(b)
			v.set(Flags)

			return nil
		},
		JSONEmit:  func(v *Values) any { return v.Flags },
		JSONApply: func(v *Values, raw any) error { f, err := asFloat(raw); v.Flags = uint8(f); v.set(Flags); return err },
		Print:     func(v *Values) string { return fmt.Sprintf("0x%02x", v.Flags) },
	})
}

// scalarDescriptor builds a Descriptor for a single quant-coded float
// field with no sub-structure (temperature, pressure, humidity).
func scalarDescriptor(t Type, name string, width int, q quant.Step, get func(*Values) float64, set func(*Values, float64)) Descriptor {
	return Descriptor{
		Type: t, Name: name, Width: width,
		Encode: func(w *bitstream.Writer, v *Values) error {
			code, err := q.Encode(get(v))
			if err != nil {
				return err
			}

			return w.Put(code, width)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			code, err := r.Get(width)
			if err != nil {
				return err
			}
			set(v, q.Decode(code))
			v.set(t)

			return nil
		},
		JSONEmit: func(v *Values) any { return get(v) },
		JSONApply: func(v *Values, raw any) error {
			f, err := asFloat(raw)
			if err != nil {
				return err
			}
			set(v, f)
			v.set(t)

			return nil
		},
		Print: func(v *Values) string { return fmt.Sprintf("%.2f", get(v)) },
	}
}

// intDescriptor is scalarDescriptor for integer-valued fields (clouds,
// AQI, depth, datetime): same quantisation machinery, rounded to int on
// decode since these domains are always whole numbers.
func intDescriptor(t Type, name string, width int, q quant.Step, get func(*Values) int, set func(*Values, int)) Descriptor {
	return Descriptor{
		Type: t, Name: name, Width: width,
		Encode: func(w *bitstream.Writer, v *Values) error {
			code, err := q.Encode(float64(get(v)))
			if err != nil {
				return err
			}

			return w.Put(code, width)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			code, err := r.Get(width)
			if err != nil {
				return err
			}
			set(v, int(q.Decode(code)))
			v.set(t)

			return nil
		},
		JSONEmit: func(v *Values) any { return get(v) },
		JSONApply: func(v *Values, raw any) error {
			f, err := asFloat(raw)
			if err != nil {
				return err
			}
			set(v, int(f))
			v.set(t)

			return nil
		},
		Print: func(v *Values) string { return fmt.Sprintf("%d", get(v)) },
	}
}
