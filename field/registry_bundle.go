package field

import (
	"fmt"

	"github.com/matthewgream/iotdata/bitstream"
	"github.com/matthewgream/iotdata/quant"
)

var (
	windSpeedQ = quant.Step{Low: 0, High: 63.5, Step: 0.5, Width: 7}
	windDirQ   = quant.Affine{Low: 0, High: 359, Width: 8}
	rainRateQ  = quant.Step{Low: 0, High: 255, Step: 1, Width: 8}
	rainSizeQ  = quant.Step{Low: 0, High: 60, Step: 4, Width: 4}
	solarIrrQ  = quant.Step{Low: 0, High: 1023, Step: 1, Width: 10}
	solarUVQ   = quant.Step{Low: 0, High: 15, Step: 1, Width: 4}
	radCPMQ    = quant.Step{Low: 0, High: 16383, Step: 1, Width: 14}
	radDoseQ   = quant.Step{Low: 0, High: 163.83, Step: 0.01, Width: 14}
	positionQ  = quant.Affine{Low: -90, High: 90, Width: 24} // lat; lon uses its own instance below
	positionLonQ = quant.Affine{Low: -180, High: 180, Width: 24}
)

func init() {
	register(Descriptor{
		Type: Environment, Name: "environment", Width: 24,
		Encode: func(w *bitstream.Writer, v *Values) error {
			return encodeTriple(w,
				temperatureQ, v.Environment.Temperature, 9,
				pressureQ, v.Environment.Pressure, 8,
				humidityQ, v.Environment.Humidity, 7)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			t, err := r.Get(9)
			if err != nil {
				return err
			}
			p, err := r.Get(8)
			if err != nil {
				return err
			}
			h, err := r.Get(7)
			if err != nil {
				return err
			}
			v.Environment = EnvironmentValue{
				Temperature: temperatureQ.Decode(t),
				Pressure:    pressureQ.Decode(p),
				Humidity:    humidityQ.Decode(h),
			}
			v.set(Environment)

			return nil
		},
		JSONEmit: func(v *Values) any {
			return map[string]any{
				"temperature": v.Environment.Temperature,
				"pressure":    v.Environment.Pressure,
				"humidity":    v.Environment.Humidity,
			}
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			t, err := asFloat(m["temperature"])
			if err != nil {
				return err
			}
			p, err := asFloat(m["pressure"])
			if err != nil {
				return err
			}
			h, err := asFloat(m["humidity"])
			if err != nil {
				return err
			}
			v.Environment = EnvironmentValue{Temperature: t, Pressure: p, Humidity: h}
			v.set(Environment)

			return nil
		},
		Print: func(v *Values) string {
			e := v.Environment

			return fmt.Sprintf("%.2f°C %.0fhPa %.0f%%", e.Temperature, e.Pressure, e.Humidity)
		},
	})

	register(Descriptor{
		Type: Wind, Name: "wind", Width: 22,
		Encode: func(w *bitstream.Writer, v *Values) error {
			speed, err := windSpeedQ.Encode(v.Wind.Speed)
			if err != nil {
				return err
			}
			dir, err := windDirQ.Encode(v.Wind.Direction)
			if err != nil {
				return err
			}
			gust, err := windSpeedQ.Encode(v.Wind.Gust)
			if err != nil {
				return err
			}
			if err := w.Put(speed, 7); err != nil {
				return err
			}
			if err := w.Put(dir, 8); err != nil {
				return err
			}

			return w.Put(gust, 7)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			speed, err := r.Get(7)
			if err != nil {
				return err
			}
			dir, err := r.Get(8)
			if err != nil {
				return err
			}
			gust, err := r.Get(7)
			if err != nil {
				return err
			}
			v.Wind = WindValue{Speed: windSpeedQ.Decode(speed), Direction: windDirQ.Decode(dir), Gust: windSpeedQ.Decode(gust)}
			v.set(Wind)

			return nil
		},
		JSONEmit: func(v *Values) any {
			return map[string]any{"speed": v.Wind.Speed, "direction": v.Wind.Direction, "gust": v.Wind.Gust}
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			speed, err := asFloat(m["speed"])
			if err != nil {
				return err
			}
			dir, err := asFloat(m["direction"])
			if err != nil {
				return err
			}
			gust, err := asFloat(m["gust"])
			if err != nil {
				return err
			}
			v.Wind = WindValue{Speed: speed, Direction: dir, Gust: gust}
			v.set(Wind)

			return nil
		},
		Print: func(v *Values) string {
			return fmt.Sprintf("%.1fm/s @%.0f° gust %.1fm/s", v.Wind.Speed, v.Wind.Direction, v.Wind.Gust)
		},
	})

	register(Descriptor{
		Type: Rain, Name: "rain", Width: 12,
		Encode: func(w *bitstream.Writer, v *Values) error {
			rate, err := rainRateQ.Encode(v.Rain.Rate)
			if err != nil {
				return err
			}
			size, err := rainSizeQ.Encode(v.Rain.Size)
			if err != nil {
				return err
			}
			if err := w.Put(rate, 8); err != nil {
				return err
			}

			return w.Put(size, 4)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			rate, err := r.Get(8)
			if err != nil {
				return err
			}
			size, err := r.Get(4)
			if err != nil {
				return err
			}
			v.Rain = RainValue{Rate: rainRateQ.Decode(rate), Size: rainSizeQ.Decode(size)}
			v.set(Rain)

			return nil
		},
		JSONEmit: func(v *Values) any { return map[string]any{"rate": v.Rain.Rate, "size": v.Rain.Size} },
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			rate, err := asFloat(m["rate"])
			if err != nil {
				return err
			}
			size, err := asFloat(m["size"])
			if err != nil {
				return err
			}
			v.Rain = RainValue{Rate: rate, Size: size}
			v.set(Rain)

			return nil
		},
		Print: func(v *Values) string { return fmt.Sprintf("%.0fmm/h %.0fmm", v.Rain.Rate, v.Rain.Size) },
	})

	register(Descriptor{
		Type: Solar, Name: "solar", Width: 14,
		Encode: func(w *bitstream.Writer, v *Values) error {
			irr, err := solarIrrQ.Encode(v.Solar.Irradiance)
			if err != nil {
				return err
			}
			uv, err := solarUVQ.Encode(float64(v.Solar.UV))
			if err != nil {
				return err
			}
			if err := w.Put(irr, 10); err != nil {
				return err
			}

			return w.Put(uv, 4)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			irr, err := r.Get(10)
			if err != nil {
				return err
			}
			uv, err := r.Get(4)
			if err != nil {
				return err
			}
			v.Solar = SolarValue{Irradiance: solarIrrQ.Decode(irr), UV: int(solarUVQ.Decode(uv))}
			v.set(Solar)

			return nil
		},
		JSONEmit: func(v *Values) any {
			return map[string]any{"irradiance": v.Solar.Irradiance, "uv": v.Solar.UV}
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			irr, err := asFloat(m["irradiance"])
			if err != nil {
				return err
			}
			uv, err := asFloat(m["uv"])
			if err != nil {
				return err
			}
			v.Solar = SolarValue{Irradiance: irr, UV: int(uv)}
			v.set(Solar)

			return nil
		},
		Print: func(v *Values) string { return fmt.Sprintf("%.0fW/m² uv=%d", v.Solar.Irradiance, v.Solar.UV) },
	})

	register(Descriptor{
		Type: Radiation, Name: "radiation", Width: 30,
		Encode: func(w *bitstream.Writer, v *Values) error {
			cpm, err := radCPMQ.Encode(float64(v.Radiation.CPM))
			if err != nil {
				return err
			}
			dose, err := radDoseQ.Encode(v.Radiation.Dose)
			if err != nil {
				return err
			}
			if err := w.Put(cpm, 14); err != nil {
				return err
			}

			return w.Put(dose, 14)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			cpm, err := r.Get(14)
			if err != nil {
				return err
			}
			dose, err := r.Get(14)
			if err != nil {
				return err
			}
			v.Radiation = RadiationValue{CPM: int(radCPMQ.Decode(cpm)), Dose: radDoseQ.Decode(dose)}
			v.set(Radiation)

			return nil
		},
		JSONEmit: func(v *Values) any {
			return map[string]any{"cpm": v.Radiation.CPM, "dose": v.Radiation.Dose}
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			cpm, err := asFloat(m["cpm"])
			if err != nil {
				return err
			}
			dose, err := asFloat(m["dose"])
			if err != nil {
				return err
			}
			v.Radiation = RadiationValue{CPM: int(cpm), Dose: dose}
			v.set(Radiation)

			return nil
		},
		Print: func(v *Values) string { return fmt.Sprintf("%dcpm %.2fµSv/h", v.Radiation.CPM, v.Radiation.Dose) },
	})

	register(Descriptor{
		Type: Position, Name: "position", Width: 48,
		Encode: func(w *bitstream.Writer, v *Values) error {
			lat, err := positionQ.Encode(v.Position.Lat)
			if err != nil {
				return err
			}
			lon, err := positionLonQ.Encode(v.Position.Lon)
			if err != nil {
				return err
			}
			if err := w.Put(lat, 24); err != nil {
				return err
			}

			return w.Put(lon, 24)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			lat, err := r.Get(24)
			if err != nil {
				return err
			}
			lon, err := r.Get(24)
			if err != nil {
				return err
			}
			v.Position = PositionValue{Lat: positionQ.Decode(lat), Lon: positionLonQ.Decode(lon)}
			v.set(Position)

			return nil
		},
		JSONEmit: func(v *Values) any {
			return map[string]any{"lat": v.Position.Lat, "lon": v.Position.Lon}
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			lat, err := asFloat(m["lat"])
			if err != nil {
				return err
			}
			lon, err := asFloat(m["lon"])
			if err != nil {
				return err
			}
			v.Position = PositionValue{Lat: lat, Lon: lon}
			v.set(Position)

			return nil
		},
		Print: func(v *Values) string { return fmt.Sprintf("%.6f,%.6f", v.Position.Lat, v.Position.Lon) },
	})
}

// encodeTriple writes three independently-quantised sub-fields in order.
func encodeTriple(w *bitstream.Writer,
	q1 quant.Step, v1 float64, w1 int,
	q2 quant.Step, v2 float64, w2 int,
	q3 quant.Step, v3 float64, w3 int,
) error {
	c1, err := q1.Encode(v1)
	if err != nil {
		return err
	}
	c2, err := q2.Encode(v2)
	if err != nil {
		return err
	}
	c3, err := q3.Encode(v3)
	if err != nil {
		return err
	}
	if err := w.Put(c1, w1); err != nil {
		return err
	}
	if err := w.Put(c2, w2); err != nil {
		return err
	}

	return w.Put(c3, w3)
}
