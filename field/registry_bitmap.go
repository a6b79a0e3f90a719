package field

import (
	"fmt"
	"math/bits"

	"github.com/matthewgream/iotdata/bitstream"
	"github.com/matthewgream/iotdata/quant"
)

var airQualityPMQ = quant.Step{Low: 0, High: 1275, Step: 5, Width: 8}

var airQualityGasQ = [8]quant.Step{
	{Low: 0, High: 508, Step: 4, Width: 7},    // voc
	{Low: 0, High: 508, Step: 4, Width: 7},    // nox
	{Low: 0, High: 51150, Step: 50, Width: 10}, // co2
	{Low: 0, High: 1023, Step: 1, Width: 10},  // co
	{Low: 0, High: 5115, Step: 5, Width: 10},  // hcho
	{Low: 0, High: 1023, Step: 1, Width: 10},  // o3
	{Low: 0, High: 1023, Step: 1, Width: 10},  // reserved0
	{Low: 0, High: 1023, Step: 1, Width: 10},  // reserved1
}

func init() {
	register(Descriptor{
		Type: AirQualityPM, Name: "air_quality_pm",
		ComputeWidth: func(v *Values) int {
			return 4 + 8*bits.OnesCount8(v.AirQualityPM.Mask)
		},
		Encode: func(w *bitstream.Writer, v *Values) error {
			if err := w.Put(uint32(v.AirQualityPM.Mask), 4); err != nil {
				return err
			}
			for i := 0; i < 4; i++ {
				if v.AirQualityPM.Mask&(1<<uint(i)) == 0 {
					continue
				}
				code, err := airQualityPMQ.Encode(v.AirQualityPM.Values[i])
				if err != nil {
					return err
				}
				if err := w.Put(code, 8); err != nil {
					return err
				}
			}

			return nil
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			mask, err := r.Get(4)
			if err != nil {
				return err
			}
			out := AirQualityPMValue{Mask: uint8(mask)}
			for i := 0; i < 4; i++ {
				if out.Mask&(1<<uint(i)) == 0 {
					continue
				}
				code, err := r.Get(8)
				if err != nil {
					return err
				}
				out.Values[i] = airQualityPMQ.Decode(code)
			}
			v.AirQualityPM = out
			v.set(AirQualityPM)

			return nil
		},
		JSONEmit: func(v *Values) any {
			m := map[string]any{}
			for i := 0; i < 4; i++ {
				if v.AirQualityPM.Mask&(1<<uint(i)) != 0 {
					m[airQualityPMSlots[i]] = v.AirQualityPM.Values[i]
				}
			}

			return m
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			out := AirQualityPMValue{}
			for i, name := range airQualityPMSlots {
				if f, ok := m[name]; ok {
					val, err := asFloat(f)
					if err != nil {
						return err
					}
					out.Mask |= 1 << uint(i)
					out.Values[i] = val
				}
			}
			v.AirQualityPM = out
			v.set(AirQualityPM)

			return nil
		},
		Print: func(v *Values) string {
			return fmt.Sprintf("pm mask=0x%x %v", v.AirQualityPM.Mask, v.AirQualityPM.Values)
		},
	})

	register(Descriptor{
		Type: AirQualityGas, Name: "air_quality_gas",
		ComputeWidth: func(v *Values) int {
			total := 8
			for i := 0; i < 8; i++ {
				if v.AirQualityGas.Mask&(1<<uint(i)) != 0 {
					total += airQualityGasQ[i].Width
				}
			}

			return total
		},
		Encode: func(w *bitstream.Writer, v *Values) error {
			if err := w.Put(uint32(v.AirQualityGas.Mask), 8); err != nil {
				return err
			}
			for i := 0; i < 8; i++ {
				if v.AirQualityGas.Mask&(1<<uint(i)) == 0 {
					continue
				}
				q := airQualityGasQ[i]
				code, err := q.Encode(v.AirQualityGas.Values[i])
				if err != nil {
					return err
				}
				if err := w.Put(code, q.Width); err != nil {
					return err
				}
			}

			return nil
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			mask, err := r.Get(8)
			if err != nil {
				return err
			}
			out := AirQualityGasValue{Mask: uint8(mask)}
			for i := 0; i < 8; i++ {
				if out.Mask&(1<<uint(i)) == 0 {
					continue
				}
				q := airQualityGasQ[i]
				code, err := r.Get(q.Width)
				if err != nil {
					return err
				}
				out.Values[i] = q.Decode(code)
			}
			v.AirQualityGas = out
			v.set(AirQualityGas)

			return nil
		},
		JSONEmit: func(v *Values) any {
			m := map[string]any{}
			for i := 0; i < 8; i++ {
				if v.AirQualityGas.Mask&(1<<uint(i)) != 0 {
					m[airQualityGasSlots[i]] = v.AirQualityGas.Values[i]
				}
			}

			return m
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			out := AirQualityGasValue{}
			for i, name := range airQualityGasSlots {
				if f, ok := m[name]; ok {
					val, err := asFloat(f)
					if err != nil {
						return err
					}
					out.Mask |= 1 << uint(i)
					out.Values[i] = val
				}
			}
			v.AirQualityGas = out
			v.set(AirQualityGas)

			return nil
		},
		Print: func(v *Values) string {
			return fmt.Sprintf("gas mask=0x%02x %v", v.AirQualityGas.Mask, v.AirQualityGas.Values)
		},
	})
}
