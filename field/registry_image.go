package field

import (
	"encoding/base64"
	"fmt"

	"github.com/matthewgream/iotdata/bitstream"
	"github.com/matthewgream/iotdata/errs"
	"github.com/matthewgream/iotdata/image"
)

func init() {
	register(Descriptor{
		Type: Image, Name: "image",
		ComputeWidth: func(v *Values) int { return v.Image.ComputeWidth() },
		Encode: func(w *bitstream.Writer, v *Values) error {
			return v.Image.Encode(w)
		},
		Decode: func(r *bitstream.Reader, v *Values) error {
			img, err := image.Decode(r)
			if err != nil {
				return err
			}
			v.Image = img
			v.set(Image)

			return nil
		},
		JSONEmit: func(v *Values) any {
			return map[string]any{
				"pixel_format": v.Image.PixelFormat,
				"size_tier":    v.Image.SizeTier,
				"compression":  v.Image.Compression,
				"flags":        v.Image.Flags,
				"data":         base64.StdEncoding.EncodeToString(v.Image.Data),
			}
		},
		JSONApply: func(v *Values, raw any) error {
			m, err := asObject(raw)
			if err != nil {
				return err
			}
			pf, err := asFloat(m["pixel_format"])
			if err != nil {
				return err
			}
			st, err := asFloat(m["size_tier"])
			if err != nil {
				return err
			}
			cm, err := asFloat(m["compression"])
			if err != nil {
				return err
			}
			fl, err := asFloat(m["flags"])
			if err != nil {
				return err
			}
			dataStr, err := asString(m["data"])
			if err != nil {
				return err
			}
			data, err := base64.StdEncoding.DecodeString(dataStr)
			if err != nil {
				return fmt.Errorf("%w: image data: %w", errs.ErrJSONParse, err)
			}
			v.Image = image.Value{
				PixelFormat: image.PixelFormat(pf),
				SizeTier:    image.SizeTier(st),
				Compression: image.Compression(cm),
				Flags:       uint8(fl),
				Data:        data,
			}
			v.set(Image)

			return nil
		},
		Print: func(v *Values) string {
			return fmt.Sprintf("format=%d size=%d compression=%d %dB", v.Image.PixelFormat, v.Image.SizeTier, v.Image.Compression, len(v.Image.Data))
		},
	})
}
