package field

import (
	"fmt"

	"github.com/matthewgream/iotdata/errs"
)

// asObject type-asserts raw (already encoding/json-decoded into `any`) as
// a JSON object.
func asObject(raw any) (map[string]any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", errs.ErrJSONParse, raw)
	}

	return m, nil
}

// asFloat type-asserts raw as a JSON number (encoding/json decodes all
// numbers as float64 into `any`).
func asFloat(raw any) (float64, error) {
	f, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: expected number, got %T", errs.ErrJSONParse, raw)
	}

	return f, nil
}

func asBoolOr(raw any, def bool) bool {
	if b, ok := raw.(bool); ok {
		return b
	}

	return def
}

func asString(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", errs.ErrJSONParse, raw)
	}

	return s, nil
}
