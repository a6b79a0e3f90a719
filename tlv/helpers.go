package tlv

import (
	"fmt"

	"github.com/matthewgream/iotdata/errs"
)

// The six reserved type codes each have a typed constructor/parser pair.
// VERSION and CONFIG are free-form key/value string lists; STATUS and
// HEALTH are fixed-layout raw records; DIAGNOSTIC and USERDATA may be
// either, left to the caller.

// NewVersion builds a VERSION entry from an even-length key/value list,
// e.g. []string{"FW", "1.4.2", "HW", "REV3"}.
func NewVersion(kv []string) (Entry, error) {
	s, err := joinKV(kv)
	if err != nil {
		return Entry{}, err
	}
	if err := validateString(s); err != nil {
		return Entry{}, err
	}

	return Entry{Type: TypeVersion, Format: FormatString, Str: s}, nil
}

// ParseVersion reverses NewVersion.
func ParseVersion(e Entry) ([]string, error) {
	if e.Type != TypeVersion || e.Format != FormatString {
		return nil, fmt.Errorf("%w: not a VERSION entry", errs.ErrTLVTypeRange)
	}

	return splitKV(e.Str), nil
}

// NewConfig builds a CONFIG entry, same layout as VERSION.
func NewConfig(kv []string) (Entry, error) {
	e, err := NewVersion(kv)
	if err != nil {
		return Entry{}, err
	}
	e.Type = TypeConfig

	return e, nil
}

// ParseConfig reverses NewConfig.
func ParseConfig(e Entry) ([]string, error) {
	if e.Type != TypeConfig || e.Format != FormatString {
		return nil, fmt.Errorf("%w: not a CONFIG entry", errs.ErrTLVTypeRange)
	}

	return splitKV(e.Str), nil
}

// NewStatus builds a STATUS entry: a fixed 9-byte raw record of
// session_s/5 (24 bits), lifetime_s/5 (24 bits), restarts (16 bits) and a
// reason code (8 bits), all rounded down to the nearest 5 seconds.
func NewStatus(sessionS, lifetimeS int, restarts int, reason uint8) (Entry, error) {
	if sessionS < 0 || lifetimeS < 0 || restarts < 0 {
		return Entry{}, fmt.Errorf("%w: negative status field", errs.ErrFieldRange)
	}
	sessionTicks := sessionS / 5
	lifetimeTicks := lifetimeS / 5
	if sessionTicks > 0xFFFFFF || lifetimeTicks > 0xFFFFFF || restarts > 0xFFFF {
		return Entry{}, fmt.Errorf("%w: status field overflow", errs.ErrFieldRange)
	}

	raw := make([]byte, 9)
	putUint24(raw[0:3], uint32(sessionTicks))
	putUint24(raw[3:6], uint32(lifetimeTicks))
	raw[6] = byte(restarts >> 8)
	raw[7] = byte(restarts)
	raw[8] = reason

	return Entry{Type: TypeStatus, Format: FormatRaw, Raw: raw}, nil
}

// StatusValue is the decoded form of a STATUS entry.
type StatusValue struct {
	SessionS  int
	LifetimeS int
	Restarts  int
	Reason    uint8
}

// ParseStatus reverses NewStatus.
func ParseStatus(e Entry) (StatusValue, error) {
	if e.Type != TypeStatus || e.Format != FormatRaw || len(e.Raw) != 9 {
		return StatusValue{}, fmt.Errorf("%w: not a STATUS entry", errs.ErrTLVTypeRange)
	}

	return StatusValue{
		SessionS:  int(getUint24(e.Raw[0:3])) * 5,
		LifetimeS: int(getUint24(e.Raw[3:6])) * 5,
		Restarts:  int(e.Raw[6])<<8 | int(e.Raw[7]),
		Reason:    e.Raw[8],
	}, nil
}

// NewHealth builds a HEALTH entry: cpu temperature in 0.5C (8 bits),
// supply voltage in mV (16 bits), free heap in bytes (16 bits), and active
// time in 5s ticks (16 bits) — a 7-byte raw record.
func NewHealth(cpuC int, supplyMV, freeHeap, activeS int) (Entry, error) {
	if supplyMV < 0 || freeHeap < 0 || activeS < 0 {
		return Entry{}, fmt.Errorf("%w: negative health field", errs.ErrFieldRange)
	}
	activeTicks := activeS / 5
	if supplyMV > 0xFFFF || freeHeap > 0xFFFF || activeTicks > 0xFFFF {
		return Entry{}, fmt.Errorf("%w: health field overflow", errs.ErrFieldRange)
	}
	cpuCode := cpuC*2 + 128
	if cpuCode < 0 || cpuCode > 0xFF {
		return Entry{}, fmt.Errorf("%w: cpu temperature out of range", errs.ErrFieldRange)
	}

	raw := make([]byte, 7)
	raw[0] = byte(cpuCode)
	raw[1] = byte(supplyMV >> 8)
	raw[2] = byte(supplyMV)
	raw[3] = byte(freeHeap >> 8)
	raw[4] = byte(freeHeap)
	raw[5] = byte(activeTicks >> 8)
	raw[6] = byte(activeTicks)

	return Entry{Type: TypeHealth, Format: FormatRaw, Raw: raw}, nil
}

// HealthValue is the decoded form of a HEALTH entry.
type HealthValue struct {
	CPUC     int
	SupplyMV int
	FreeHeap int
	ActiveS  int
}

// ParseHealth reverses NewHealth.
func ParseHealth(e Entry) (HealthValue, error) {
	if e.Type != TypeHealth || e.Format != FormatRaw || len(e.Raw) != 7 {
		return HealthValue{}, fmt.Errorf("%w: not a HEALTH entry", errs.ErrTLVTypeRange)
	}

	return HealthValue{
		CPUC:     (int(e.Raw[0]) - 128) / 2,
		SupplyMV: int(e.Raw[1])<<8 | int(e.Raw[2]),
		FreeHeap: int(e.Raw[3])<<8 | int(e.Raw[4]),
		ActiveS:  (int(e.Raw[5])<<8 | int(e.Raw[6])) * 5,
	}, nil
}

// NewDiagnosticRaw builds a DIAGNOSTIC entry carrying opaque bytes.
func NewDiagnosticRaw(data []byte) (Entry, error) {
	if len(data) > MaxRawLen {
		return Entry{}, fmt.Errorf("%w: %d bytes", errs.ErrTLVLengthRange, len(data))
	}

	return Entry{Type: TypeDiagnostic, Format: FormatRaw, Raw: data}, nil
}

// NewDiagnosticString builds a DIAGNOSTIC entry carrying a 6-bit string.
func NewDiagnosticString(s string) (Entry, error) {
	if err := validateString(s); err != nil {
		return Entry{}, err
	}

	return Entry{Type: TypeDiagnostic, Format: FormatString, Str: s}, nil
}

// NewUserdataRaw builds a USERDATA entry carrying opaque bytes.
func NewUserdataRaw(data []byte) (Entry, error) {
	if len(data) > MaxRawLen {
		return Entry{}, fmt.Errorf("%w: %d bytes", errs.ErrTLVLengthRange, len(data))
	}

	return Entry{Type: TypeUserdata, Format: FormatRaw, Raw: data}, nil
}

// NewUserdataString builds a USERDATA entry carrying a 6-bit string.
func NewUserdataString(s string) (Entry, error) {
	if err := validateString(s); err != nil {
		return Entry{}, err
	}

	return Entry{Type: TypeUserdata, Format: FormatString, Str: s}, nil
}

func putUint24(dst []byte, v uint32) {
	dst[0] = byte(v >> 16)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v)
}

func getUint24(src []byte) uint32 {
	return uint32(src[0])<<16 | uint32(src[1])<<8 | uint32(src[2])
}
