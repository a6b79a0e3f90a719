package tlv

import (
	"fmt"
	"strings"

	"github.com/matthewgream/iotdata/errs"
)

// The TLV string format packs characters into 6 bits each (spec §4.6
// leaves the exact mapping as an Open Question, §9, resolved here and in
// SPEC_FULL.md):
//
//	codes  0..9   -> '0'..'9'
//	codes 10..35  -> 'A'..'Z'
//	code  36      -> ' '
//	codes 37..47  -> punctuation table below (11 symbols)
//	codes 48..63  -> reserved, never valid
const punctuation = ".,-:/+*#?!@"

var charToCode map[rune]uint8
var codeToChar [64]rune

func init() {
	charToCode = make(map[rune]uint8, 64)
	for i := 0; i < 10; i++ {
		c := rune('0' + i)
		charToCode[c] = uint8(i)
		codeToChar[i] = c
	}
	for i := 0; i < 26; i++ {
		c := rune('A' + i)
		charToCode[c] = uint8(10 + i)
		codeToChar[10+i] = c
	}
	charToCode[' '] = 36
	codeToChar[36] = ' '
	for i, c := range punctuation {
		charToCode[c] = uint8(37 + i)
		codeToChar[37+i] = c
	}
	for i := 37 + len(punctuation); i < 64; i++ {
		codeToChar[i] = 0 // unmapped, invalid on decode
	}
}

// encodeChar maps a character to its 6-bit code.
//
// Returns errs.ErrTLVStrCharInvalid if c is outside the 6-bit character
// set.
func encodeChar(c rune) (uint8, error) {
	code, ok := charToCode[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrTLVStrCharInvalid, c)
	}

	return code, nil
}

// decodeChar maps a 6-bit code back to its character.
//
// Returns errs.ErrTLVStrCharInvalid for codes 48..63 (reserved).
func decodeChar(code uint8) (rune, error) {
	if int(code) >= len(codeToChar) || (code >= 48 && codeToChar[code] == 0) {
		return 0, fmt.Errorf("%w: code %d", errs.ErrTLVStrCharInvalid, code)
	}

	return codeToChar[code], nil
}

// validateString reports the first invalid character in s, if any.
func validateString(s string) error {
	for _, c := range s {
		if _, err := encodeChar(c); err != nil {
			return err
		}
	}

	return nil
}

// joinKV joins an even-length key/value slice as VERSION/CONFIG do:
// space-separated, in order.
func joinKV(kv []string) (string, error) {
	if len(kv)%2 != 0 {
		return "", fmt.Errorf("%w: %d values", errs.ErrTLVKVMismatch, len(kv))
	}

	return strings.Join(kv, " "), nil
}

// splitKV reverses joinKV.
func splitKV(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(s, " ")
}
