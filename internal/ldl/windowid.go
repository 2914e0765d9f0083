package ldl

import (
	"fmt"
	"strconv"

	"github.com/1broseidon/frametile/internal/frame"
)

// ParseWindowID parses a C-style integer literal: 0x-prefixed hex, a leading
// 0 for octal, or plain decimal. The value must fit in 32 bits.
func ParseWindowID(text string) (frame.WindowID, error) {
	var (
		base   int
		digits string
		valid  func(byte) bool
	)
	switch {
	case len(text) >= 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X'):
		base, digits, valid = 16, text[2:], isHexDigit
	case text == "0":
		return 0, nil
	case len(text) > 1 && text[0] == '0':
		base, digits, valid = 8, text[1:], isOctalDigit
	case text != "" && text[0] >= '1' && text[0] <= '9':
		base, digits, valid = 10, text, isDecimalDigit
	default:
		return 0, fmt.Errorf("invalid window id %q", text)
	}

	if digits == "" {
		return 0, fmt.Errorf("invalid window id %q: no digits", text)
	}
	for i := 0; i < len(digits); i++ {
		if !valid(digits[i]) {
			return 0, fmt.Errorf("invalid window id %q: unexpected %q", text, digits[i])
		}
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: out of range", text)
	}
	return frame.WindowID(v), nil
}

func isHexDigit(c byte) bool {
	return isDecimalDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

func isDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
