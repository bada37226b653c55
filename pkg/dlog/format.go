package dlog

import (
	"encoding/binary"
)

var hexDigits = [16]byte{
	'0', '1', '2', '3', '4', '5', '6', '7',
	'8', '9', 'A', 'B', 'C', 'D', 'E', 'F',
}

// ANSI foreground codes indexed by Color. The default color resets.
var ansiCodes = [colorCount]string{
	"0", "30", "31", "32", "33", "34", "35", "36", "37",
}

// AppendDecimal appends magnitude in decimal, preceded by '-' when negative.
func AppendDecimal(dst []byte, magnitude uint32, negative bool) []byte {
	if negative {
		dst = append(dst, '-')
	}
	if magnitude == 0 {
		return append(dst, '0')
	}
	divisor := uint32(1000000000)
	for magnitude < divisor {
		divisor /= 10
	}
	for ; divisor > 0; divisor /= 10 {
		dst = append(dst, byte('0'+magnitude/divisor))
		magnitude %= divisor
	}
	return dst
}

// AppendHex appends the low digits*4 bits of value as uppercase hex digits,
// keeping leading zeroes.
func AppendHex(dst []byte, value uint32, digits int) []byte {
	for shift := (digits - 1) * 4; shift >= 0; shift -= 4 {
		dst = append(dst, hexDigits[(value>>uint(shift))&0x0f])
	}
	return dst
}

// AppendNumber renders value according to width, signedness and radix.
// Signed decimal values are sign extended from width.
func AppendNumber(dst []byte, value uint32, width Width, signed bool, radix Radix) []byte {
	if radix == RadixHex {
		return AppendHex(dst, value, width.HexDigits())
	}
	if !signed {
		return AppendDecimal(dst, truncate(value, width), false)
	}
	var v int32
	switch width {
	case Width8:
		v = int32(int8(value))
	case Width16:
		v = int32(int16(value))
	default:
		v = int32(value)
	}
	if v < 0 {
		// widen before negating, -MinInt32 does not fit int32
		return AppendDecimal(dst, uint32(-int64(v)), true)
	}
	return AppendDecimal(dst, uint32(v), false)
}

func truncate(value uint32, width Width) uint32 {
	switch width {
	case Width8:
		return value & 0xff
	case Width16:
		return value & 0xffff
	}
	return value
}

// AppendArray renders every element of data, len(data)/width elements in
// native byte order, separated by sep. A trailing partial element is ignored.
// Nothing is appended for an invalid width.
func AppendArray(dst []byte, data []byte, width Width, signed bool, radix Radix, sep byte) []byte {
	if !width.Valid() {
		return dst
	}
	n := len(data) / int(width)
	for i := 0; i < n; i++ {
		if i > 0 {
			dst = append(dst, sep)
		}
		dst = AppendNumber(dst, element(data, i, width), width, signed, radix)
	}
	return dst
}

func element(data []byte, i int, width Width) uint32 {
	off := i * int(width)
	switch width {
	case Width8:
		return uint32(data[off])
	case Width16:
		return uint32(binary.NativeEndian.Uint16(data[off:]))
	}
	return binary.NativeEndian.Uint32(data[off:])
}

// AppendMessageStart appends the start symbol, the label and sep.
func AppendMessageStart(dst []byte, start byte, label string, sep byte) []byte {
	dst = append(dst, start)
	dst = append(dst, label...)
	return append(dst, sep)
}

// AppendMessageStop appends sep, the label and the stop symbol.
func AppendMessageStop(dst []byte, label string, sep byte, stop byte) []byte {
	dst = append(dst, sep)
	dst = append(dst, label...)
	return append(dst, stop)
}

// AppendColor appends the ANSI escape sequence selecting color.
func AppendColor(dst []byte, color Color) []byte {
	if color >= colorCount {
		return dst
	}
	dst = append(dst, 0x1b, '[')
	dst = append(dst, ansiCodes[color]...)
	return append(dst, 'm')
}

// MaxNumberLen is the longest text AppendNumber produces.
const MaxNumberLen = 11

// maxColorLen is the longest text AppendColor produces.
const maxColorLen = 5
