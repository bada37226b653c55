package main

import (
	"context"
	"math"

	"github.com/robotalks/robolog/pkg/dlog"
)

// Demo data. Arrays are referenced by the queue until drained, so they are
// never modified.
var (
	array8   = []uint8{0, 25, 120, 255}
	array16  = []uint16{0, 500, 16000, 65000}
	array32  = []uint32{0, 25000, 150000, 4200230000}
	arrays16 = []int16{0, -500, -16000, math.MinInt16}
	arrays32 = []int32{0, -25000, -150000, math.MinInt32}
)

func newline(l *dlog.Logger) {
	l.Char('\r')
	l.Char('\n')
}

// demoStep logs one round of every item kind.
func demoStep(l *dlog.Logger) func(context.Context) error {
	return func(context.Context) error {
		l.Str("Test start\r\n")
		l.Str("Tst0 \r\n")
		l.Str("Tst1\r\n", dlog.ColorRed)
		l.Str("Tst2\r\n", dlog.ColorBlue)
		l.Str("Tst2\r\n", dlog.ColorDefault)

		dlog.ArrayDec(l, array8)
		newline(l)
		dlog.ArrayDec(l, array16)
		newline(l)
		dlog.ArrayDec(l, array32)
		newline(l)
		dlog.ArrayDec(l, arrays16)
		newline(l)
		dlog.ArrayDec(l, arrays32)
		newline(l)
		dlog.ArrayHex(l, array8)
		newline(l)
		dlog.ArrayHex(l, array16)
		newline(l)
		dlog.ArrayHex(l, array32)
		newline(l)
		newline(l)

		dlog.Dec(l, uint8(0))
		newline(l)
		dlog.Dec(l, uint8(100))
		newline(l)
		dlog.Dec(l, uint8(123))
		newline(l)
		dlog.Dec(l, uint16(12345), dlog.ColorYellow)
		newline(l)
		dlog.Dec(l, uint32(1234567890), dlog.ColorGreen)
		l.Char('\r', dlog.ColorYellow)
		l.Char('\n', dlog.ColorDefault)

		dlog.Hex(l, uint8(0x12))
		newline(l)
		dlog.Hex(l, uint16(0x1234))
		newline(l)
		dlog.Hex(l, uint32(0x123456))
		newline(l)
		dlog.Hex(l, uint32(0x12345678))
		newline(l)

		dlog.Dec(l, int8(-123))
		newline(l)
		dlog.Dec(l, int16(-12345))
		newline(l)
		dlog.Dec(l, int32(-1234567890))
		newline(l)

		l.If(true).Str("Conditional positive\r\n", dlog.ColorDefault)
		dlog.Dec(l.If(true), uint8(123))
		newline(l)
		dlog.Hex(l.If(true), uint8(0x12))
		newline(l)
		dlog.Dec(l.If(false), uint8(88))
		dlog.Hex(l.If(false), uint8(0x77))
		l.If(true).Str("Conditional positive\r\n")
		l.If(false).Str("Conditional negative\r\n")
		newline(l)

		l.If(true).Char('a')
		l.If(true).Char('a', dlog.ColorRed)
		dlog.ArrayDec(l.If(true), array16[:2], dlog.ColorRed)
		dlog.ArrayHex(l.If(true), array16[:2], dlog.ColorRed)
		dlog.ArrayDec(l.If(true), array16[:2])
		dlog.ArrayHex(l.If(true), array16[:2])
		newline(l)
		return nil
	}
}

// tickStep logs from a periodic producer, framed as a message, like an
// interrupt handler would.
func tickStep(l *dlog.Logger) func(context.Context) error {
	var ticks uint32
	return func(context.Context) error {
		ticks++
		l.MessageStart("TICK", dlog.ColorCyan)
		dlog.Dec(l, ticks)
		l.MessageStop("TICK", dlog.ColorCyan)
		l.If(ticks%10 == 0).Str(" every 10th", dlog.ColorMagenta)
		l.Str("\r\n", dlog.ColorDefault)
		return nil
	}
}
