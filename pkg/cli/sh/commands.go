package sh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/robolog/pkg/dlog"
)

// SplitColor removes a trailing @color argument.
func SplitColor(args []string) ([]string, dlog.Color, error) {
	if n := len(args); n > 0 && strings.HasPrefix(args[n-1], "@") {
		color, ok := dlog.ParseColor(args[n-1][1:])
		if !ok {
			return nil, dlog.ColorNone, fmt.Errorf("unknown color %q", args[n-1][1:])
		}
		return args[:n-1], color, nil
	}
	return args, dlog.ColorNone, nil
}

// Unescape interprets Go escape sequences like \r\n in s.
func Unescape(s string) (string, error) {
	return strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
}

type typed struct {
	number func(l *dlog.Logger, radix dlog.Radix, val string, color dlog.Color) (bool, error)
	array  func(l *dlog.Logger, radix dlog.Radix, vals []string, color dlog.Color) (bool, error)
}

func typedOps[T dlog.Integer]() typed {
	return typed{number: logNumber[T], array: logArray[T]}
}

var types = map[string]typed{
	"i8":  typedOps[int8](),
	"i16": typedOps[int16](),
	"i32": typedOps[int32](),
	"u8":  typedOps[uint8](),
	"u16": typedOps[uint16](),
	"u32": typedOps[uint32](),
}

func lookupType(name string) (typed, error) {
	t, ok := types[name]
	if !ok {
		return t, fmt.Errorf("unknown type %q, expect one of i8 i16 i32 u8 u16 u32", name)
	}
	return t, nil
}

func parseValue[T dlog.Integer](s string) (T, error) {
	width, signed := dlog.TypeOf[T]()
	bits := int(width) * 8
	if signed {
		v, err := strconv.ParseInt(s, 0, bits)
		return T(v), err
	}
	v, err := strconv.ParseUint(s, 0, bits)
	return T(v), err
}

func logNumber[T dlog.Integer](l *dlog.Logger, radix dlog.Radix, val string, color dlog.Color) (bool, error) {
	v, err := parseValue[T](val)
	if err != nil {
		return false, err
	}
	if radix == dlog.RadixHex {
		return dlog.Hex(l, v, color), nil
	}
	return dlog.Dec(l, v, color), nil
}

// logArray allocates a new array per call, it must stay unchanged until
// drained.
func logArray[T dlog.Integer](l *dlog.Logger, radix dlog.Radix, vals []string, color dlog.Color) (bool, error) {
	arr := make([]T, len(vals))
	for n, val := range vals {
		v, err := parseValue[T](val)
		if err != nil {
			return false, err
		}
		arr[n] = v
	}
	if radix == dlog.RadixHex {
		return dlog.ArrayHex(l, arr, color), nil
	}
	return dlog.ArrayDec(l, arr, color), nil
}

func parseRadix(s string) (dlog.Radix, error) {
	switch s {
	case "dec":
		return dlog.RadixDecimal, nil
	case "hex":
		return dlog.RadixHex, nil
	}
	return dlog.RadixDecimal, fmt.Errorf("unknown radix %q, expect dec or hex", s)
}

// LogStr enqueues the arguments joined by spaces, escapes interpreted.
func LogStr(l *dlog.Logger, args []string, color dlog.Color) (bool, error) {
	s, err := Unescape(strings.Join(args, " "))
	if err != nil {
		return false, err
	}
	return l.Str(s, color), nil
}

// LogChar enqueues a single, possibly escaped, character.
func LogChar(l *dlog.Logger, args []string, color dlog.Color) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("exactly one character expected")
	}
	s, err := Unescape(args[0])
	if err != nil {
		return false, err
	}
	if len(s) != 1 {
		return false, fmt.Errorf("%q is not a single byte", s)
	}
	return l.Char(s[0], color), nil
}

func numberFunc(radix dlog.Radix) func(*dlog.Logger, []string, dlog.Color) (bool, error) {
	return func(l *dlog.Logger, args []string, color dlog.Color) (bool, error) {
		if len(args) != 2 {
			return false, fmt.Errorf("TYPE VALUE expected")
		}
		t, err := lookupType(args[0])
		if err != nil {
			return false, err
		}
		return t.number(l, radix, args[1], color)
	}
}

// LogDec enqueues TYPE VALUE in decimal.
var LogDec = numberFunc(dlog.RadixDecimal)

// LogHex enqueues TYPE VALUE in hex.
var LogHex = numberFunc(dlog.RadixHex)

// LogArray enqueues dec|hex TYPE VALUES...
func LogArray(l *dlog.Logger, args []string, color dlog.Color) (bool, error) {
	if len(args) < 2 {
		return false, fmt.Errorf("dec|hex TYPE VALUES... expected")
	}
	radix, err := parseRadix(args[0])
	if err != nil {
		return false, err
	}
	t, err := lookupType(args[1])
	if err != nil {
		return false, err
	}
	return t.array(l, radix, args[2:], color)
}

// LogMessage enqueues start|stop [LABEL].
func LogMessage(l *dlog.Logger, args []string, color dlog.Color) (bool, error) {
	if len(args) < 1 || len(args) > 2 {
		return false, fmt.Errorf("start|stop [LABEL] expected")
	}
	var label string
	if len(args) == 2 {
		label = args[1]
	}
	switch args[0] {
	case "start":
		return l.MessageStart(label, color), nil
	case "stop":
		return l.MessageStop(label, color), nil
	}
	return false, fmt.Errorf("unknown message marker %q", args[0])
}

// Fill enqueues count copies of text and returns how many were accepted.
func Fill(l *dlog.Logger, count int, text string) int {
	var accepted int
	for n := 0; n < count; n++ {
		if l.Str(text) {
			accepted++
		}
	}
	return accepted
}

// FormatStats prints a Snapshot for display.
func FormatStats(s dlog.Snapshot) string {
	return fmt.Sprintf("enqueued=%d dropped=%d passes=%d overflows=%d bytes=%d write-errors=%d",
		s.Enqueued, s.Dropped, s.Passes, s.Overflows, s.Bytes, s.WriteErrors)
}

// Commands returns the shell commands.
func Commands() []*ishell.Cmd {
	return []*ishell.Cmd{
		{
			Name: "str",
			Help: "TEXT... [@color]",
			Func: logFunc(LogStr),
		},
		{
			Name: "char",
			Help: "C [@color]",
			Func: logFunc(LogChar),
		},
		{
			Name: "dec",
			Help: "TYPE VALUE [@color]",
			Func: logFunc(LogDec),
		},
		{
			Name: "hex",
			Help: "TYPE VALUE [@color]",
			Func: logFunc(LogHex),
		},
		{
			Name:    "arr",
			Aliases: []string{"array"},
			Help:    "dec|hex TYPE VALUES... [@color]",
			Func:    logFunc(LogArray),
		},
		{
			Name: "msg",
			Help: "start|stop [LABEL] [@color]",
			Func: logFunc(LogMessage),
		},
		{
			Name: "drain",
			Help: "run one drain pass",
			Func: func(c *ishell.Context) {
				ShellFrom(c).Logger.Drain()
			},
		},
		{
			Name:    "flush",
			Aliases: []string{"f"},
			Help:    "drain and flush the output",
			Func: func(c *ishell.Context) {
				ShellFrom(c).Logger.Flush()
			},
		},
		{
			Name: "stats",
			Help: "print counters",
			Func: func(c *ishell.Context) {
				c.Println(FormatStats(ShellFrom(c).Logger.Stats()))
			},
		},
		{
			Name: "fill",
			Help: "COUNT [TEXT]",
			Func: func(c *ishell.Context) {
				if len(c.Args) < 1 {
					c.Err(fmt.Errorf("COUNT expected"))
					return
				}
				count, err := strconv.Atoi(c.Args[0])
				if err != nil {
					c.Err(err)
					return
				}
				text := "."
				if len(c.Args) > 1 {
					if text, err = Unescape(strings.Join(c.Args[1:], " ")); err != nil {
						c.Err(err)
						return
					}
				}
				c.Printf("%d of %d enqueued\n", Fill(ShellFrom(c).Logger, count, text), count)
			},
		},
	}
}
