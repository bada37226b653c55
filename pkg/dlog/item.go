package dlog

// Kind tags the variant held by an Item.
type Kind uint8

const (
	// KindString references an immutable string.
	KindString Kind = iota
	// KindBytes references caller owned bytes.
	KindBytes
	// KindChar is a single byte copied by value.
	KindChar
	// KindNumber is a 32-bit payload rendered in decimal or hex.
	KindNumber
	// KindArray references a run of fixed-width integers.
	KindArray
	// KindMessageStart opens a framed message.
	KindMessageStart
	// KindMessageStop closes a framed message.
	KindMessageStop
)

// Width is the size in bytes of a logged integer.
type Width uint8

// Supported widths.
const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
)

// HexDigits returns the number of hex digits rendered for the width.
func (w Width) HexDigits() int {
	return int(w) * 2
}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

// Radix selects the textual representation of a number.
type Radix uint8

const (
	// RadixDecimal renders without leading zeroes, with a sign when negative.
	RadixDecimal Radix = iota
	// RadixHex renders unsigned, uppercase, zero padded to the width.
	RadixHex
)

// Color is an ANSI foreground color applied before an item.
type Color uint8

// Colors. ColorNone emits nothing.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	colorCount

	ColorNone Color = 0xff
)

var colorNames = [colorCount]string{
	"default", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c < colorCount {
		return colorNames[c]
	}
	return "none"
}

// ParseColor maps a color name to a Color. Unknown names map to ColorNone.
func ParseColor(name string) (Color, bool) {
	for n, s := range colorNames {
		if s == name {
			return Color(n), true
		}
	}
	return ColorNone, name == "none"
}

// Item is one unit of deferred log data.
//
// Text and Data are references, not copies. Whatever they point to must stay
// valid and unchanged until the item has been drained.
type Item struct {
	Kind   Kind
	Width  Width
	Signed bool
	Radix  Radix
	Sep    byte
	Color  Color
	Value  uint32
	Text   string
	Data   []byte
}

// StringItem creates a KindString item.
func StringItem(s string, color Color) Item {
	return Item{Kind: KindString, Text: s, Color: color}
}

// BytesItem creates a KindBytes item referencing p.
func BytesItem(p []byte, color Color) Item {
	return Item{Kind: KindBytes, Data: p, Color: color}
}

// CharItem creates a KindChar item.
func CharItem(c byte, color Color) Item {
	return Item{Kind: KindChar, Value: uint32(c), Color: color}
}

// NumberItem creates a KindNumber item. Hex numbers are never signed.
func NumberItem(value uint32, width Width, signed bool, radix Radix, color Color) Item {
	return Item{
		Kind:   KindNumber,
		Value:  value,
		Width:  width,
		Signed: signed && radix == RadixDecimal,
		Radix:  radix,
		Color:  color,
	}
}

// ArrayItem creates a KindArray item over data, which holds len(data)/width
// elements in native byte order.
func ArrayItem(data []byte, width Width, signed bool, radix Radix, sep byte, color Color) Item {
	return Item{
		Kind:   KindArray,
		Data:   data,
		Width:  width,
		Signed: signed && radix == RadixDecimal,
		Radix:  radix,
		Sep:    sep,
		Color:  color,
	}
}

// MessageItem creates a message start or stop marker with an optional label.
func MessageItem(start bool, label string, color Color) Item {
	kind := KindMessageStop
	if start {
		kind = KindMessageStart
	}
	return Item{Kind: kind, Text: label, Color: color}
}
