package style

// Attr is a bitset of text attributes, extending the teacher's Attribute
// (bold/dim/italic/underline/blink/inverse/strikethrough) with overline and
// hidden, and splitting blink into slow/rapid per spec.md §3.2.
type Attr uint16

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlinkSlow
	AttrBlinkRapid
	AttrReverse
	AttrHidden
	AttrStrikethrough
	AttrOverline
)

// Has reports whether a contains the given attribute.
func (a Attr) Has(bit Attr) bool { return a&bit != 0 }

// With returns a with bit set.
func (a Attr) With(bit Attr) Attr { return a | bit }

// Without returns a with bit cleared.
func (a Attr) Without(bit Attr) Attr { return a &^ bit }
