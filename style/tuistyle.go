package style

// TuiStyle is an optional foreground/background color plus an attribute
// bitset. The zero value is "no style": no colors, no attributes.
type TuiStyle struct {
	FG   Color
	BG   Color
	Attr Attr
}

// Foreground returns a copy of s with the foreground color set.
func (s TuiStyle) Foreground(c Color) TuiStyle {
	s.FG = c
	return s
}

// Background returns a copy of s with the background color set.
func (s TuiStyle) Background(c Color) TuiStyle {
	s.BG = c
	return s
}

// WithAttr returns a copy of s with the given attribute bits added.
func (s TuiStyle) WithAttr(a Attr) TuiStyle {
	s.Attr |= a
	return s
}

// IsDefault reports whether s carries no color and no attributes.
func (s TuiStyle) IsDefault() bool {
	return !s.FG.IsSet() && !s.BG.IsSet() && s.Attr == AttrNone
}

// Merge composes two styles: fields set on other override s. Colors are
// overridden wholesale if set; attributes are unioned. Merging a style with
// itself is the identity (s == s.Merge(s)), per spec.md §8.2.
func (s TuiStyle) Merge(other TuiStyle) TuiStyle {
	out := s
	if other.FG.IsSet() {
		out.FG = other.FG
	}
	if other.BG.IsSet() {
		out.BG = other.BG
	}
	out.Attr |= other.Attr
	return out
}

// Equal reports value equality between two styles.
func (s TuiStyle) Equal(o TuiStyle) bool { return s == o }
