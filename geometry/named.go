package geometry

// Named index/length families. Each pair shares the saturating conversion
// rules in geometry.go but is a distinct Go type, so e.g. a ColIndex cannot
// be added to a RowIndex without an explicit conversion.

type (
	ColIndex  int
	RowIndex  int
	ByteIndex int
	SegIndex  int

	ColWidth   int
	RowHeight  int
	ByteLength int
	SegLength  int
)

func (c ColWidth) ConvertToIndex() ColIndex  { return ColIndex(Length(c).ConvertToIndex()) }
func (r RowHeight) ConvertToIndex() RowIndex { return RowIndex(Length(r).ConvertToIndex()) }
func (b ByteLength) ConvertToIndex() ByteIndex { return ByteIndex(Length(b).ConvertToIndex()) }
func (s SegLength) ConvertToIndex() SegIndex { return SegIndex(Length(s).ConvertToIndex()) }

func (c ColIndex) ConvertToLength() ColWidth  { return ColWidth(Index(c).ConvertToLength()) }
func (r RowIndex) ConvertToLength() RowHeight { return RowHeight(Index(r).ConvertToLength()) }
func (b ByteIndex) ConvertToLength() ByteLength { return ByteLength(Index(b).ConvertToLength()) }
func (s SegIndex) ConvertToLength() SegLength { return SegLength(Index(s).ConvertToLength()) }

func (c ColIndex) Overflows(w ColWidth) Overflow  { return Index(c).Overflows(Length(w)) }
func (r RowIndex) Overflows(h RowHeight) Overflow { return Index(r).Overflows(Length(h)) }

func (c ColIndex) ClampToMaxLength(w ColWidth) ColIndex {
	return ColIndex(Index(c).ClampToMaxLength(Length(w)))
}
func (r RowIndex) ClampToMaxLength(h RowHeight) RowIndex {
	return RowIndex(Index(r).ClampToMaxLength(Length(h)))
}

func (c ColIndex) ClampToMinIndex(min ColIndex) ColIndex {
	return ColIndex(Index(c).ClampToMinIndex(Index(min)))
}
func (r RowIndex) ClampToMinIndex(min RowIndex) RowIndex {
	return RowIndex(Index(r).ClampToMinIndex(Index(min)))
}

func (w ColWidth) IsOverflowedBy(c ColIndex) bool  { return Length(w).IsOverflowedBy(Index(c)) }
func (h RowHeight) IsOverflowedBy(r RowIndex) bool { return Length(h).IsOverflowedBy(Index(r)) }

func (w ColWidth) RemainingFrom(c ColIndex) ColWidth {
	return ColWidth(Length(w).RemainingFrom(Index(c)))
}
func (h RowHeight) RemainingFrom(r RowIndex) RowHeight {
	return RowHeight(Length(h).RemainingFrom(Index(r)))
}

func (w ColWidth) ClampToMax(max ColWidth) ColWidth { return ColWidth(Length(w).ClampToMax(Length(max))) }
func (h RowHeight) ClampToMax(max RowHeight) RowHeight {
	return RowHeight(Length(h).ClampToMax(Length(max)))
}

func (w ColWidth) IndexFromEnd(offset ColWidth) ColIndex {
	return ColIndex(Length(w).IndexFromEnd(Length(offset)))
}
