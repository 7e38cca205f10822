package contracts

// CellAddress is a zero-based cell position inside a named sheet
type CellAddress struct {
	Sheet string
	Row   int
	Col   int
}

// RangeAddress is an inclusive, normalized rectangle inside a named sheet
type RangeAddress struct {
	Sheet    string
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

func (r RangeAddress) Contains(address CellAddress) bool {
	return address.Sheet == r.Sheet &&
		address.Row >= r.StartRow && address.Row <= r.EndRow &&
		address.Col >= r.StartCol && address.Col <= r.EndCol
}
