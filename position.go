// Package sheetengine produces structured tabular documents by merging
// layout templates with runtime data into a fully positioned, styled
// spreadsheet model that format-specific writers serialize.
package sheetengine

import (
	"strconv"
	"strings"
	"unicode"
)

// Position is a 1-indexed (row, column) coordinate in a document grid.
type Position struct {
	Row int
	Col int
}

// NewPosition validates and creates a Position. Both row and col must be >= 1.
func NewPosition(row, col int) (Position, error) {
	if row < 1 || col < 1 {
		return Position{}, newInvalidPositionError(row, col)
	}
	return Position{Row: row, Col: col}, nil
}

// PositionFromName parses a cell reference in letter+digit notation, for
// example "B5" or "AB123". Column letters use bijective base-26 (A=1 ... Z=26,
// AA=27) and are matched case-insensitively.
func PositionFromName(name string) (Position, error) {
	ref := strings.ToUpper(strings.TrimSpace(name))
	if ref == "" {
		return Position{}, newInvalidReferenceError(name)
	}
	var letters, digits strings.Builder
	for _, r := range ref {
		switch {
		case r >= 'A' && r <= 'Z':
			if digits.Len() > 0 {
				return Position{}, newInvalidReferenceError(name)
			}
			letters.WriteRune(r)
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		default:
			return Position{}, newInvalidReferenceError(name)
		}
	}
	if letters.Len() == 0 || digits.Len() == 0 {
		return Position{}, newInvalidReferenceError(name)
	}
	col := 0
	for _, r := range letters.String() {
		col = col*26 + int(r-'A') + 1
	}
	row, err := strconv.Atoi(digits.String())
	if err != nil {
		return Position{}, newInvalidReferenceError(name)
	}
	return NewPosition(row, col)
}

// Name renders the position in letter+digit notation, for example "B5".
func (p Position) Name() string {
	return columnName(p.Col) + strconv.Itoa(p.Row)
}

// Offset returns a new Position shifted by the given deltas. The result is
// validated, so moving above row 1 or left of column 1 fails.
func (p Position) Offset(rows, cols int) (Position, error) {
	return NewPosition(p.Row+rows, p.Col+cols)
}

// columnName converts a 1-indexed column number to bijective base-26 letters.
func columnName(col int) string {
	var b [8]byte
	i := len(b)
	for col > 0 {
		col--
		i--
		b[i] = byte('A' + col%26)
		col /= 26
	}
	return string(b[i:])
}

// Range is a rectangular span between two positions, start <= end
// componentwise.
type Range struct {
	Start Position
	End   Position
}

// NewRange validates and creates a Range.
func NewRange(start, end Position) (Range, error) {
	if start.Row < 1 || start.Col < 1 {
		return Range{}, newInvalidPositionError(start.Row, start.Col)
	}
	if end.Row < 1 || end.Col < 1 {
		return Range{}, newInvalidPositionError(end.Row, end.Col)
	}
	if start.Row > end.Row || start.Col > end.Col {
		return Range{}, newInvalidRangeError(start, end)
	}
	return Range{Start: start, End: end}, nil
}

// RangeFromName parses a range reference such as "A1:B10". A single cell
// reference yields a one-cell range.
func RangeFromName(name string) (Range, error) {
	if !strings.Contains(name, ":") {
		pos, err := PositionFromName(name)
		if err != nil {
			return Range{}, err
		}
		return Range{Start: pos, End: pos}, nil
	}
	parts := strings.Split(name, ":")
	if len(parts) != 2 {
		return Range{}, newInvalidReferenceError(name)
	}
	start, err := PositionFromName(parts[0])
	if err != nil {
		return Range{}, err
	}
	end, err := PositionFromName(parts[1])
	if err != nil {
		return Range{}, err
	}
	return NewRange(start, end)
}

// Name renders the range in text notation, collapsing one-cell ranges to a
// single reference.
func (r Range) Name() string {
	if r.Start == r.End {
		return r.Start.Name()
	}
	return r.Start.Name() + ":" + r.End.Name()
}

// Contains reports whether pos falls inside the range.
func (r Range) Contains(pos Position) bool {
	return pos.Row >= r.Start.Row && pos.Row <= r.End.Row &&
		pos.Col >= r.Start.Col && pos.Col <= r.End.Col
}

// Rows returns the number of rows spanned by the range.
func (r Range) Rows() int { return r.End.Row - r.Start.Row + 1 }

// Cols returns the number of columns spanned by the range.
func (r Range) Cols() int { return r.End.Col - r.Start.Col + 1 }

// Cells returns the total number of cells in the range.
func (r Range) Cells() int { return r.Rows() * r.Cols() }

// Positions returns an iterator over every position in the range in
// row-major order. Enumeration is lazy, so large ranges do not materialize
// a slice.
func (r Range) Positions() func(yield func(Position) bool) {
	return func(yield func(Position) bool) {
		for row := r.Start.Row; row <= r.End.Row; row++ {
			for col := r.Start.Col; col <= r.End.Col; col++ {
				if !yield(Position{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}
