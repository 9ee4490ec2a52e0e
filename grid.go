package letterfall

import "math"

// Cell is a fixed grid position with an assigned character. Immutable once
// computed for a given layout.
type Cell struct {
	X, Y float64
	Char rune
}

// Grid is the full lattice of cells covering the viewport.
type Grid struct {
	Cells   []Cell
	Columns int
	Rows    int
}

// BuildGrid computes the cell lattice for a viewport of w by h pixels.
// Columns and rows are ceil(w/CellWidth) and ceil(h/CellHeight); cells are
// produced in row-major order, cell (i, j) at (j*CellWidth, i*CellHeight)
// with the j-th character of text cycled per column. Deterministic and pure.
//
// An empty text falls back to the package default so every cell gets a
// character.
func BuildGrid(w, h float64, text string) Grid {
	if text == "" {
		text = defaultSourceText
	}
	chars := []rune(text)

	columns := int(math.Ceil(w / CellWidth))
	rows := int(math.Ceil(h / CellHeight))
	if columns < 0 {
		columns = 0
	}
	if rows < 0 {
		rows = 0
	}

	g := Grid{
		Cells:   make([]Cell, 0, rows*columns),
		Columns: columns,
		Rows:    rows,
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < columns; j++ {
			g.Cells = append(g.Cells, Cell{
				X:    float64(j * CellWidth),
				Y:    float64(i * CellHeight),
				Char: chars[j%len(chars)],
			})
		}
	}
	return g
}
