package tetris

// Block is a single unit cell. Locked blocks keep their own coordinates in
// sync with the grid cell that holds them.
type Block struct {
	Color  int
	Row    int
	Column int
}

// Grid stores locked blocks. A nil cell is empty.
type Grid struct {
	rows    int
	columns int
	cells   [][]*Block
}

func NewGrid(columns, rows int) *Grid {
	cells := make([][]*Block, rows)
	for i := range cells {
		cells[i] = make([]*Block, columns)
	}
	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   cells,
	}
}

func (g *Grid) Rows() int {
	return g.rows
}

func (g *Grid) Columns() int {
	return g.columns
}

func (g *Grid) InBounds(row, column int) bool {
	return row >= 0 && row < g.rows && column >= 0 && column < g.columns
}

// At returns the block locked at (row, column). Out of bounds reads as empty.
func (g *Grid) At(row, column int) (Block, bool) {
	if !g.InBounds(row, column) {
		return Block{}, false
	}
	block := g.cells[row][column]
	if block == nil {
		return Block{}, false
	}
	return *block, true
}

func (g *Grid) Occupied(row, column int) bool {
	return g.InBounds(row, column) && g.cells[row][column] != nil
}

func (g *Grid) RowComplete(row int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	for _, cell := range g.cells[row] {
		if cell == nil {
			return false
		}
	}
	return true
}

// IsBlocked reports whether any block of p lies outside the grid or on an
// occupied cell.
func (g *Grid) IsBlocked(p *Piece) bool {
	for _, block := range p.Blocks() {
		if !g.InBounds(block.Row, block.Column) {
			return true
		}
		if g.cells[block.Row][block.Column] != nil {
			return true
		}
	}
	return false
}

func (g *Grid) set(block Block) {
	b := block
	g.cells[block.Row][block.Column] = &b
}

func (g *Grid) clearRow(row int) {
	for c := range g.cells[row] {
		g.cells[row][c] = nil
	}
}

func (g *Grid) reset() {
	for r := range g.cells {
		g.clearRow(r)
	}
}

// compact drops every surviving block by the number of cleared rows below
// it. cleared holds the pre-clear row indices and must already be empty.
func (g *Grid) compact(cleared []int) {
	lowest := -1
	for _, row := range cleared {
		if row > lowest {
			lowest = row
		}
	}
	if lowest < 0 {
		return
	}
	for c := 0; c < g.columns; c++ {
		// Bottom-up, so a destination is always read before it is written.
		for r := lowest; r >= 0; r-- {
			block := g.cells[r][c]
			if block == nil {
				continue
			}
			distance := 0
			for _, row := range cleared {
				if row > r {
					distance++
				}
			}
			if distance == 0 {
				continue
			}
			g.cells[r][c] = nil
			block.Row = r + distance
			g.cells[block.Row][c] = block
		}
	}
}
