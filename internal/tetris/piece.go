package tetris

// Point is a column/row offset inside a shape's bounding box.
type Point struct {
	X int
	Y int
}

// Shape is a catalog entry: a color and the block offsets for each of the
// four orientations, clockwise from spawn.
type Shape struct {
	Name      string
	Color     int
	Rotations [4][4]Point
}

// Piece is a shape placed at an anchor with an orientation. Every
// transformation has an exact inverse, which the board relies on to undo
// rejected moves.
type Piece struct {
	shape    *Shape
	column   int
	row      int
	rotation int
}

func NewPiece(shape *Shape, column, row int) *Piece {
	return &Piece{
		shape:  shape,
		column: column,
		row:    row,
	}
}

func (p *Piece) Name() string {
	return p.shape.Name
}

func (p *Piece) Color() int {
	return p.shape.Color
}

// Position returns the anchor column and row.
func (p *Piece) Position() (int, int) {
	return p.column, p.row
}

func (p *Piece) Blocks() [4]Block {
	var blocks [4]Block
	for i, offset := range p.shape.Rotations[p.rotation] {
		blocks[i] = Block{
			Color:  p.shape.Color,
			Row:    p.row + offset.Y,
			Column: p.column + offset.X,
		}
	}
	return blocks
}

func (p *Piece) MoveTo(column, row int) {
	p.column = column
	p.row = row
}

func (p *Piece) ShiftLeft() {
	p.column--
}

func (p *Piece) ShiftRight() {
	p.column++
}

func (p *Piece) Lower() {
	p.row++
}

func (p *Piece) Raise() {
	p.row--
}

func (p *Piece) RotateClockwise() {
	p.rotation = (p.rotation + 1) % 4
}

func (p *Piece) RotateCounterclockwise() {
	p.rotation = (p.rotation + 3) % 4
}

// Clone returns an independent copy sharing the immutable shape.
func (p *Piece) Clone() *Piece {
	clone := *p
	return &clone
}
