package tetris

// Layout holds the fixed board constants.
type Layout struct {
	Columns        int
	Rows           int
	StartColumn    int
	StartRow       int
	PreviewColumn  int
	PreviewRow     int
	PointsPerLine  int
	PointsPerLevel int
}

func DefaultLayout() Layout {
	return Layout{
		Columns:        10,
		Rows:           20,
		StartColumn:    3,
		StartRow:       0,
		PreviewColumn:  12,
		PreviewRow:     1,
		PointsPerLine:  20,
		PointsPerLevel: 200,
	}
}

// Board is the game state machine: the grid, the falling and next pieces,
// score and level. It is not safe for concurrent use.
type Board struct {
	layout       Layout
	grid         *Grid
	pieces       PieceGenerator
	falling      *Piece
	next         *Piece
	score        int
	level        int
	lines        int
	initialLevel int
	over         *GameOverError
	held         *Piece
	canHold      bool
	locked       int
	lastCleared  []int
}

// NewBoard builds an idle board. Levels below 1 start at 1. Play begins
// with StartGame.
func NewBoard(layout Layout, level int, pieces PieceGenerator) *Board {
	if level < 1 {
		level = 1
	}
	return &Board{
		layout:       layout,
		grid:         NewGrid(layout.Columns, layout.Rows),
		pieces:       pieces,
		level:        level,
		initialLevel: level,
	}
}

// StartGame clears the board and spawns the first pieces. It also restarts
// a finished game.
func (b *Board) StartGame() error {
	b.grid.reset()
	b.score = 0
	b.level = b.initialLevel
	b.lines = 0
	b.over = nil
	b.falling = nil
	b.held = nil
	b.canHold = true
	b.locked = 0
	b.lastCleared = nil
	b.next = b.pieces.RandomPiece(b.layout.PreviewColumn, b.layout.PreviewRow)
	return b.newShape()
}

func (b *Board) Layout() Layout {
	return b.layout
}

// Grid exposes the locked cells for reading.
func (b *Board) Grid() *Grid {
	return b.grid
}

func (b *Board) Score() int {
	return b.score
}

func (b *Board) Level() int {
	return b.level
}

func (b *Board) Lines() int {
	return b.lines
}

// Locked counts the pieces settled since the game started.
func (b *Board) Locked() int {
	return b.locked
}

// LastCleared returns the pre-clear indices of the rows removed by the most
// recent settle.
func (b *Board) LastCleared() []int {
	return append([]int(nil), b.lastCleared...)
}

func (b *Board) Over() bool {
	return b.over != nil
}

// Outcome returns the *GameOverError once the game has ended, nil before.
func (b *Board) Outcome() error {
	if b.over == nil {
		return nil
	}
	return b.over
}

func (b *Board) Falling() (*Piece, bool) {
	if b.falling == nil {
		return nil, false
	}
	return b.falling.Clone(), true
}

func (b *Board) Next() (*Piece, bool) {
	if b.next == nil {
		return nil, false
	}
	return b.next.Clone(), true
}

// Shadow projects where the falling piece would land without touching the
// board.
func (b *Board) Shadow() (*Piece, bool) {
	if b.falling == nil {
		return nil, false
	}
	shadow := b.falling.Clone()
	for !b.IsBlocked(shadow) {
		shadow.Lower()
	}
	shadow.Raise()
	return shadow, true
}

func (b *Board) IsBlocked(p *Piece) bool {
	return b.grid.IsBlocked(p)
}

func (b *Board) MoveLeft() (bool, error) {
	return b.try((*Piece).ShiftLeft, (*Piece).ShiftRight)
}

func (b *Board) MoveRight() (bool, error) {
	return b.try((*Piece).ShiftRight, (*Piece).ShiftLeft)
}

// Rotate turns the falling piece clockwise. There are no wall kicks.
func (b *Board) Rotate() (bool, error) {
	return b.try((*Piece).RotateClockwise, (*Piece).RotateCounterclockwise)
}

func (b *Board) RotateCounterclockwise() (bool, error) {
	return b.try((*Piece).RotateCounterclockwise, (*Piece).RotateClockwise)
}

func (b *Board) try(apply, undo func(*Piece)) (bool, error) {
	if b.over != nil {
		return false, b.over
	}
	if b.falling == nil {
		return false, nil
	}
	apply(b.falling)
	if b.IsBlocked(b.falling) {
		undo(b.falling)
		return false, nil
	}
	return true, nil
}

// Held returns the piece set aside by Hold.
func (b *Board) Held() (*Piece, bool) {
	if b.held == nil {
		return nil, false
	}
	return b.held.Clone(), true
}

// Hold sets the falling piece aside and takes the held one in its place,
// or the next piece when nothing is held yet. It is allowed once per
// settled piece, and refused when the swapped-in piece does not fit.
func (b *Board) Hold() (bool, error) {
	if b.over != nil {
		return false, b.over
	}
	if b.falling == nil || !b.canHold {
		return false, nil
	}
	stored := NewPiece(b.falling.shape, b.layout.PreviewColumn, b.layout.PreviewRow)
	if b.held == nil {
		b.held = stored
		b.falling = nil
		err := b.newShape()
		b.canHold = false
		return true, err
	}
	swapped := NewPiece(b.held.shape, b.layout.StartColumn, b.layout.StartRow)
	if b.IsBlocked(swapped) {
		return false, nil
	}
	b.held = stored
	b.falling = swapped
	b.canHold = false
	return true, nil
}

// SoftDrop lowers the falling piece one row, settling it when it cannot
// fall further. It is also the gravity tick.
func (b *Board) SoftDrop() (bool, error) {
	if b.over != nil {
		return false, b.over
	}
	if b.falling == nil {
		return false, nil
	}
	b.falling.Lower()
	if b.IsBlocked(b.falling) {
		b.falling.Raise()
		return true, b.rest()
	}
	return true, nil
}

// HardDrop moves the falling piece straight to its landing row and settles
// it.
func (b *Board) HardDrop() (bool, error) {
	if b.over != nil {
		return false, b.over
	}
	if b.falling == nil {
		return false, nil
	}
	for !b.IsBlocked(b.falling) {
		b.falling.Lower()
	}
	b.falling.Raise()
	return true, b.rest()
}

// rest settles the falling piece, or ends the game if it has no legal
// position left.
func (b *Board) rest() error {
	if b.IsBlocked(b.falling) {
		return b.endGame()
	}
	return b.settle()
}

func (b *Board) settle() error {
	for _, block := range b.falling.Blocks() {
		b.grid.set(block)
	}
	b.falling = nil
	b.locked++
	b.canHold = true
	b.removeCompletedLines()
	return b.newShape()
}

func (b *Board) removeCompletedLines() {
	var cleared []int
	for row := 0; row < b.grid.Rows(); row++ {
		if b.grid.RowComplete(row) {
			cleared = append(cleared, row)
		}
	}
	b.lastCleared = cleared
	if len(cleared) == 0 {
		return
	}
	for _, row := range cleared {
		b.grid.clearRow(row)
	}
	b.score += b.layout.PointsPerLine << (len(cleared) - 1)
	b.lines += len(cleared)
	// One level at most per clear, however far the score overshoots.
	if b.score > b.layout.PointsPerLevel*b.level {
		b.level++
	}
	b.grid.compact(cleared)
}

func (b *Board) newShape() error {
	b.falling = b.next
	b.falling.MoveTo(b.layout.StartColumn, b.layout.StartRow)
	b.next = b.pieces.RandomPiece(b.layout.PreviewColumn, b.layout.PreviewRow)
	if b.IsBlocked(b.falling) {
		b.next = b.falling
		b.falling = nil
		b.next.MoveTo(b.layout.PreviewColumn, b.layout.PreviewRow)
		return b.endGame()
	}
	return nil
}

func (b *Board) endGame() error {
	b.over = &GameOverError{Score: b.score, Level: b.level}
	return b.over
}
