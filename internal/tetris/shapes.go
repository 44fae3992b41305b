package tetris

import (
	"math/rand"
	"time"
)

// Shapes is the built-in tetromino catalog. Colors are 1-based so a zero
// color never denotes a real block.
var Shapes = []Shape{
	{
		Name:  "I",
		Color: 1,
		Rotations: [4][4]Point{
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
			{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
			{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		},
	},
	{
		Name:  "O",
		Color: 2,
		Rotations: [4][4]Point{
			{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		},
	},
	{
		Name:  "T",
		Color: 3,
		Rotations: [4][4]Point{
			{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
			{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
		},
	},
	{
		Name:  "S",
		Color: 4,
		Rotations: [4][4]Point{
			{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
			{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
			{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
			{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		},
	},
	{
		Name:  "Z",
		Color: 5,
		Rotations: [4][4]Point{
			{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
			{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
			{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
		},
	},
	{
		Name:  "J",
		Color: 6,
		Rotations: [4][4]Point{
			{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
			{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
		},
	},
	{
		Name:  "L",
		Color: 7,
		Rotations: [4][4]Point{
			{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
			{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		},
	},
}

// ShapeByName returns the catalog entry with the given name.
func ShapeByName(name string) (*Shape, bool) {
	for i := range Shapes {
		if Shapes[i].Name == name {
			return &Shapes[i], true
		}
	}
	return nil, false
}

// PieceGenerator hands the board new pieces placed at the given anchor.
type PieceGenerator interface {
	RandomPiece(column, row int) *Piece
}

// GeneratorFunc adapts a plain function to PieceGenerator.
type GeneratorFunc func(column, row int) *Piece

func (f GeneratorFunc) RandomPiece(column, row int) *Piece {
	return f(column, row)
}

// BagGenerator deals every shape once per shuffled bag.
type BagGenerator struct {
	rng *rand.Rand
	bag []int
}

// NewBagGenerator seeds the shuffle; a zero seed uses the current time.
func NewBagGenerator(seed int64) *BagGenerator {
	return &BagGenerator{rng: newRand(seed)}
}

func (g *BagGenerator) RandomPiece(column, row int) *Piece {
	if len(g.bag) == 0 {
		g.refill()
	}
	index := g.bag[0]
	g.bag = g.bag[1:]
	return NewPiece(&Shapes[index], column, row)
}

func (g *BagGenerator) refill() {
	bag := make([]int, len(Shapes))
	for i := range bag {
		bag[i] = i
	}
	g.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	g.bag = bag
}

// UniformGenerator picks each shape independently.
type UniformGenerator struct {
	rng *rand.Rand
}

func NewUniformGenerator(seed int64) *UniformGenerator {
	return &UniformGenerator{rng: newRand(seed)}
}

func (g *UniformGenerator) RandomPiece(column, row int) *Piece {
	return NewPiece(&Shapes[g.rng.Intn(len(Shapes))], column, row)
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
