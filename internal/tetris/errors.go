package tetris

import (
	"errors"
	"fmt"
)

// ErrGameOver matches any *GameOverError via errors.Is.
var ErrGameOver = errors.New("game over")

// GameOverError is the terminal outcome of a game, carrying the final
// score and level.
type GameOverError struct {
	Score int
	Level int
}

func (e *GameOverError) Error() string {
	return fmt.Sprintf("game over: score %d, level %d", e.Score, e.Level)
}

func (e *GameOverError) Is(target error) bool {
	return target == ErrGameOver
}
