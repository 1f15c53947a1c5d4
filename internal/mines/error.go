package mines

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange    = errors.New("cell out of range")
	ErrInvalidParams = errors.New("invalid game params")
	ErrGameOver      = errors.New("game is over")
)

type RangeError struct {
	X, Y          int
	Width, Height int
}

// [RangeError] implements [error]
func (e RangeError) Error() string {
	return fmt.Sprintf(
		"cell %d:%d out of range for %dx%d field", e.X, e.Y, e.Width, e.Height,
	)
}

func (e RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

type ParamsError struct {
	Params GameParams
	reason string
}

// [ParamsError] implements [error]
func (e ParamsError) Error() string {
	return fmt.Sprintf("invalid game params %s: %s", e.Params.Seed(), e.reason)
}

func (e ParamsError) Is(target error) bool {
	return target == ErrInvalidParams
}
