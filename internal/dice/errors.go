package dice

import (
	"github.com/veildark/acks-engine/internal/errors"
)

// Parse errors. Each one names the first problem found in the notation;
// Parse never panics on malformed input.
var (
	// ErrMissingDiceMarker means the notation has no 'd' at all
	ErrMissingDiceMarker = errors.InvalidArgument("dice notation is missing the 'd' marker")

	// ErrZeroDiceCount means the notation asks for zero dice
	ErrZeroDiceCount = errors.InvalidArgument("dice notation asks for zero dice")

	// ErrZeroSidedDie means the notation asks for zero-sided dice
	ErrZeroSidedDie = errors.InvalidArgument("dice notation asks for zero-sided dice")

	// ErrMissingSideCount means nothing follows the 'd' marker
	ErrMissingSideCount = errors.InvalidArgument("dice notation is missing the side count")

	// ErrDanglingOperator means an operator has no value after it
	ErrDanglingOperator = errors.InvalidArgument("dice notation has an operator with no value")

	// ErrInvalidDropCount means the drop count would discard every die
	ErrInvalidDropCount = errors.InvalidArgument("dice notation drops at least as many dice as it rolls")

	// ErrUnexpectedTrailingToken means leftover characters follow a valid roll
	ErrUnexpectedTrailingToken = errors.InvalidArgument("dice notation has unexpected trailing characters")
)
