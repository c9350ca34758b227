package dice

import (
	"math/rand"

	"github.com/veildark/acks-engine/internal/errors"
)

// randomRoller implements Roller using the process-wide random source
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 {
		return nil, errors.InvalidArgumentf("invalid dice size %d", sides)
	}

	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = rand.Intn(sides) + 1
	}
	return out, nil
}
