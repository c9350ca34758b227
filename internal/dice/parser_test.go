package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veildark/acks-engine/internal/dice"
)

func TestParse(t *testing.T) {
	t.Run("Parses basic roll with additive modifier", func(t *testing.T) {
		spec, err := dice.Parse("3d6+2")
		require.NoError(t, err)
		assert.Equal(t, uint(3), spec.Amount)
		assert.Equal(t, uint(6), spec.Sides)
		assert.Equal(t, 2, spec.Modifier)
		assert.Equal(t, dice.ModifierAdd, spec.ModifierKind)
		assert.False(t, spec.ModifierEachDie)
		assert.Equal(t, dice.NoDrop(), spec.Drop)
		assert.Equal(t, 1, spec.MinValue)
	})

	t.Run("Amount defaults to one", func(t *testing.T) {
		spec, err := dice.Parse("d6")
		require.NoError(t, err)
		assert.Equal(t, uint(1), spec.Amount)
		assert.Equal(t, uint(6), spec.Sides)
	})

	t.Run("Parses negative modifier", func(t *testing.T) {
		spec, err := dice.Parse("2d8-3")
		require.NoError(t, err)
		assert.Equal(t, -3, spec.Modifier)
		assert.Equal(t, dice.ModifierAdd, spec.ModifierKind)
	})

	t.Run("Parses multiply with either spelling", func(t *testing.T) {
		for _, notation := range []string{"2d6*10", "2d6x10"} {
			spec, err := dice.Parse(notation)
			require.NoError(t, err, notation)
			assert.Equal(t, dice.ModifierMultiply, spec.ModifierKind)
			assert.Equal(t, 10, spec.Modifier)
		}
	})

	t.Run("Parses division rounding modes", func(t *testing.T) {
		spec, err := dice.Parse("4d6/2")
		require.NoError(t, err)
		assert.Equal(t, dice.ModifierDivRound, spec.ModifierKind)

		spec, err = dice.Parse("4d6/u2")
		require.NoError(t, err)
		assert.Equal(t, dice.ModifierDivCeil, spec.ModifierKind)

		spec, err = dice.Parse("4d6/d2")
		require.NoError(t, err)
		assert.Equal(t, dice.ModifierDivFloor, spec.ModifierKind)
	})

	t.Run("Ampersand applies modifier to each die", func(t *testing.T) {
		spec, err := dice.Parse("3d6&+1")
		require.NoError(t, err)
		assert.True(t, spec.ModifierEachDie)
		assert.Equal(t, 1, spec.Modifier)
	})

	t.Run("Parses drop highest with default count", func(t *testing.T) {
		spec, err := dice.Parse("1d20_h")
		require.NoError(t, err)
		assert.Equal(t, dice.Drop{Kind: dice.DropHighest, Count: 1}, spec.Drop)
	})

	t.Run("Parses drop lowest with explicit count", func(t *testing.T) {
		spec, err := dice.Parse("4d6_l2")
		require.NoError(t, err)
		assert.Equal(t, dice.Drop{Kind: dice.DropLowest, Count: 2}, spec.Drop)
	})

	t.Run("Parses floor clamps", func(t *testing.T) {
		spec, err := dice.Parse("3d6>=5")
		require.NoError(t, err)
		assert.Equal(t, 5, spec.MinValue)

		// Exclusive bound is stored as the next value up
		spec, err = dice.Parse("3d6>5")
		require.NoError(t, err)
		assert.Equal(t, 6, spec.MinValue)

		spec, err = dice.Parse("3d6>=-2")
		require.NoError(t, err)
		assert.Equal(t, -2, spec.MinValue)
	})

	t.Run("Parses every clause together", func(t *testing.T) {
		spec, err := dice.Parse("4d8&x2_l1>=3")
		require.NoError(t, err)
		assert.Equal(t, uint(4), spec.Amount)
		assert.Equal(t, uint(8), spec.Sides)
		assert.True(t, spec.ModifierEachDie)
		assert.Equal(t, dice.ModifierMultiply, spec.ModifierKind)
		assert.Equal(t, 2, spec.Modifier)
		assert.Equal(t, dice.Drop{Kind: dice.DropLowest, Count: 1}, spec.Drop)
		assert.Equal(t, 3, spec.MinValue)
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		notation string
		want     error
	}{
		{"36", dice.ErrMissingDiceMarker},
		{"", dice.ErrMissingDiceMarker},
		{"3x6", dice.ErrMissingDiceMarker},
		{"0d6", dice.ErrZeroDiceCount},
		{"3d0", dice.ErrZeroSidedDie},
		{"3d", dice.ErrMissingSideCount},
		{"d", dice.ErrMissingSideCount},
		{"3d6+", dice.ErrDanglingOperator},
		{"3d6x", dice.ErrDanglingOperator},
		{"3d6/u", dice.ErrDanglingOperator},
		{"3d6>", dice.ErrDanglingOperator},
		{"3d6>=", dice.ErrDanglingOperator},
		{"3d6_h3", dice.ErrInvalidDropCount},
		{"3d6_l4", dice.ErrInvalidDropCount},
		{"3d6_x", dice.ErrUnexpectedTrailingToken},
		{"3d6junk", dice.ErrUnexpectedTrailingToken},
		{"3d6+2!", dice.ErrUnexpectedTrailingToken},
	}

	for _, tc := range tests {
		t.Run(tc.notation, func(t *testing.T) {
			_, err := dice.Parse(tc.notation)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNotation_RoundTrip(t *testing.T) {
	for _, notation := range []string{
		"3d6+2",
		"1d20",
		"4d6_l1",
		"2d8&x2",
		"3d6/u2>=5",
	} {
		spec, err := dice.Parse(notation)
		require.NoError(t, err)
		reparsed, err := dice.Parse(spec.Notation())
		require.NoError(t, err, spec.Notation())
		assert.Equal(t, spec, reparsed, notation)
	}
}
