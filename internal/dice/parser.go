package dice

import (
	"strings"
)

// Parse turns dice notation into a RollSpec. The accepted shape is
//
//	NdM(&)(opA)(_h|_l(X))(>(=)B)
//
// where N defaults to 1, op is one of + - * x / (with /u rounding up and
// /d rounding down), & applies the modifier to each die instead of the
// total, _h/_l drop dice from the high or low end (count defaults to 1),
// and >B / >=B set the exclusive / inclusive floor of the result.
func Parse(text string) (RollSpec, error) {
	spec := Simple(1, 0)
	s := strings.TrimSpace(text)
	i := 0

	amount, next, ok := readUint(s, i)
	if ok {
		if amount == 0 {
			return RollSpec{}, ErrZeroDiceCount
		}
		spec.Amount = amount
		i = next
	}

	if i >= len(s) || s[i] != 'd' {
		return RollSpec{}, ErrMissingDiceMarker
	}
	i++

	sides, next, ok := readUint(s, i)
	if !ok {
		return RollSpec{}, ErrMissingSideCount
	}
	if sides == 0 {
		return RollSpec{}, ErrZeroSidedDie
	}
	spec.Sides = sides
	i = next

	if i < len(s) && s[i] == '&' {
		spec.ModifierEachDie = true
		i++
	}

	if i < len(s) {
		if kind, negate, width, isOp := readOperator(s, i); isOp {
			i += width
			value, next, ok := readUint(s, i)
			if !ok {
				return RollSpec{}, ErrDanglingOperator
			}
			i = next
			spec.ModifierKind = kind
			spec.Modifier = int(value)
			if negate {
				spec.Modifier = -spec.Modifier
			}
		}
	}

	if i < len(s) && s[i] == '_' {
		i++
		if i >= len(s) || (s[i] != 'h' && s[i] != 'l') {
			return RollSpec{}, ErrUnexpectedTrailingToken
		}
		kind := DropHighest
		if s[i] == 'l' {
			kind = DropLowest
		}
		i++
		count := uint(1)
		if value, next, ok := readUint(s, i); ok {
			// An explicit count that discards every die is rejected here;
			// the implicit count of 1 is left to Eval, which returns 0.
			if value >= spec.Amount {
				return RollSpec{}, ErrInvalidDropCount
			}
			count = value
			i = next
		}
		spec.Drop = Drop{Kind: kind, Count: count}
	}

	if i < len(s) && s[i] == '>' {
		i++
		inclusive := false
		if i < len(s) && s[i] == '=' {
			inclusive = true
			i++
		}
		negative := false
		if i < len(s) && s[i] == '-' {
			negative = true
			i++
		}
		value, next, ok := readUint(s, i)
		if !ok {
			return RollSpec{}, ErrDanglingOperator
		}
		i = next
		bound := int(value)
		if negative {
			bound = -bound
		}
		if inclusive {
			spec.MinValue = bound
		} else {
			spec.MinValue = bound + 1
		}
	}

	if i != len(s) {
		return RollSpec{}, ErrUnexpectedTrailingToken
	}
	return spec, nil
}

// readOperator recognizes a modifier operator at s[i]. The negate flag is
// set for '-', which is parsed as an additive modifier of a negative value.
func readOperator(s string, i int) (kind ModifierKind, negate bool, width int, isOp bool) {
	switch s[i] {
	case '+':
		return ModifierAdd, false, 1, true
	case '-':
		return ModifierAdd, true, 1, true
	case '*', 'x':
		return ModifierMultiply, false, 1, true
	case '/':
		if i+1 < len(s) {
			switch s[i+1] {
			case 'u':
				return ModifierDivCeil, false, 2, true
			case 'd':
				return ModifierDivFloor, false, 2, true
			}
		}
		return ModifierDivRound, false, 1, true
	}
	return "", false, 0, false
}

// readUint reads a run of digits starting at s[i].
func readUint(s string, i int) (value uint, next int, ok bool) {
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		value = value*10 + uint(s[i]-'0')
		i++
	}
	return value, i, i > start
}
