package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for drawing raw die values
// This allows us to inject deterministic implementations for testing
type Roller interface {
	// Roll returns count independent die values, each in [1, sides]
	Roll(count, sides int) ([]int, error)
}
