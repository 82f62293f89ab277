package asset

import (
	"fmt"
	"slices"
)

// Built-in bank names.
const (
	BankPerfect = "perfect"
	BankPulse   = "pulse"
)

var pulseWidths = []float64{0.5, 0.25, 0.125, 0.0625}

// BuiltinNames lists the built-in banks in a stable order.
func BuiltinNames() []string {
	return []string{BankPerfect, BankPulse}
}

// Builtin returns the named built-in bank with waveforms of length samples.
func Builtin(name string, length int) (Bank, error) {
	switch name {
	case BankPerfect:
		return perfectBank(length)
	case BankPulse:
		return pulseBank(length)
	default:
		return Bank{}, fmt.Errorf("%w: unknown built-in bank %q (have %v)", ErrParameter, name, BuiltinNames())
	}
}

// IsBuiltin reports whether name is a built-in bank.
func IsBuiltin(name string) bool {
	return slices.Contains(BuiltinNames(), name)
}

// perfectBank holds the four classic shapes in the order triangle, sine,
// square, saw.
func perfectBank(length int) (Bank, error) {
	shapes := []Shape{ShapeTriangle, ShapeSine, ShapeSquare, ShapeSaw}
	bank := Bank{Name: BankPerfect, Waveforms: make([]Waveform, 0, len(shapes))}
	for _, shape := range shapes {
		raw, err := Generate(shape, length, 0)
		if err != nil {
			return Bank{}, err
		}
		bank.Waveforms = append(bank.Waveforms, Waveform{Name: shape.String(), Samples: raw})
	}
	return bank, nil
}

// pulseBank narrows the duty cycle from square to a thin pulse.
func pulseBank(length int) (Bank, error) {
	bank := Bank{Name: BankPulse, Waveforms: make([]Waveform, 0, len(pulseWidths))}
	for _, width := range pulseWidths {
		raw, err := Generate(ShapePulse, length, width)
		if err != nil {
			return Bank{}, err
		}
		bank.Waveforms = append(bank.Waveforms, Waveform{
			Name:    fmt.Sprintf("pulse%03d", int(width*1000)),
			Samples: raw,
		})
	}
	return bank, nil
}
