// Package vars defines the typed wire handles circuits are built from and
// the witness-side containers used to move concrete values in and out of
// generators.
package vars

import (
	"fmt"
)

// Kind is the semantic type tag carried by every wire.
type Kind uint8

const (
	// Scalar is a native field element.
	Scalar Kind = iota
	// Word is a 256-bit big-endian word.
	Word
	// Compressed is a compressed curve point (32 bytes).
	Compressed
	// Boolean is a 0/1 value.
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Word:
		return "word"
	case Compressed:
		return "compressed"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Variable is an opaque handle into the circuit's wire set. Variables are
// allocated by the builder and carry their kind; they reference a wire,
// they never hold a value themselves.
type Variable struct {
	index uint32
	kind  Kind
}

// NewVariable builds a handle for the wire at the given index. Callers are
// expected to be the builder or a generator deserializer; a handle pointing
// at a wire that was never allocated is a construction defect.
func NewVariable(index uint32, kind Kind) Variable {
	return Variable{index: index, kind: kind}
}

// Index returns the wire index of the variable.
func (v Variable) Index() uint32 { return v.index }

// Kind returns the semantic type tag of the variable.
func (v Variable) Kind() Kind { return v.kind }

// ScalarVariable is a wire holding a native field element.
type ScalarVariable struct{ Variable }

// U256Variable is a wire holding a 256-bit unsigned integer.
type U256Variable struct{ Variable }

// Bytes32Variable is a wire holding a 32-byte word.
type Bytes32Variable struct{ Variable }

// AddressVariable is a wire holding a 20-byte account address,
// right-aligned in a 256-bit word.
type AddressVariable struct{ Variable }

// BoolVariable is a wire holding a boolean.
type BoolVariable struct{ Variable }

// CompressedPointVariable is a wire holding a compressed curve point.
type CompressedPointVariable struct{ Variable }

// PointVariable is an affine curve point, one scalar wire per coordinate.
type PointVariable struct {
	X, Y Variable
}

// Vars returns the wires of the variable, in coordinate order.
func (p PointVariable) Vars() []Variable { return []Variable{p.X, p.Y} }

// Vars returns the single wire of the variable.
func (v ScalarVariable) Vars() []Variable { return []Variable{v.Variable} }

// Vars returns the single wire of the variable.
func (v U256Variable) Vars() []Variable { return []Variable{v.Variable} }

// Vars returns the single wire of the variable.
func (v Bytes32Variable) Vars() []Variable { return []Variable{v.Variable} }

// Vars returns the single wire of the variable.
func (v AddressVariable) Vars() []Variable { return []Variable{v.Variable} }

// Vars returns the single wire of the variable.
func (v BoolVariable) Vars() []Variable { return []Variable{v.Variable} }

// Vars returns the single wire of the variable.
func (v CompressedPointVariable) Vars() []Variable { return []Variable{v.Variable} }

func one(list []Variable, k Kind) (Variable, error) {
	if len(list) != 1 {
		return Variable{}, fmt.Errorf("expected 1 wire, got %d", len(list))
	}
	if list[0].Kind() != k {
		return Variable{}, fmt.Errorf("expected a %s wire, got %s", k, list[0].Kind())
	}
	return list[0], nil
}

// AsScalar rebuilds a ScalarVariable from a deserialized wire list.
func AsScalar(list []Variable) (ScalarVariable, error) {
	v, err := one(list, Scalar)
	return ScalarVariable{v}, err
}

// AsU256 rebuilds a U256Variable from a deserialized wire list.
func AsU256(list []Variable) (U256Variable, error) {
	v, err := one(list, Word)
	return U256Variable{v}, err
}

// AsBytes32 rebuilds a Bytes32Variable from a deserialized wire list.
func AsBytes32(list []Variable) (Bytes32Variable, error) {
	v, err := one(list, Word)
	return Bytes32Variable{v}, err
}

// AsAddress rebuilds an AddressVariable from a deserialized wire list.
func AsAddress(list []Variable) (AddressVariable, error) {
	v, err := one(list, Word)
	return AddressVariable{v}, err
}

// AsCompressedPoint rebuilds a CompressedPointVariable from a deserialized
// wire list.
func AsCompressedPoint(list []Variable) (CompressedPointVariable, error) {
	v, err := one(list, Compressed)
	return CompressedPointVariable{v}, err
}

// AsPoint rebuilds a PointVariable from a deserialized wire list.
func AsPoint(list []Variable) (PointVariable, error) {
	if len(list) != 2 {
		return PointVariable{}, fmt.Errorf("expected 2 wires, got %d", len(list))
	}
	for _, v := range list {
		if v.Kind() != Scalar {
			return PointVariable{}, fmt.Errorf("expected a %s wire, got %s", Scalar, v.Kind())
		}
	}
	return PointVariable{X: list[0], Y: list[1]}, nil
}
