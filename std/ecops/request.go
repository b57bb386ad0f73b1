// Package ecops accelerates elliptic curve operations during circuit
// construction: each call returns a placeholder result immediately and
// defers the computation to a batched hint, verified against the
// placeholder with equality constraints at finalization.
package ecops

import (
	"github.com/Cristian13432/succinctx/vars"
)

// RequestType identifies the family of a deferred curve operation. It is
// serialized on its own, independently of the operand wires.
type RequestType uint8

const (
	OpAdd RequestType = iota
	OpScalarMul
	OpDecompress
	OpIsValid
)

func (t RequestType) String() string {
	switch t {
	case OpAdd:
		return "add"
	case OpScalarMul:
		return "scalar-mul"
	case OpDecompress:
		return "decompress"
	case OpIsValid:
		return "is-valid"
	default:
		return "unknown"
	}
}

// Request describes one deferred curve operation and owns its operand
// wires. It is created once per accelerated call and is immutable.
type Request struct {
	typ        RequestType
	a, b       vars.PointVariable
	scalar     vars.ScalarVariable
	compressed vars.CompressedPointVariable
}

// NewAddRequest describes a + b.
func NewAddRequest(a, b vars.PointVariable) *Request {
	return &Request{typ: OpAdd, a: a, b: b}
}

// NewScalarMulRequest describes scalar * p.
func NewScalarMulRequest(scalar vars.ScalarVariable, p vars.PointVariable) *Request {
	return &Request{typ: OpScalarMul, scalar: scalar, a: p}
}

// NewDecompressRequest describes the decompression of c.
func NewDecompressRequest(c vars.CompressedPointVariable) *Request {
	return &Request{typ: OpDecompress, compressed: c}
}

// NewIsValidRequest describes the on-curve check of p.
func NewIsValidRequest(p vars.PointVariable) *Request {
	return &Request{typ: OpIsValid, a: p}
}

// Type returns the family of the request.
func (r *Request) Type() RequestType { return r.typ }

// operands returns the operand wires in the order the result hint reads
// them back.
func (r *Request) operands() []vars.Variable {
	switch r.typ {
	case OpAdd:
		return append(r.a.Vars(), r.b.Vars()...)
	case OpScalarMul:
		return append(r.scalar.Vars(), r.a.Vars()...)
	case OpDecompress:
		return r.compressed.Vars()
	case OpIsValid:
		return r.a.Vars()
	default:
		panic("unknown request type")
	}
}
