package vars

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// VariableStream is an ordered list of wire handles describing the operands
// of a deferred computation at construction time.
type VariableStream struct {
	vars []Variable
}

// NewVariableStream returns an empty stream.
func NewVariableStream() *VariableStream {
	return &VariableStream{}
}

// Write appends handles to the stream.
func (s *VariableStream) Write(list ...Variable) {
	s.vars = append(s.vars, list...)
}

// Variables returns the handles in write order.
func (s *VariableStream) Variables() []Variable {
	return s.vars
}

type record struct {
	kind  Kind
	value *big.Int
}

// ValueStream is the witness-side counterpart of a VariableStream: an
// ordered buffer of typed values. The producer's write sequence must match
// the consumer's read sequence exactly; a mismatch is a programming defect
// and panics.
type ValueStream struct {
	records []record
	next    int
}

// NewValueStream returns an empty stream.
func NewValueStream() *ValueStream {
	return &ValueStream{}
}

// FromWitness builds the input stream of a generator: one typed record per
// dependency wire, in dependency order.
func FromWitness(w *Witness, deps []Variable) *ValueStream {
	s := NewValueStream()
	for _, v := range deps {
		s.push(v.Kind(), w.Get(v))
	}
	return s
}

// AssignTo writes the stream's records to the given output wires, in
// order. Record count or kind not matching the outputs is a programming
// defect and panics.
func (s *ValueStream) AssignTo(outputs []Variable, w *Witness) {
	if remaining := len(s.records) - s.next; remaining != len(outputs) {
		panic(fmt.Sprintf("value stream: %d records for %d output wires", remaining, len(outputs)))
	}
	for _, v := range outputs {
		w.Set(v, s.read(v.Kind()))
	}
}

// Len returns the number of records written so far.
func (s *ValueStream) Len() int { return len(s.records) }

func (s *ValueStream) push(k Kind, v *big.Int) {
	s.records = append(s.records, record{kind: k, value: new(big.Int).Set(v)})
}

func (s *ValueStream) read(k Kind) *big.Int {
	if s.next >= len(s.records) {
		panic("value stream: read past the end")
	}
	r := s.records[s.next]
	if r.kind != k {
		panic(fmt.Sprintf("value stream: reading %s, next record is %s", k, r.kind))
	}
	s.next++
	return r.value
}

// WriteScalar appends a field element.
func (s *ValueStream) WriteScalar(v *big.Int) { s.push(Scalar, v) }

// ReadScalar consumes a field element.
func (s *ValueStream) ReadScalar() *big.Int { return s.read(Scalar) }

// WriteWord appends a 256-bit word.
func (s *ValueStream) WriteWord(v common.Hash) { s.push(Word, new(big.Int).SetBytes(v[:])) }

// ReadWord consumes a 256-bit word.
func (s *ValueStream) ReadWord() common.Hash { return common.BigToHash(s.read(Word)) }

// WriteAddress appends an account address, as a 256-bit word.
func (s *ValueStream) WriteAddress(v common.Address) { s.push(Word, new(big.Int).SetBytes(v[:])) }

// ReadAddress consumes an account address.
func (s *ValueStream) ReadAddress() common.Address { return common.BigToAddress(s.read(Word)) }

// WriteBool appends a boolean.
func (s *ValueStream) WriteBool(v bool) {
	x := big.NewInt(0)
	if v {
		x.SetInt64(1)
	}
	s.push(Boolean, x)
}

// ReadBool consumes a boolean.
func (s *ValueStream) ReadBool() bool { return s.read(Boolean).Sign() != 0 }

// WriteCompressedPoint appends a compressed curve point.
func (s *ValueStream) WriteCompressedPoint(v [32]byte) { s.push(Compressed, new(big.Int).SetBytes(v[:])) }

// ReadCompressedPoint consumes a compressed curve point.
func (s *ValueStream) ReadCompressedPoint() [32]byte {
	var buf [32]byte
	s.read(Compressed).FillBytes(buf[:])
	return buf
}

// WritePoint appends the two coordinates of an affine point.
func (s *ValueStream) WritePoint(x, y *big.Int) {
	s.push(Scalar, x)
	s.push(Scalar, y)
}

// ReadPoint consumes the two coordinates of an affine point.
func (s *ValueStream) ReadPoint() (x, y *big.Int) {
	x = s.read(Scalar)
	y = s.read(Scalar)
	return x, y
}
