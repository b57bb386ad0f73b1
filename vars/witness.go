package vars

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/ethereum/go-ethereum/common"
)

// Witness holds the concrete value assignment of a circuit's wires. Every
// wire is written at most once; a second write to the same wire is a
// scheduling defect and panics. Writes to distinct wires may come from
// concurrently running generators.
type Witness struct {
	mu     sync.Mutex
	values []*big.Int
	set    *bitset.BitSet
}

// NewWitness returns an empty assignment for a circuit with nbWires wires.
func NewWitness(nbWires int) *Witness {
	return &Witness{
		values: make([]*big.Int, nbWires),
		set:    bitset.New(uint(nbWires)),
	}
}

// Has reports whether the wire behind v holds a value.
func (w *Witness) Has(v Variable) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.set.Test(uint(v.Index()))
}

// Set assigns a value to the wire behind v. The value is copied. Panics if
// the wire already holds a value.
func (w *Witness) Set(v Variable, value *big.Int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := uint(v.Index())
	if w.set.Test(i) {
		panic(fmt.Sprintf("witness: wire %d written twice", v.Index()))
	}
	w.values[v.Index()] = new(big.Int).Set(value)
	w.set.Set(i)
}

// Get returns the value of the wire behind v. The returned value must not
// be mutated. Panics if the wire holds no value yet; generators only run
// once their dependencies are resolved, so an unset read is a scheduling
// defect.
func (w *Witness) Get(v Variable) *big.Int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.set.Test(uint(v.Index())) {
		panic(fmt.Sprintf("witness: wire %d read before it was written", v.Index()))
	}
	return w.values[v.Index()]
}

// SetScalar assigns a field element.
func (w *Witness) SetScalar(v ScalarVariable, value *big.Int) {
	w.Set(v.Variable, value)
}

// GetScalar returns the field element held by v.
func (w *Witness) GetScalar(v ScalarVariable) *big.Int {
	return w.Get(v.Variable)
}

// SetU256 assigns a 256-bit unsigned integer.
func (w *Witness) SetU256(v U256Variable, value *big.Int) {
	w.Set(v.Variable, value)
}

// GetU256 returns the 256-bit integer held by v.
func (w *Witness) GetU256(v U256Variable) *big.Int {
	return w.Get(v.Variable)
}

// SetBytes32 assigns a 32-byte word.
func (w *Witness) SetBytes32(v Bytes32Variable, value common.Hash) {
	w.Set(v.Variable, new(big.Int).SetBytes(value[:]))
}

// GetBytes32 returns the 32-byte word held by v.
func (w *Witness) GetBytes32(v Bytes32Variable) common.Hash {
	return common.BigToHash(w.Get(v.Variable))
}

// SetAddress assigns an account address.
func (w *Witness) SetAddress(v AddressVariable, value common.Address) {
	w.Set(v.Variable, new(big.Int).SetBytes(value[:]))
}

// GetAddress returns the account address held by v.
func (w *Witness) GetAddress(v AddressVariable) common.Address {
	return common.BigToAddress(w.Get(v.Variable))
}

// SetBool assigns a boolean.
func (w *Witness) SetBool(v BoolVariable, value bool) {
	x := big.NewInt(0)
	if value {
		x.SetInt64(1)
	}
	w.Set(v.Variable, x)
}

// GetBool returns the boolean held by v.
func (w *Witness) GetBool(v BoolVariable) bool {
	return w.Get(v.Variable).Sign() != 0
}

// SetCompressedPoint assigns a compressed curve point.
func (w *Witness) SetCompressedPoint(v CompressedPointVariable, value [32]byte) {
	w.Set(v.Variable, new(big.Int).SetBytes(value[:]))
}

// GetCompressedPoint returns the compressed curve point held by v.
func (w *Witness) GetCompressedPoint(v CompressedPointVariable) [32]byte {
	var buf [32]byte
	w.Get(v.Variable).FillBytes(buf[:])
	return buf
}

// SetPoint assigns the coordinates of an affine point.
func (w *Witness) SetPoint(v PointVariable, x, y *big.Int) {
	w.Set(v.X, x)
	w.Set(v.Y, y)
}

// GetPoint returns the coordinates of the affine point held by v.
func (w *Witness) GetPoint(v PointVariable) (x, y *big.Int) {
	return w.Get(v.X), w.Get(v.Y)
}
