package frontend

import (
	"fmt"
	"reflect"

	"github.com/Cristian13432/succinctx/logger"
	"github.com/Cristian13432/succinctx/vars"
	"github.com/bits-and-blooms/bitset"
)

// Builder constructs a circuit. Construction is single-threaded and
// synchronous: every call returns immediately, deferred computations hand
// out placeholder wires that are bound at finalization.
type Builder struct {
	kinds       []vars.Kind
	constraints []Constraint
	generators  []Generator
	owned       *bitset.BitSet
	deferred    []func(*Builder) error
	kv          map[any]any
	chainID     uint64
	finalized   bool
}

// Constraint is a wire equality constraint.
type Constraint struct {
	A, B vars.Variable
}

// Option configures a Builder.
type Option func(*Builder)

// WithChainID sets the chain the builder's data-fetching generators query.
func WithChainID(chainID uint64) Option {
	return func(b *Builder) {
		b.chainID = chainID
	}
}

// NewBuilder returns an empty circuit builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		owned: bitset.New(0),
		kv:    make(map[any]any),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ChainID returns the chain id the builder was configured with.
func (b *Builder) ChainID() uint64 { return b.chainID }

func (b *Builder) newVariable(k vars.Kind) vars.Variable {
	v := vars.NewVariable(uint32(len(b.kinds)), k)
	b.kinds = append(b.kinds, k)
	return v
}

// InitScalar allocates a field element wire.
func (b *Builder) InitScalar() vars.ScalarVariable {
	return vars.ScalarVariable{Variable: b.newVariable(vars.Scalar)}
}

// InitU256 allocates a 256-bit integer wire.
func (b *Builder) InitU256() vars.U256Variable {
	return vars.U256Variable{Variable: b.newVariable(vars.Word)}
}

// InitBytes32 allocates a 32-byte word wire.
func (b *Builder) InitBytes32() vars.Bytes32Variable {
	return vars.Bytes32Variable{Variable: b.newVariable(vars.Word)}
}

// InitAddress allocates an account address wire.
func (b *Builder) InitAddress() vars.AddressVariable {
	return vars.AddressVariable{Variable: b.newVariable(vars.Word)}
}

// InitBool allocates a boolean wire.
func (b *Builder) InitBool() vars.BoolVariable {
	return vars.BoolVariable{Variable: b.newVariable(vars.Boolean)}
}

// InitCompressedPoint allocates a compressed curve point wire.
func (b *Builder) InitCompressedPoint() vars.CompressedPointVariable {
	return vars.CompressedPointVariable{Variable: b.newVariable(vars.Compressed)}
}

// InitPoint allocates the two coordinate wires of an affine point.
func (b *Builder) InitPoint() vars.PointVariable {
	return vars.PointVariable{X: b.newVariable(vars.Scalar), Y: b.newVariable(vars.Scalar)}
}

// AssertIsEqual constrains two wires of the same kind to be equal.
func (b *Builder) AssertIsEqual(x, y vars.Variable) {
	if x.Kind() != y.Kind() {
		panic(fmt.Sprintf("cannot constrain a %s wire equal to a %s wire", x.Kind(), y.Kind()))
	}
	b.constraints = append(b.constraints, Constraint{A: x, B: y})
}

// AssertPointsEqual constrains two affine points to be equal, coordinate
// by coordinate.
func (b *Builder) AssertPointsEqual(p, q vars.PointVariable) {
	b.AssertIsEqual(p.X, q.X)
	b.AssertIsEqual(p.Y, q.Y)
}

// Register adds a generator to the circuit. Its output wires must not be
// claimed by another generator; overlapping outputs are a construction
// defect and panic.
func (b *Builder) Register(g Generator) {
	b.own(g.Outputs()...)
	b.generators = append(b.generators, g)
}

func (b *Builder) own(list ...vars.Variable) {
	for _, v := range list {
		if b.owned.Test(uint(v.Index())) {
			panic(fmt.Sprintf("wire %d already claimed by a generator", v.Index()))
		}
		b.owned.Set(uint(v.Index()))
	}
}

// Hint registers a hint-backed generator whose dependencies are the input
// stream wires, and returns the stream its placeholder results are
// allocated from.
func (b *Builder) Hint(input *vars.VariableStream, h Hint) *OutputStream {
	g := &hintGenerator{h: h, deps: input.Variables()}
	b.Register(g)
	return &OutputStream{b: b, g: g}
}

// AsyncHint registers an async-hint-backed generator behind a blocking
// bridge.
func (b *Builder) AsyncHint(input *vars.VariableStream, h AsyncHint) *OutputStream {
	return b.Hint(input, asyncBridge{h: h})
}

// Defer schedules cb to run at finalization. Callbacks run in FIFO order
// and may defer further callbacks.
func (b *Builder) Defer(cb func(*Builder) error) {
	b.deferred = append(b.deferred, cb)
}

// SetKeyValue stores a value on the builder. Gadgets use this to share
// per-build singletons, such as accelerators.
func (b *Builder) SetKeyValue(key, value any) {
	if !reflect.TypeOf(key).Comparable() {
		panic("key type not comparable")
	}
	b.kv[key] = value
}

// GetKeyValue retrieves a value stored with SetKeyValue.
func (b *Builder) GetKeyValue(key any) any {
	if !reflect.TypeOf(key).Comparable() {
		panic("key type not comparable")
	}
	return b.kv[key]
}

// Finalize runs the deferred callbacks and returns the finished circuit.
// The builder is consumed: a second call panics.
func (b *Builder) Finalize() (*Circuit, error) {
	if b.finalized {
		panic("builder already finalized")
	}
	// deferred callbacks may defer more work; the loop re-reads the
	// slice to pick it up
	for i := 0; i < len(b.deferred); i++ {
		if err := b.deferred[i](b); err != nil {
			return nil, err
		}
	}
	b.finalized = true

	log := logger.Logger()
	log.Debug().
		Int("wires", len(b.kinds)).
		Int("constraints", len(b.constraints)).
		Int("generators", len(b.generators)).
		Msg("circuit finalized")

	return &Circuit{
		Kinds:       b.kinds,
		Constraints: b.constraints,
		Generators:  b.generators,
	}, nil
}
