package frontend

import (
	"context"

	"github.com/Cristian13432/succinctx/vars"
)

// Hint is a unit of witness computation exchanging operands and results
// through value streams. The write sequence of the input stream is fixed
// at construction time; the hint must read it back in the same order, and
// must write its results in the order the construction site reads them
// from the OutputStream.
//
// The result of a hint is unconstrained: the construction site is
// responsible for binding the output wires with equality constraints.
type Hint interface {
	// ID returns a stable, globally unique, versioned identifier.
	ID() string

	// Hint reads operands from input and writes results to output.
	Hint(input, output *vars.ValueStream) error

	// Serialize writes the hint's own fields; dependency and output
	// wires are persisted by the surrounding generator.
	Serialize(w *Writer) error
}

// AsyncHint is a Hint whose body performs external I/O. Witness generation
// is a single synchronous pass, so the call is driven to completion behind
// a blocking bridge; the context lives for the duration of one invocation.
// No timeout is enforced at this layer and a failed call is fatal for the
// witness generation attempt.
type AsyncHint interface {
	ID() string
	Hint(ctx context.Context, input, output *vars.ValueStream) error
	Serialize(w *Writer) error
}

// HintDeserializer restores a hint's own fields.
type HintDeserializer func(r *Reader) (Hint, error)

// AsyncHintDeserializer restores an async hint's own fields.
type AsyncHintDeserializer func(r *Reader) (AsyncHint, error)

// asyncBridge drives an AsyncHint to completion from the synchronous
// witness pass. It serializes only relative to its own invocation;
// independent generators may still run concurrently.
type asyncBridge struct {
	h AsyncHint
}

func (b asyncBridge) ID() string { return b.h.ID() }

func (b asyncBridge) Hint(input, output *vars.ValueStream) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	return b.h.Hint(ctx, input, output)
}

func (b asyncBridge) Serialize(w *Writer) error { return b.h.Serialize(w) }

// hintGenerator adapts a Hint to the Generator protocol: dependencies are
// the input stream wires, outputs are the wires allocated through the
// OutputStream.
type hintGenerator struct {
	h       Hint
	deps    []vars.Variable
	outputs []vars.Variable
}

func (g *hintGenerator) ID() string { return g.h.ID() }

func (g *hintGenerator) Dependencies() []vars.Variable { return g.deps }

func (g *hintGenerator) Outputs() []vars.Variable { return g.outputs }

func (g *hintGenerator) RunOnce(w *vars.Witness) error {
	input := vars.FromWitness(w, g.deps)
	output := vars.NewValueStream()
	if err := g.h.Hint(input, output); err != nil {
		return err
	}
	output.AssignTo(g.outputs, w)
	return nil
}

func (g *hintGenerator) Serialize(w *Writer) error {
	if err := w.WriteVariables(g.deps); err != nil {
		return err
	}
	if err := w.WriteVariables(g.outputs); err != nil {
		return err
	}
	return g.h.Serialize(w)
}

func deserializeHintGenerator(r *Reader, d HintDeserializer) (Generator, error) {
	deps, err := r.ReadVariables()
	if err != nil {
		return nil, err
	}
	outputs, err := r.ReadVariables()
	if err != nil {
		return nil, err
	}
	h, err := d(r)
	if err != nil {
		return nil, err
	}
	return &hintGenerator{h: h, deps: deps, outputs: outputs}, nil
}

// OutputStream allocates placeholder wires for a hint's results. Reads
// must mirror, in order and type, the writes the hint performs on its
// output stream at witness generation time.
type OutputStream struct {
	b *Builder
	g *hintGenerator
}

// ReadScalar allocates a placeholder field element.
func (s *OutputStream) ReadScalar() vars.ScalarVariable {
	v := s.b.InitScalar()
	s.claim(v.Vars()...)
	return v
}

// ReadPoint allocates a placeholder affine point.
func (s *OutputStream) ReadPoint() vars.PointVariable {
	p := s.b.InitPoint()
	s.claim(p.Vars()...)
	return p
}

// ReadBytes32 allocates a placeholder 32-byte word.
func (s *OutputStream) ReadBytes32() vars.Bytes32Variable {
	v := s.b.InitBytes32()
	s.claim(v.Vars()...)
	return v
}

// ReadU256 allocates a placeholder 256-bit integer.
func (s *OutputStream) ReadU256() vars.U256Variable {
	v := s.b.InitU256()
	s.claim(v.Vars()...)
	return v
}

// ReadBool allocates a placeholder boolean.
func (s *OutputStream) ReadBool() vars.BoolVariable {
	v := s.b.InitBool()
	s.claim(v.Vars()...)
	return v
}

func (s *OutputStream) claim(list ...vars.Variable) {
	s.b.own(list...)
	s.g.outputs = append(s.g.outputs, list...)
}
